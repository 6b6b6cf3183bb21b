package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/pin"
	"github.com/railscamp/registration-api/internal/repository"
)

type fakeGateway struct {
	calls   int
	lastReq pin.ChargeRequest

	charge pin.Charge
	err    error
}

func (f *fakeGateway) CreateCharge(_ context.Context, req pin.ChargeRequest) (pin.Charge, error) {
	f.calls++
	f.lastReq = req

	if f.err != nil {
		return pin.Charge{}, f.err
	}

	return f.charge, nil
}

type fakeTokenStore struct {
	tokens map[uint]string
	err    error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[uint]string)}
}

func (f *fakeTokenStore) SetChargeToken(_ context.Context, id uint, token string) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := f.tokens[id]; exists {
		return repository.ErrAlreadyCharged
	}

	f.tokens[id] = token

	return nil
}

func testEntrant() *domain.Entrant {
	return &domain.Entrant{
		ID:        7,
		Email:     "camper@example.org",
		IPAddress: "203.0.113.7",
		CardToken: "card_nytGw7koRg23EEp9NTmz9w",
	}
}

func testParams() ChargeParams {
	return ChargeParams{
		Description: "Railscamp XV Brisbane",
		Amount:      42000,
		Currency:    "AUD",
	}
}

func TestCharger_Charge(t *testing.T) {
	t.Run("successful charge sets the token exactly once", func(t *testing.T) {
		gateway := &fakeGateway{charge: pin.Charge{Token: "tok_123", Amount: 42000, Currency: "AUD"}}
		store := newFakeTokenStore()
		charger := NewCharger(gateway, store, testParams())

		entrant := testEntrant()
		charge, err := charger.Charge(context.Background(), entrant)

		require.NoError(t, err)
		assert.Equal(t, "tok_123", charge.Token)
		assert.Equal(t, "tok_123", entrant.ChargeToken)
		assert.True(t, entrant.Charged())
		assert.Equal(t, "tok_123", store.tokens[7])

		assert.Equal(t, 1, gateway.calls)
		assert.Equal(t, "camper@example.org", gateway.lastReq.Email)
		assert.Equal(t, "Railscamp XV Brisbane", gateway.lastReq.Description)
		assert.Equal(t, int64(42000), gateway.lastReq.Amount)
		assert.Equal(t, "AUD", gateway.lastReq.Currency)
		assert.Equal(t, "203.0.113.7", gateway.lastReq.IPAddress)
		assert.Equal(t, "card_nytGw7koRg23EEp9NTmz9w", gateway.lastReq.CardToken)
	})

	t.Run("charging an already-charged record fails without a network call", func(t *testing.T) {
		gateway := &fakeGateway{charge: pin.Charge{Token: "tok_123"}}
		store := newFakeTokenStore()
		charger := NewCharger(gateway, store, testParams())

		entrant := testEntrant()
		entrant.ChargeToken = "tok_existing"

		_, err := charger.Charge(context.Background(), entrant)

		require.ErrorIs(t, err, ErrAlreadyCharged)
		assert.Equal(t, 0, gateway.calls)
		assert.Equal(t, "tok_existing", entrant.ChargeToken)
	})

	t.Run("second charge after a success hits the precondition", func(t *testing.T) {
		gateway := &fakeGateway{charge: pin.Charge{Token: "tok_123"}}
		store := newFakeTokenStore()
		charger := NewCharger(gateway, store, testParams())

		entrant := testEntrant()
		_, err := charger.Charge(context.Background(), entrant)
		require.NoError(t, err)

		_, err = charger.Charge(context.Background(), entrant)

		require.ErrorIs(t, err, ErrAlreadyCharged)
		assert.Equal(t, 1, gateway.calls)
	})

	t.Run("gateway failure leaves the record uncharged", func(t *testing.T) {
		gateway := &fakeGateway{err: &pin.RequestError{StatusCode: 400, Code: "card_declined", Description: "The card was declined"}}
		store := newFakeTokenStore()
		charger := NewCharger(gateway, store, testParams())

		entrant := testEntrant()
		_, err := charger.Charge(context.Background(), entrant)

		require.ErrorIs(t, err, ErrChargeFailed)
		assert.False(t, entrant.Charged())
		assert.Empty(t, store.tokens)

		// The provider detail stays attached for the logs.
		var reqErr *pin.RequestError
		assert.True(t, errors.As(err, &reqErr))
	})

	t.Run("failed attempt may be retried and then succeed", func(t *testing.T) {
		gateway := &fakeGateway{err: &pin.RequestError{StatusCode: 502}}
		store := newFakeTokenStore()
		charger := NewCharger(gateway, store, testParams())

		entrant := testEntrant()
		_, err := charger.Charge(context.Background(), entrant)
		require.ErrorIs(t, err, ErrChargeFailed)

		gateway.err = nil
		gateway.charge = pin.Charge{Token: "tok_retry"}

		charge, err := charger.Charge(context.Background(), entrant)

		require.NoError(t, err)
		assert.Equal(t, "tok_retry", charge.Token)
		assert.Equal(t, 2, gateway.calls)
	})

	t.Run("losing the conditional token write surfaces ErrAlreadyCharged", func(t *testing.T) {
		gateway := &fakeGateway{charge: pin.Charge{Token: "tok_mine"}}
		store := newFakeTokenStore()
		store.tokens[7] = "tok_theirs" // another request won the race
		charger := NewCharger(gateway, store, testParams())

		entrant := testEntrant()
		_, err := charger.Charge(context.Background(), entrant)

		require.ErrorIs(t, err, ErrAlreadyCharged)
		assert.Equal(t, 1, gateway.calls)
		assert.Equal(t, "tok_theirs", store.tokens[7])
		assert.False(t, entrant.Charged())
	})

	t.Run("works the same for bedding payments", func(t *testing.T) {
		gateway := &fakeGateway{charge: pin.Charge{Token: "tok_bedding", Amount: 1200}}
		store := newFakeTokenStore()
		charger := NewCharger(gateway, store, ChargeParams{
			Description: "Railscamp XV Bedding",
			Amount:      1200,
			Currency:    "AUD",
		})

		payment := &domain.BeddingPayment{
			ID:        3,
			Email:     "camper@example.org",
			IPAddress: "203.0.113.7",
			CardToken: "card_abc",
		}

		charge, err := charger.Charge(context.Background(), payment)

		require.NoError(t, err)
		assert.Equal(t, "tok_bedding", charge.Token)
		assert.Equal(t, "tok_bedding", payment.ChargeToken)
		assert.Equal(t, int64(1200), gateway.lastReq.Amount)
		assert.Equal(t, "Railscamp XV Bedding", gateway.lastReq.Description)
	})
}
