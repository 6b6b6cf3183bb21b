package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/pin"
	"github.com/railscamp/registration-api/internal/repository"
)

var (
	// ErrAlreadyCharged is a contract violation: the calling workflow tried
	// to charge a record that already holds a charge token.
	ErrAlreadyCharged = repository.ErrAlreadyCharged

	// ErrChargeFailed wraps any gateway-side failure. Callers show a generic
	// billing message; the provider detail only goes to the logs.
	ErrChargeFailed = errors.New("credit card charging failed")
)

type ChargeGateway interface {
	CreateCharge(ctx context.Context, charge pin.ChargeRequest) (pin.Charge, error)
}

// ChargeTokenStore persists the token with an "only if currently null"
// condition, which is what makes the at-most-one-success guarantee hold
// even if two requests raced past the in-memory precondition.
type ChargeTokenStore interface {
	SetChargeToken(ctx context.Context, id uint, token string) error
}

type ChargeParams struct {
	Description string
	Amount      int64 // minor units
	Currency    string
}

// Charger runs a single synchronous charge attempt against a payable record.
// One success per record, ever. A failed attempt leaves the record uncharged
// and may be retried by the caller; two failed attempts are two real gateway
// calls, that is all the contract allows.
type Charger struct {
	gateway ChargeGateway
	store   ChargeTokenStore
	params  ChargeParams
}

func NewCharger(gateway ChargeGateway, store ChargeTokenStore, params ChargeParams) *Charger {
	return &Charger{
		gateway: gateway,
		store:   store,
		params:  params,
	}
}

func (c *Charger) Charge(ctx context.Context, record domain.Payable) (pin.Charge, error) {
	if record.Charged() {
		return pin.Charge{}, fmt.Errorf("payable %v (%v): %w", record.PayableID(), record.PayableEmail(), ErrAlreadyCharged)
	}

	charge, err := c.gateway.CreateCharge(ctx, pin.ChargeRequest{
		Email:       record.PayableEmail(),
		Description: c.params.Description,
		Amount:      c.params.Amount,
		Currency:    c.params.Currency,
		IPAddress:   record.PayableIPAddress(),
		CardToken:   record.PayableCardToken(),
	})
	if err != nil {
		zap.L().Error("charge attempt failed",
			zap.Uint("payable_id", record.PayableID()),
			zap.String("email", record.PayableEmail()),
			zap.Error(err),
		)

		return pin.Charge{}, errors.Join(ErrChargeFailed, err)
	}

	if err = c.store.SetChargeToken(ctx, record.PayableID(), charge.Token); err != nil {
		// The provider has the money but we lost the token write. Either a
		// concurrent attempt won, or storage broke; both need a human.
		zap.L().Error("charge succeeded but the token write failed",
			zap.Uint("payable_id", record.PayableID()),
			zap.String("charge_token", charge.Token),
			zap.Error(err),
		)

		return pin.Charge{}, fmt.Errorf("c.store.SetChargeToken -> %w", err)
	}

	record.SetChargeToken(charge.Token)

	return charge, nil
}
