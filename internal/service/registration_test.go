package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railscamp/registration-api/internal/config"
	"github.com/railscamp/registration-api/internal/domain"
)

type fakeEntrantRepo struct {
	entrants map[uint]domain.Entrant
	byEmail  map[string]uint

	tentCount        int64
	queriedDeadline  time.Time
	extrasID         uint
	extrasBedding    bool
	extrasTshirtSize string
}

func newFakeEntrantRepo() *fakeEntrantRepo {
	return &fakeEntrantRepo{
		entrants: make(map[uint]domain.Entrant),
		byEmail:  make(map[string]uint),
	}
}

func (f *fakeEntrantRepo) add(e domain.Entrant) {
	f.entrants[e.ID] = e
	f.byEmail[e.Email] = e.ID
}

func (f *fakeEntrantRepo) Create(_ context.Context, e domain.Entrant) (domain.Entrant, error) {
	e.ID = uint(len(f.entrants) + 1)
	e.CreatedAt = time.Now().UTC()
	f.add(e)

	return e, nil
}

func (f *fakeEntrantRepo) FindByID(_ context.Context, id uint) (domain.Entrant, error) {
	e, ok := f.entrants[id]
	if !ok {
		return domain.Entrant{}, ErrEntrantNotFound
	}

	return e, nil
}

func (f *fakeEntrantRepo) FindByEmail(_ context.Context, email string) (domain.Entrant, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return domain.Entrant{}, ErrEntrantNotFound
	}

	return f.entrants[id], nil
}

func (f *fakeEntrantRepo) SubmittedBeforeDeadline(_ context.Context, deadline time.Time) ([]domain.Entrant, error) {
	f.queriedDeadline = deadline
	return nil, nil
}

func (f *fakeEntrantRepo) Unchosen(context.Context) ([]domain.Entrant, error)    { return nil, nil }
func (f *fakeEntrantRepo) Chosen(context.Context) ([]domain.Entrant, error)      { return nil, nil }
func (f *fakeEntrantRepo) TentCampers(context.Context) ([]domain.Entrant, error) { return nil, nil }
func (f *fakeEntrantRepo) BunkCampers(context.Context) ([]domain.Entrant, error) { return nil, nil }
func (f *fakeEntrantRepo) Uncharged(context.Context) ([]domain.Entrant, error)   { return nil, nil }
func (f *fakeEntrantRepo) Choose(context.Context, uint) error                    { return nil }
func (f *fakeEntrantRepo) MarkNotified(context.Context, uint) error              { return nil }

func (f *fakeEntrantRepo) CountTentCampers(context.Context) (int64, error) {
	return f.tentCount, nil
}

func (f *fakeEntrantRepo) UpdateExtras(_ context.Context, id uint, wantsBedding bool, tshirtSize string) error {
	f.extrasID = id
	f.extrasBedding = wantsBedding
	f.extrasTshirtSize = tshirtSize

	return nil
}

func testEventConfig() *config.EventConfig {
	return &config.EventConfig{
		SubmissionDeadline: time.Date(2014, 4, 11, 14, 0, 0, 0, time.UTC),
		TicketPriceCents:   42000,
		TicketCurrency:     "AUD",
		TicketDescription:  "Railscamp XV Brisbane",
		TentTickets:        2,
		BeddingPriceCents:  1200,
		BeddingDescription: "Railscamp XV Bedding",
	}
}

func TestRegistrationService_UpdateExtras(t *testing.T) {
	t.Run("selection string containing the marker sets wants_bedding", func(t *testing.T) {
		repo := newFakeEntrantRepo()
		repo.add(domain.Entrant{ID: 4, Email: "camper@example.org"})
		svc := NewRegistrationService(repo, testEventConfig(), nil)

		entrant, err := svc.UpdateExtras(context.Background(), "camper@example.org", "I want the bedding pack", "L")

		require.NoError(t, err)
		assert.Equal(t, uint(4), repo.extrasID)
		assert.True(t, repo.extrasBedding)
		assert.Equal(t, "L", repo.extrasTshirtSize)
		require.NotNil(t, entrant.WantsBedding)
		assert.True(t, *entrant.WantsBedding)
		require.NotNil(t, entrant.TshirtSize)
		assert.Equal(t, "L", *entrant.TshirtSize)
	})

	t.Run("selection string without the marker clears wants_bedding", func(t *testing.T) {
		repo := newFakeEntrantRepo()
		repo.add(domain.Entrant{ID: 4, Email: "camper@example.org"})
		svc := NewRegistrationService(repo, testEventConfig(), nil)

		entrant, err := svc.UpdateExtras(context.Background(), "camper@example.org", "no thanks", "L")

		require.NoError(t, err)
		assert.False(t, repo.extrasBedding)
		require.NotNil(t, entrant.WantsBedding)
		assert.False(t, *entrant.WantsBedding)
	})

	t.Run("matching is a plain substring check", func(t *testing.T) {
		repo := newFakeEntrantRepo()
		repo.add(domain.Entrant{ID: 4, Email: "camper@example.org"})
		svc := NewRegistrationService(repo, testEventConfig(), nil)

		// "Bedding Pack" in a different case does not match.
		_, err := svc.UpdateExtras(context.Background(), "camper@example.org", "Bedding Pack please", "M")

		require.NoError(t, err)
		assert.False(t, repo.extrasBedding)
	})

	t.Run("unknown email is reported", func(t *testing.T) {
		repo := newFakeEntrantRepo()
		svc := NewRegistrationService(repo, testEventConfig(), nil)

		_, err := svc.UpdateExtras(context.Background(), "nobody@example.org", "bedding pack", "S")

		require.ErrorIs(t, err, ErrEntrantNotFound)
	})
}

func TestRegistrationService_TentsAvailable(t *testing.T) {
	svc := func(count int64) *RegistrationService {
		repo := newFakeEntrantRepo()
		repo.tentCount = count

		return NewRegistrationService(repo, testEventConfig(), nil)
	}

	t.Run("open below capacity", func(t *testing.T) {
		available, err := svc(1).TentsAvailable(context.Background())

		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("closed at capacity", func(t *testing.T) {
		available, err := svc(2).TentsAvailable(context.Background())

		require.NoError(t, err)
		assert.False(t, available)
	})
}

func TestRegistrationService_EligibleForSelection(t *testing.T) {
	repo := newFakeEntrantRepo()
	conf := testEventConfig()
	svc := NewRegistrationService(repo, conf, nil)

	_, err := svc.EligibleForSelection(context.Background())

	require.NoError(t, err)
	assert.Equal(t, conf.SubmissionDeadline, repo.queriedDeadline)
}

func TestRegistrationService_CreateCompTicket(t *testing.T) {
	repo := newFakeEntrantRepo()
	svc := NewRegistrationService(repo, testEventConfig(), nil)

	created, err := svc.CreateCompTicket(context.Background(), "Speaker", "speaker@example.org", "comp", "keynote")

	require.NoError(t, err)
	assert.Equal(t, "Speaker", created.Name)
	assert.Equal(t, "comp", created.TicketType)
	assert.Equal(t, "keynote", created.Notes)
	assert.True(t, created.WantsBus)
	// Billing columns are placeholders; the record never enters the card flow.
	assert.Equal(t, "xxx", created.CCName)
	assert.Equal(t, "xxx", created.CardToken)
	assert.False(t, created.Charged())
}
