package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/railscamp/registration-api/internal/config"
	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/pin"
	"github.com/railscamp/registration-api/internal/repository"
)

var ErrEntrantNotFound = repository.ErrEntrantNotFound

// beddingPackMarker derives wants_bedding from the free-text selection the
// form posts. Substring match on purpose; the legacy form relied on it.
const beddingPackMarker = "bedding pack"

// compTicketPlaceholder fills the not-null billing columns for comp tickets
// that never go through the card flow.
const compTicketPlaceholder = "xxx"

type EntrantRepository interface {
	Create(ctx context.Context, entrant domain.Entrant) (domain.Entrant, error)
	FindByID(ctx context.Context, id uint) (domain.Entrant, error)
	FindByEmail(ctx context.Context, email string) (domain.Entrant, error)
	SubmittedBeforeDeadline(ctx context.Context, deadline time.Time) ([]domain.Entrant, error)
	Unchosen(ctx context.Context) ([]domain.Entrant, error)
	Chosen(ctx context.Context) ([]domain.Entrant, error)
	TentCampers(ctx context.Context) ([]domain.Entrant, error)
	BunkCampers(ctx context.Context) ([]domain.Entrant, error)
	CountTentCampers(ctx context.Context) (int64, error)
	Uncharged(ctx context.Context) ([]domain.Entrant, error)
	Choose(ctx context.Context, id uint) error
	MarkNotified(ctx context.Context, id uint) error
	UpdateExtras(ctx context.Context, id uint, wantsBedding bool, tshirtSize string) error
}

type RegistrationService struct {
	repo    EntrantRepository
	event   *config.EventConfig
	charger *Charger
}

func NewRegistrationService(repo EntrantRepository, event *config.EventConfig, charger *Charger) *RegistrationService {
	return &RegistrationService{
		repo:    repo,
		event:   event,
		charger: charger,
	}
}

func (s *RegistrationService) Register(ctx context.Context, entrant domain.Entrant) (domain.Entrant, error) {
	created, err := s.repo.Create(ctx, entrant)
	if err != nil {
		return domain.Entrant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// CreateCompTicket registers an entrant outside the card flow (speakers,
// organisers). Billing columns get placeholder values.
func (s *RegistrationService) CreateCompTicket(ctx context.Context, name, email, ticketType, notes string) (domain.Entrant, error) {
	created, err := s.repo.Create(ctx, domain.Entrant{
		Name:       name,
		Email:      email,
		WantsBus:   true,
		CCName:     compTicketPlaceholder,
		CCAddress:  compTicketPlaceholder,
		CCCity:     compTicketPlaceholder,
		CCPostCode: compTicketPlaceholder,
		CCState:    compTicketPlaceholder,
		CCCountry:  compTicketPlaceholder,
		CardToken:  compTicketPlaceholder,
		IPAddress:  compTicketPlaceholder,
		TicketType: ticketType,
		Notes:      notes,
	})
	if err != nil {
		return domain.Entrant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// TentsAvailable reports whether tent registration is still open against the
// fixed capacity limit.
func (s *RegistrationService) TentsAvailable(ctx context.Context) (bool, error) {
	count, err := s.repo.CountTentCampers(ctx)
	if err != nil {
		return false, fmt.Errorf("s.repo.CountTentCampers -> %w", err)
	}

	return count < s.event.TentTickets, nil
}

// EligibleForSelection returns the entrants the lottery draws from. The
// underlying predicate is created_at >= deadline (see the DAO note).
func (s *RegistrationService) EligibleForSelection(ctx context.Context) ([]domain.Entrant, error) {
	entrants, err := s.repo.SubmittedBeforeDeadline(ctx, s.event.SubmissionDeadline)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SubmittedBeforeDeadline -> %w", err)
	}

	return entrants, nil
}

func (s *RegistrationService) Unchosen(ctx context.Context) ([]domain.Entrant, error) {
	entrants, err := s.repo.Unchosen(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Unchosen -> %w", err)
	}

	return entrants, nil
}

func (s *RegistrationService) Chosen(ctx context.Context) ([]domain.Entrant, error) {
	entrants, err := s.repo.Chosen(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Chosen -> %w", err)
	}

	return entrants, nil
}

func (s *RegistrationService) TentCampers(ctx context.Context) ([]domain.Entrant, error) {
	entrants, err := s.repo.TentCampers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.TentCampers -> %w", err)
	}

	return entrants, nil
}

func (s *RegistrationService) BunkCampers(ctx context.Context) ([]domain.Entrant, error) {
	entrants, err := s.repo.BunkCampers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.BunkCampers -> %w", err)
	}

	return entrants, nil
}

func (s *RegistrationService) Uncharged(ctx context.Context) ([]domain.Entrant, error) {
	entrants, err := s.repo.Uncharged(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Uncharged -> %w", err)
	}

	return entrants, nil
}

func (s *RegistrationService) Choose(ctx context.Context, id uint) error {
	if err := s.repo.Choose(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Choose -> %w", err)
	}

	return nil
}

func (s *RegistrationService) MarkNotified(ctx context.Context, id uint) error {
	if err := s.repo.MarkNotified(ctx, id); err != nil {
		return fmt.Errorf("s.repo.MarkNotified -> %w", err)
	}

	return nil
}

func (s *RegistrationService) FindByEmail(ctx context.Context, email string) (domain.Entrant, error) {
	entrant, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Entrant{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return entrant, nil
}

// UpdateExtras derives wants_bedding from the selection string and writes
// both extras fields together.
func (s *RegistrationService) UpdateExtras(ctx context.Context, email, beddingSelection, tshirtSize string) (domain.Entrant, error) {
	entrant, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Entrant{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	wantsBedding := strings.Contains(beddingSelection, beddingPackMarker)
	if err = s.repo.UpdateExtras(ctx, entrant.ID, wantsBedding, tshirtSize); err != nil {
		return domain.Entrant{}, fmt.Errorf("s.repo.UpdateExtras -> %w", err)
	}

	entrant.WantsBedding = &wantsBedding
	entrant.TshirtSize = &tshirtSize

	return entrant, nil
}

// ChargeEntrant charges the ticket price to a chosen entrant's card.
func (s *RegistrationService) ChargeEntrant(ctx context.Context, id uint) (pin.Charge, error) {
	entrant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pin.Charge{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	charge, err := s.charger.Charge(ctx, &entrant)
	if err != nil {
		return pin.Charge{}, fmt.Errorf("s.charger.Charge -> %w", err)
	}

	return charge, nil
}
