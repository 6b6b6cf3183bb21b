package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/repository/dao"
)

var (
	ErrEntrantNotFound = dao.ErrEntrantNotFound
	ErrMissingFields   = dao.ErrMissingFields
	ErrAlreadyCharged  = dao.ErrAlreadyCharged
)

type EntrantDAO interface {
	Insert(ctx context.Context, entrant dao.Entrant) (dao.Entrant, error)
	FindByID(ctx context.Context, id uint) (dao.Entrant, error)
	FindByEmail(ctx context.Context, email string) (dao.Entrant, error)
	SubmittedBeforeDeadline(ctx context.Context, deadline time.Time) ([]dao.Entrant, error)
	Unchosen(ctx context.Context) ([]dao.Entrant, error)
	Chosen(ctx context.Context) ([]dao.Entrant, error)
	TentCampers(ctx context.Context) ([]dao.Entrant, error)
	BunkCampers(ctx context.Context) ([]dao.Entrant, error)
	CountTentCampers(ctx context.Context) (int64, error)
	Uncharged(ctx context.Context) ([]dao.Entrant, error)
	Choose(ctx context.Context, id uint, at time.Time) error
	MarkNotified(ctx context.Context, id uint, at time.Time) error
	UpdateExtras(ctx context.Context, id uint, wantsBedding bool, tshirtSize string) error
	SetChargeToken(ctx context.Context, id uint, token string) error
}

type EntrantRepository struct {
	dao EntrantDAO
}

func NewEntrantRepository(dao EntrantDAO) *EntrantRepository {
	return &EntrantRepository{
		dao: dao,
	}
}

// Create stamps CreatedAt server-side; the value is never client-supplied
// and never updated afterwards.
func (r *EntrantRepository) Create(ctx context.Context, entrant domain.Entrant) (domain.Entrant, error) {
	record := r.domainToDAO(entrant)
	record.ID = 0
	record.CreatedAt = time.Now().UTC()
	record.ChargeToken = nil
	record.ChosenAt = nil
	record.ChosenNotifiedAt = nil

	created, err := r.dao.Insert(ctx, record)
	if err != nil {
		return domain.Entrant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EntrantRepository) FindByID(ctx context.Context, id uint) (domain.Entrant, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Entrant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EntrantRepository) FindByEmail(ctx context.Context, email string) (domain.Entrant, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Entrant{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EntrantRepository) SubmittedBeforeDeadline(ctx context.Context, deadline time.Time) ([]domain.Entrant, error) {
	found, err := r.dao.SubmittedBeforeDeadline(ctx, deadline)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SubmittedBeforeDeadline -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *EntrantRepository) Unchosen(ctx context.Context) ([]domain.Entrant, error) {
	found, err := r.dao.Unchosen(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Unchosen -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *EntrantRepository) Chosen(ctx context.Context) ([]domain.Entrant, error) {
	found, err := r.dao.Chosen(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Chosen -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *EntrantRepository) TentCampers(ctx context.Context) ([]domain.Entrant, error) {
	found, err := r.dao.TentCampers(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TentCampers -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *EntrantRepository) BunkCampers(ctx context.Context) ([]domain.Entrant, error) {
	found, err := r.dao.BunkCampers(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.BunkCampers -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *EntrantRepository) CountTentCampers(ctx context.Context) (int64, error) {
	count, err := r.dao.CountTentCampers(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountTentCampers -> %w", err)
	}

	return count, nil
}

func (r *EntrantRepository) Uncharged(ctx context.Context) ([]domain.Entrant, error) {
	found, err := r.dao.Uncharged(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Uncharged -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *EntrantRepository) Choose(ctx context.Context, id uint) error {
	if err := r.dao.Choose(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("r.dao.Choose -> %w", err)
	}

	return nil
}

func (r *EntrantRepository) MarkNotified(ctx context.Context, id uint) error {
	if err := r.dao.MarkNotified(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("r.dao.MarkNotified -> %w", err)
	}

	return nil
}

func (r *EntrantRepository) UpdateExtras(ctx context.Context, id uint, wantsBedding bool, tshirtSize string) error {
	if err := r.dao.UpdateExtras(ctx, id, wantsBedding, tshirtSize); err != nil {
		return fmt.Errorf("r.dao.UpdateExtras -> %w", err)
	}

	return nil
}

func (r *EntrantRepository) SetChargeToken(ctx context.Context, id uint, token string) error {
	if err := r.dao.SetChargeToken(ctx, id, token); err != nil {
		return fmt.Errorf("r.dao.SetChargeToken -> %w", err)
	}

	return nil
}

func (r *EntrantRepository) daoToDomain(e dao.Entrant) domain.Entrant {
	return domain.Entrant{
		ID:               e.ID,
		CreatedAt:        e.CreatedAt,
		Name:             e.Name,
		Email:            e.Email,
		DietaryReqs:      fromNullableString(e.DietaryReqs),
		WantsBus:         e.WantsBus,
		Tent:             e.Tent,
		CCName:           e.CCName,
		CCAddress:        e.CCAddress,
		CCCity:           e.CCCity,
		CCPostCode:       e.CCPostCode,
		CCState:          e.CCState,
		CCCountry:        e.CCCountry,
		CardToken:        e.CardToken,
		IPAddress:        e.IPAddress,
		TicketType:       fromNullableString(e.TicketType),
		Notes:            fromNullableString(e.Notes),
		WantsBedding:     e.WantsBedding,
		TshirtSize:       e.TshirtSize,
		ChosenAt:         e.ChosenAt,
		ChosenNotifiedAt: e.ChosenNotifiedAt,
		ChargeToken:      fromNullableString(e.ChargeToken),
	}
}

func (r *EntrantRepository) daoToDomainAll(entrants []dao.Entrant) []domain.Entrant {
	converted := make([]domain.Entrant, 0, len(entrants))
	for _, e := range entrants {
		converted = append(converted, r.daoToDomain(e))
	}

	return converted
}

func (r *EntrantRepository) domainToDAO(e domain.Entrant) dao.Entrant {
	return dao.Entrant{
		ID:               e.ID,
		CreatedAt:        e.CreatedAt,
		Name:             e.Name,
		Email:            e.Email,
		DietaryReqs:      toNullableString(e.DietaryReqs),
		WantsBus:         e.WantsBus,
		Tent:             e.Tent,
		CCName:           e.CCName,
		CCAddress:        e.CCAddress,
		CCCity:           e.CCCity,
		CCPostCode:       e.CCPostCode,
		CCState:          e.CCState,
		CCCountry:        e.CCCountry,
		CardToken:        e.CardToken,
		IPAddress:        e.IPAddress,
		TicketType:       toNullableString(e.TicketType),
		Notes:            toNullableString(e.Notes),
		WantsBedding:     e.WantsBedding,
		TshirtSize:       e.TshirtSize,
		ChosenAt:         e.ChosenAt,
		ChosenNotifiedAt: e.ChosenNotifiedAt,
		ChargeToken:      toNullableString(e.ChargeToken),
	}
}

func fromNullableString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func toNullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
