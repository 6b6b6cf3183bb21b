package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/repository/dao"
)

type ScholarshipDAO interface {
	Insert(ctx context.Context, entrant dao.ScholarshipEntrant) (dao.ScholarshipEntrant, error)
	List(ctx context.Context) ([]dao.ScholarshipEntrant, error)
}

type ScholarshipRepository struct {
	dao ScholarshipDAO
}

func NewScholarshipRepository(dao ScholarshipDAO) *ScholarshipRepository {
	return &ScholarshipRepository{
		dao: dao,
	}
}

func (r *ScholarshipRepository) Create(ctx context.Context, entrant domain.ScholarshipEntrant) (domain.ScholarshipEntrant, error) {
	record := r.domainToDAO(entrant)
	record.ID = 0
	record.CreatedAt = time.Now().UTC()
	record.ChosenAt = nil
	record.ChosenNotifiedAt = nil

	created, err := r.dao.Insert(ctx, record)
	if err != nil {
		return domain.ScholarshipEntrant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ScholarshipRepository) List(ctx context.Context) ([]domain.ScholarshipEntrant, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	converted := make([]domain.ScholarshipEntrant, 0, len(found))
	for _, e := range found {
		converted = append(converted, r.daoToDomain(e))
	}

	return converted, nil
}

func (r *ScholarshipRepository) daoToDomain(e dao.ScholarshipEntrant) domain.ScholarshipEntrant {
	return domain.ScholarshipEntrant{
		ID:                e.ID,
		CreatedAt:         e.CreatedAt,
		Name:              e.Name,
		Email:             e.Email,
		DietaryReqs:       fromNullableString(e.DietaryReqs),
		WantsBus:          e.WantsBus,
		ScholarshipPitch:  e.ScholarshipPitch,
		ScholarshipGithub: e.ScholarshipGithub,
		IPAddress:         e.IPAddress,
		ChosenAt:          e.ChosenAt,
		ChosenNotifiedAt:  e.ChosenNotifiedAt,
	}
}

func (r *ScholarshipRepository) domainToDAO(e domain.ScholarshipEntrant) dao.ScholarshipEntrant {
	return dao.ScholarshipEntrant{
		ID:                e.ID,
		CreatedAt:         e.CreatedAt,
		Name:              e.Name,
		Email:             e.Email,
		DietaryReqs:       toNullableString(e.DietaryReqs),
		WantsBus:          e.WantsBus,
		ScholarshipPitch:  e.ScholarshipPitch,
		ScholarshipGithub: e.ScholarshipGithub,
		IPAddress:         e.IPAddress,
		ChosenAt:          e.ChosenAt,
		ChosenNotifiedAt:  e.ChosenNotifiedAt,
	}
}
