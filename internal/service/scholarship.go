package service

import (
	"context"
	"fmt"

	"github.com/railscamp/registration-api/internal/domain"
)

type ScholarshipRepository interface {
	Create(ctx context.Context, entrant domain.ScholarshipEntrant) (domain.ScholarshipEntrant, error)
	List(ctx context.Context) ([]domain.ScholarshipEntrant, error)
}

type ScholarshipService struct {
	repo ScholarshipRepository
}

func NewScholarshipService(repo ScholarshipRepository) *ScholarshipService {
	return &ScholarshipService{
		repo: repo,
	}
}

func (s *ScholarshipService) Apply(ctx context.Context, entrant domain.ScholarshipEntrant) (domain.ScholarshipEntrant, error) {
	created, err := s.repo.Create(ctx, entrant)
	if err != nil {
		return domain.ScholarshipEntrant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ScholarshipService) List(ctx context.Context) ([]domain.ScholarshipEntrant, error) {
	entrants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return entrants, nil
}
