package service

import (
	"context"
	"fmt"

	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/pin"
)

type BeddingPaymentRepository interface {
	Create(ctx context.Context, payment domain.BeddingPayment) (domain.BeddingPayment, error)
	FindByID(ctx context.Context, id uint) (domain.BeddingPayment, error)
}

// BeddingService persists a bedding payment and immediately charges it. Its
// charger carries the bedding description and price rather than the ticket
// defaults.
type BeddingService struct {
	repo    BeddingPaymentRepository
	charger *Charger
}

func NewBeddingService(repo BeddingPaymentRepository, charger *Charger) *BeddingService {
	return &BeddingService{
		repo:    repo,
		charger: charger,
	}
}

// Purchase saves the payment first, then attempts the charge. On a gateway
// failure the saved record is returned alongside the error so the caller can
// let the submitter retry against a fresh submission; the row stays uncharged.
func (s *BeddingService) Purchase(ctx context.Context, payment domain.BeddingPayment) (domain.BeddingPayment, error) {
	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return domain.BeddingPayment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if _, err = s.charger.Charge(ctx, &created); err != nil {
		return created, fmt.Errorf("s.charger.Charge -> %w", err)
	}

	return created, nil
}

// ChargeBeddingPayment retries the charge for an existing uncharged record.
func (s *BeddingService) ChargeBeddingPayment(ctx context.Context, id uint) (pin.Charge, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pin.Charge{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	charge, err := s.charger.Charge(ctx, &payment)
	if err != nil {
		return pin.Charge{}, fmt.Errorf("s.charger.Charge -> %w", err)
	}

	return charge, nil
}
