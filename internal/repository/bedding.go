package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/repository/dao"
)

var ErrBeddingPaymentNotFound = dao.ErrBeddingPaymentNotFound

type BeddingPaymentDAO interface {
	Insert(ctx context.Context, payment dao.BeddingPayment) (dao.BeddingPayment, error)
	FindByID(ctx context.Context, id uint) (dao.BeddingPayment, error)
	SetChargeToken(ctx context.Context, id uint, token string) error
}

type BeddingPaymentRepository struct {
	dao BeddingPaymentDAO
}

func NewBeddingPaymentRepository(dao BeddingPaymentDAO) *BeddingPaymentRepository {
	return &BeddingPaymentRepository{
		dao: dao,
	}
}

func (r *BeddingPaymentRepository) Create(ctx context.Context, payment domain.BeddingPayment) (domain.BeddingPayment, error) {
	record := r.domainToDAO(payment)
	record.ID = 0
	record.CreatedAt = time.Now().UTC()
	record.ChargeToken = nil

	created, err := r.dao.Insert(ctx, record)
	if err != nil {
		return domain.BeddingPayment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *BeddingPaymentRepository) FindByID(ctx context.Context, id uint) (domain.BeddingPayment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.BeddingPayment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BeddingPaymentRepository) SetChargeToken(ctx context.Context, id uint, token string) error {
	if err := r.dao.SetChargeToken(ctx, id, token); err != nil {
		return fmt.Errorf("r.dao.SetChargeToken -> %w", err)
	}

	return nil
}

func (r *BeddingPaymentRepository) daoToDomain(p dao.BeddingPayment) domain.BeddingPayment {
	return domain.BeddingPayment{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		Email:       p.Email,
		CCName:      p.CCName,
		CCAddress:   p.CCAddress,
		CCCity:      p.CCCity,
		CCPostCode:  p.CCPostCode,
		CCState:     p.CCState,
		CCCountry:   p.CCCountry,
		CardToken:   p.CardToken,
		IPAddress:   p.IPAddress,
		ChargeToken: fromNullableString(p.ChargeToken),
	}
}

func (r *BeddingPaymentRepository) domainToDAO(p domain.BeddingPayment) dao.BeddingPayment {
	return dao.BeddingPayment{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		Email:       p.Email,
		CCName:      p.CCName,
		CCAddress:   p.CCAddress,
		CCCity:      p.CCCity,
		CCPostCode:  p.CCPostCode,
		CCState:     p.CCState,
		CCCountry:   p.CCCountry,
		CardToken:   p.CardToken,
		IPAddress:   p.IPAddress,
		ChargeToken: toNullableString(p.ChargeToken),
	}
}
