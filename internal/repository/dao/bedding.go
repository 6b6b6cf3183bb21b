package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrBeddingPaymentNotFound = errors.New("bedding payment not found")

type BeddingPayment struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`

	Email string

	CCName     string `gorm:"not null"`
	CCAddress  string `gorm:"not null"`
	CCCity     string `gorm:"not null"`
	CCPostCode string `gorm:"not null"`
	CCState    string `gorm:"not null"`
	CCCountry  string `gorm:"not null"`
	CardToken  string `gorm:"not null"`

	IPAddress   string `gorm:"not null"`
	ChargeToken *string
}

type BeddingPaymentDAO struct {
	db *gorm.DB
}

func NewBeddingPaymentDAO(db *gorm.DB) *BeddingPaymentDAO {
	return &BeddingPaymentDAO{
		db: db,
	}
}

func (d *BeddingPaymentDAO) Insert(ctx context.Context, payment BeddingPayment) (BeddingPayment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.NotNullViolation {
			return BeddingPayment{}, ErrMissingFields
		}

		return BeddingPayment{}, result.Error
	}

	return payment, nil
}

func (d *BeddingPaymentDAO) FindByID(ctx context.Context, id uint) (BeddingPayment, error) {
	var payment BeddingPayment

	result := d.db.WithContext(ctx).First(&payment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BeddingPayment{}, ErrBeddingPaymentNotFound
		}

		return BeddingPayment{}, result.Error
	}

	return payment, nil
}

// SetChargeToken has the same at-most-once guard as the entrant variant.
func (d *BeddingPaymentDAO) SetChargeToken(ctx context.Context, id uint, token string) error {
	result := d.db.WithContext(ctx).Model(&BeddingPayment{}).
		Where("id = ? AND charge_token IS NULL", id).
		Update("charge_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyCharged
	}

	return nil
}
