package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEntrantNotFound = errors.New("entrant not found")
	ErrMissingFields   = errors.New("required fields are missing")
	// ErrAlreadyCharged means the conditional charge-token write matched no
	// row: the token column was already set.
	ErrAlreadyCharged = errors.New("record has already been charged")
)

type Entrant struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`

	Name        string  `gorm:"not null"`
	Email       string  `gorm:"not null"`
	DietaryReqs *string `gorm:"type:text"`
	WantsBus    bool    `gorm:"not null"`
	Tent        bool    `gorm:"not null;default:false"`

	CCName     string `gorm:"not null"`
	CCAddress  string `gorm:"not null"`
	CCCity     string `gorm:"not null"`
	CCPostCode string `gorm:"not null"`
	CCState    string `gorm:"not null"`
	CCCountry  string `gorm:"not null"`
	CardToken  string `gorm:"not null"`

	IPAddress  string `gorm:"not null"`
	TicketType *string
	Notes      *string `gorm:"type:text"`

	TshirtSize   *string
	WantsBedding *bool

	ChosenAt         *time.Time
	ChosenNotifiedAt *time.Time
	ChargeToken      *string
}

type EntrantDAO struct {
	db *gorm.DB
}

func NewEntrantDAO(db *gorm.DB) *EntrantDAO {
	return &EntrantDAO{
		db: db,
	}
}

func (d *EntrantDAO) Insert(ctx context.Context, entrant Entrant) (Entrant, error) {
	result := d.db.WithContext(ctx).Create(&entrant)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.NotNullViolation {
			return Entrant{}, ErrMissingFields
		}

		return Entrant{}, result.Error
	}

	return entrant, nil
}

func (d *EntrantDAO) FindByID(ctx context.Context, id uint) (Entrant, error) {
	var entrant Entrant

	result := d.db.WithContext(ctx).First(&entrant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Entrant{}, ErrEntrantNotFound
		}

		return Entrant{}, result.Error
	}

	return entrant, nil
}

// FindByEmail matches case-insensitively and returns the first hit.
func (d *EntrantDAO) FindByEmail(ctx context.Context, email string) (Entrant, error) {
	var entrant Entrant

	result := d.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Order("id").
		First(&entrant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Entrant{}, ErrEntrantNotFound
		}

		return Entrant{}, result.Error
	}

	return entrant, nil
}

// SubmittedBeforeDeadline keeps the legacy predicate verbatim: it selects
// created_at >= deadline, not strictly before it. The name mirrors the
// original scope and is pending product clarification; do not invert.
func (d *EntrantDAO) SubmittedBeforeDeadline(ctx context.Context, deadline time.Time) ([]Entrant, error) {
	var entrants []Entrant

	result := d.db.WithContext(ctx).Where("created_at >= ?", deadline).Find(&entrants)
	if result.Error != nil {
		return nil, result.Error
	}

	return entrants, nil
}

func (d *EntrantDAO) Unchosen(ctx context.Context) ([]Entrant, error) {
	var entrants []Entrant

	result := d.db.WithContext(ctx).Where("chosen_at IS NULL").Find(&entrants)
	if result.Error != nil {
		return nil, result.Error
	}

	return entrants, nil
}

func (d *EntrantDAO) Chosen(ctx context.Context) ([]Entrant, error) {
	var entrants []Entrant

	result := d.db.WithContext(ctx).Where("chosen_at IS NOT NULL").Find(&entrants)
	if result.Error != nil {
		return nil, result.Error
	}

	return entrants, nil
}

func (d *EntrantDAO) TentCampers(ctx context.Context) ([]Entrant, error) {
	var entrants []Entrant

	result := d.db.WithContext(ctx).Where("tent = ?", true).Find(&entrants)
	if result.Error != nil {
		return nil, result.Error
	}

	return entrants, nil
}

func (d *EntrantDAO) BunkCampers(ctx context.Context) ([]Entrant, error) {
	var entrants []Entrant

	result := d.db.WithContext(ctx).Where("tent = ?", false).Find(&entrants)
	if result.Error != nil {
		return nil, result.Error
	}

	return entrants, nil
}

func (d *EntrantDAO) CountTentCampers(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Entrant{}).Where("tent = ?", true).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EntrantDAO) Uncharged(ctx context.Context) ([]Entrant, error) {
	var entrants []Entrant

	result := d.db.WithContext(ctx).Where("charge_token IS NULL").Find(&entrants)
	if result.Error != nil {
		return nil, result.Error
	}

	return entrants, nil
}

func (d *EntrantDAO) Choose(ctx context.Context, id uint, at time.Time) error {
	result := d.db.WithContext(ctx).Model(&Entrant{}).
		Where("id = ?", id).
		Update("chosen_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntrantNotFound
	}

	return nil
}

func (d *EntrantDAO) MarkNotified(ctx context.Context, id uint, at time.Time) error {
	result := d.db.WithContext(ctx).Model(&Entrant{}).
		Where("id = ?", id).
		Update("chosen_notified_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntrantNotFound
	}

	return nil
}

// UpdateExtras writes both extras fields together.
func (d *EntrantDAO) UpdateExtras(ctx context.Context, id uint, wantsBedding bool, tshirtSize string) error {
	result := d.db.WithContext(ctx).Model(&Entrant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"wants_bedding": wantsBedding,
			"tshirt_size":   tshirtSize,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntrantNotFound
	}

	return nil
}

// SetChargeToken only succeeds if charge_token is still NULL, so two racing
// charge attempts cannot both record a token.
func (d *EntrantDAO) SetChargeToken(ctx context.Context, id uint, token string) error {
	result := d.db.WithContext(ctx).Model(&Entrant{}).
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
