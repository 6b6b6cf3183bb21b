package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type ScholarshipEntrant struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`

	Name        string  `gorm:"not null"`
	Email       string  `gorm:"not null"`
	DietaryReqs *string `gorm:"type:text"`
	WantsBus    bool    `gorm:"not null"`

	ScholarshipPitch  string `gorm:"not null;type:text"`
	ScholarshipGithub string `gorm:"not null"`

	IPAddress string `gorm:"not null"`

	ChosenAt         *time.Time
	ChosenNotifiedAt *time.Time
}

type ScholarshipDAO struct {
	db *gorm.DB
}

func NewScholarshipDAO(db *gorm.DB) *ScholarshipDAO {
	return &ScholarshipDAO{
		db: db,
	}
}

func (d *ScholarshipDAO) Insert(ctx context.Context, entrant ScholarshipEntrant) (ScholarshipEntrant, error) {
	result := d.db.WithContext(ctx).Create(&entrant)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.NotNullViolation {
			return ScholarshipEntrant{}, ErrMissingFields
		}

		return ScholarshipEntrant{}, result.Error
	}

	return entrant, nil
}

func (d *ScholarshipDAO) List(ctx context.Context) ([]ScholarshipEntrant, error) {
	var entrants []ScholarshipEntrant

	result := d.db.WithContext(ctx).Order("id").Find(&entrants)
	if result.Error != nil {
		return nil, result.Error
	}

	return entrants, nil
}
