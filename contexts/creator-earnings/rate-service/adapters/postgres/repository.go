package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"claimdesk/contexts/creator-earnings/rate-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/rate-service/domain/errors"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// ReplaceActiveRate swaps the active record inside one transaction. The
// partial unique index on (active) WHERE active rejects a second active row
// if two admins race past the update.
func (r *Repository) ReplaceActiveRate(ctx context.Context, rate entities.RateConfiguration) error {
	row := rateModelFromEntity(rate)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&rateModel{}).
			Where("active = ?", true).
			Update("active", false).
			Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
}

func (r *Repository) GetActiveRate(ctx context.Context) (entities.RateConfiguration, error) {
	var row rateModel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RateConfiguration{}, domainerrors.ErrNoActiveRate
		}
		return entities.RateConfiguration{}, err
	}
	return row.toEntity(), nil
}

type rateModel struct {
	RateID          string    `gorm:"column:rate_id;primaryKey"`
	RatePerLike     float64   `gorm:"column:rate_per_like"`
	RatePer100Views float64   `gorm:"column:rate_per_100_views"`
	Active          bool      `gorm:"column:active"`
	CreatedBy       string    `gorm:"column:created_by"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (rateModel) TableName() string {
	return "rate_configurations"
}

func rateModelFromEntity(rate entities.RateConfiguration) rateModel {
	return rateModel{
		RateID:          strings.TrimSpace(rate.RateID),
		RatePerLike:     rate.RatePerLike,
		RatePer100Views: rate.RatePer100Views,
		Active:          rate.Active,
		CreatedBy:       strings.TrimSpace(rate.CreatedBy),
		CreatedAt:       rate.CreatedAt.UTC(),
	}
}

func (m rateModel) toEntity() entities.RateConfiguration {
	return entities.RateConfiguration{
		RateID:          m.RateID,
		RatePerLike:     m.RatePerLike,
		RatePer100Views: m.RatePer100Views,
		Active:          m.Active,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}
