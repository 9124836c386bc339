package db

import (
	"context"

	"github.com/terraincognita07/femora/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

// ListRecentByUser returns the owner's cycles newest start first. A limit of
// zero or less returns the full history.
func (repo *CycleRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Cycle, error) {
	query := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	cycles := make([]models.Cycle, 0)
	if err := query.Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) Create(ctx context.Context, cycle *models.Cycle) error {
	return repo.database.WithContext(ctx).Create(cycle).Error
}
