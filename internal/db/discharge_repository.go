package db

import (
	"context"

	"github.com/terraincognita07/femora/internal/models"
	"gorm.io/gorm"
)

type DischargeRepository struct {
	database *gorm.DB
}

func NewDischargeRepository(database *gorm.DB) *DischargeRepository {
	return &DischargeRepository{database: database}
}

func (repo *DischargeRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Discharge, error) {
	query := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	discharges := make([]models.Discharge, 0)
	if err := query.Find(&discharges).Error; err != nil {
		return nil, err
	}
	return discharges, nil
}

func (repo *DischargeRepository) Create(ctx context.Context, discharge *models.Discharge) error {
	return repo.database.WithContext(ctx).Create(discharge).Error
}
