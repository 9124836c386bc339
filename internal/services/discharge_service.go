package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/femora/internal/models"
)

const (
	patternHistoryLimit  = 30
	alertComparisonLimit = 2
)

type DischargeRepository interface {
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Discharge, error)
	Create(ctx context.Context, discharge *models.Discharge) error
}

type DischargeInput struct {
	Date        time.Time
	Consistency models.Consistency
	Color       models.DischargeColor
	Amount      models.DischargeAmount
	Odor        models.Odor
	Notes       string
}

type DischargeService struct {
	discharges DischargeRepository
	monitor    *PatternMonitor
}

func NewDischargeService(discharges DischargeRepository) *DischargeService {
	return &DischargeService{discharges: discharges, monitor: NewPatternMonitor()}
}

func (service *DischargeService) Create(ctx context.Context, userID uint, input DischargeInput) (models.Discharge, error) {
	discharge, err := buildDischarge(userID, input)
	if err != nil {
		return models.Discharge{}, err
	}
	if err := service.discharges.Create(ctx, &discharge); err != nil {
		return models.Discharge{}, fmt.Errorf("create discharge: %w", err)
	}
	return discharge, nil
}

func (service *DischargeService) List(ctx context.Context, userID uint) ([]models.Discharge, error) {
	discharges, err := service.discharges.ListRecentByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list discharges: %w", err)
	}
	return discharges, nil
}

func (service *DischargeService) Patterns(ctx context.Context, userID uint, now time.Time) (DischargePatternSummary, error) {
	discharges, err := service.discharges.ListRecentByUser(ctx, userID, patternHistoryLimit)
	if err != nil {
		return DischargePatternSummary{}, fmt.Errorf("list discharge patterns: %w", err)
	}
	return SummarizeDischargePatterns(discharges, now), nil
}

func (service *DischargeService) Alerts(ctx context.Context, userID uint) ([]Alert, error) {
	discharges, err := service.discharges.ListRecentByUser(ctx, userID, alertComparisonLimit)
	if err != nil {
		return nil, fmt.Errorf("list discharge alerts: %w", err)
	}
	return service.monitor.Evaluate(discharges), nil
}

func buildDischarge(userID uint, input DischargeInput) (models.Discharge, error) {
	switch {
	case input.Date.IsZero():
		return models.Discharge{}, newValidationError("date", "Date is required")
	case !input.Consistency.Valid():
		return models.Discharge{}, newValidationError("consistency", "Unknown consistency")
	case !input.Color.Valid():
		return models.Discharge{}, newValidationError("color", "Unknown color")
	case !input.Amount.Valid():
		return models.Discharge{}, newValidationError("amount", "Unknown amount")
	case !input.Odor.Valid():
		return models.Discharge{}, newValidationError("odor", "Unknown odor")
	}

	return models.Discharge{
		UserID:      userID,
		Date:        input.Date.UTC(),
		Consistency: input.Consistency,
		Color:       input.Color,
		Amount:      input.Amount,
		Odor:        input.Odor,
		Notes:       strings.TrimSpace(input.Notes),
	}, nil
}
