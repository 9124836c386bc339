package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/femora/internal/models"
)

type CycleRepository interface {
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Cycle, error)
	Create(ctx context.Context, cycle *models.Cycle) error
}

type CycleInput struct {
	StartDate     time.Time
	EndDate       time.Time
	CycleLength   int
	FlowIntensity models.FlowIntensity
	Symptoms      []models.Symptom
	Notes         string
}

type CycleService struct {
	cycles CycleRepository
}

func NewCycleService(cycles CycleRepository) *CycleService {
	return &CycleService{cycles: cycles}
}

func (service *CycleService) Create(ctx context.Context, userID uint, input CycleInput) (models.Cycle, error) {
	cycle, err := buildCycle(userID, input)
	if err != nil {
		return models.Cycle{}, err
	}
	if err := service.cycles.Create(ctx, &cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("create cycle: %w", err)
	}
	return cycle, nil
}

func (service *CycleService) List(ctx context.Context, userID uint) ([]models.Cycle, error) {
	cycles, err := service.cycles.ListRecentByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return cycles, nil
}

func (service *CycleService) Stats(ctx context.Context, userID uint) (CycleStats, error) {
	cycles, err := service.List(ctx, userID)
	if err != nil {
		return CycleStats{}, err
	}
	return BuildCycleStats(cycles), nil
}

func buildCycle(userID uint, input CycleInput) (models.Cycle, error) {
	if input.StartDate.IsZero() {
		return models.Cycle{}, newValidationError("startDate", "Start date is required")
	}
	if input.EndDate.IsZero() {
		return models.Cycle{}, newValidationError("endDate", "End date is required")
	}

	start := input.StartDate.UTC()
	end := input.EndDate.UTC()
	if !end.After(start) {
		return models.Cycle{}, newValidationError("endDate", "End date must be after start date")
	}
	if !input.FlowIntensity.Valid() {
		return models.Cycle{}, newValidationError("flowIntensity", "Flow intensity must be light, medium or heavy")
	}

	length := input.CycleLength
	switch {
	case length < 0:
		return models.Cycle{}, newValidationError("cycleLength", "Cycle length must be at least 1 day")
	case length == 0:
		length = cycleLengthDays(start, end)
	}

	symptoms, err := dedupeSymptoms(input.Symptoms)
	if err != nil {
		return models.Cycle{}, err
	}

	return models.Cycle{
		UserID:        userID,
		StartDate:     start,
		EndDate:       end,
		CycleLength:   length,
		FlowIntensity: input.FlowIntensity,
		Symptoms:      symptoms,
		Notes:         strings.TrimSpace(input.Notes),
	}, nil
}

// cycleLengthDays counts started days between start and end, never less than one.
func cycleLengthDays(start time.Time, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func dedupeSymptoms(symptoms []models.Symptom) ([]models.Symptom, error) {
	unique := make([]models.Symptom, 0, len(symptoms))
	seen := make(map[models.Symptom]struct{}, len(symptoms))
	for _, symptom := range symptoms {
		if !symptom.Valid() {
			return nil, newValidationError("symptoms", fmt.Sprintf("Unknown symptom %q", symptom))
		}
		if _, ok := seen[symptom]; ok {
			continue
		}
		seen[symptom] = struct{}{}
		unique = append(unique, symptom)
	}
	return unique, nil
}
