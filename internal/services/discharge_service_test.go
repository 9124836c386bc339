package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/femora/internal/models"
)

func TestDischargeServiceCreate(t *testing.T) {
	repo := &stubDischargeRepo{}
	service := NewDischargeService(repo)

	discharge, err := service.Create(context.Background(), 3, DischargeInput{
		Date:        time.Date(2026, time.March, 1, 8, 0, 0, 0, time.FixedZone("EST", -5*60*60)),
		Consistency: models.ConsistencyCreamy,
		Color:       models.ColorWhite,
		Amount:      models.AmountModerate,
		Odor:        models.OdorNone,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), discharge.UserID)
	assert.Equal(t, time.Date(2026, time.March, 1, 13, 0, 0, 0, time.UTC), discharge.Date)
	assert.Len(t, repo.created, 1)
}

func TestDischargeServiceCreateRejectsUnknownColor(t *testing.T) {
	repo := &stubDischargeRepo{}

	_, err := NewDischargeService(repo).Create(context.Background(), 3, DischargeInput{
		Date:        time.Now(),
		Consistency: models.ConsistencyCreamy,
		Color:       "purple",
		Amount:      models.AmountModerate,
		Odor:        models.OdorNone,
	})

	validationErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "color", validationErr.Field)
	assert.Empty(t, repo.created)
}

func TestDischargeServicePatternsUsesHistoryLimit(t *testing.T) {
	repo := &stubDischargeRepo{}
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	summary, err := NewDischargeService(repo).Patterns(context.Background(), 1, now)
	require.NoError(t, err)
	assert.Equal(t, 30, repo.lastLimit)
	assert.Equal(t, now, summary.LastUpdated)
}

func TestDischargeServiceAlertsComparesLatestTwo(t *testing.T) {
	repo := &stubDischargeRepo{discharges: []models.Discharge{
		testDischarge(models.ConsistencyCreamy, models.ColorWhite, models.AmountLight, models.OdorNone),
		testDischarge(models.ConsistencyCreamy, models.ColorClear, models.AmountLight, models.OdorNone),
		testDischarge(models.ConsistencyWatery, models.ColorRed, models.AmountHeavy, models.OdorNone),
	}}

	alerts, err := NewDischargeService(repo).Alerts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lastLimit)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Color Change Detected", alerts[0].Title)
}

func TestDischargeServiceWrapsStorageErrors(t *testing.T) {
	storageErr := errors.New("connection reset")
	service := NewDischargeService(&stubDischargeRepo{listErr: storageErr})

	_, err := service.List(context.Background(), 1)
	assert.ErrorIs(t, err, storageErr)
	_, err = service.Alerts(context.Background(), 1)
	assert.ErrorIs(t, err, storageErr)
}
