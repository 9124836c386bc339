package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/femora/internal/models"
)

func testCycle(length int, flow models.FlowIntensity, symptoms ...models.Symptom) models.Cycle {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return models.Cycle{
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, length),
		CycleLength:   length,
		FlowIntensity: flow,
		Symptoms:      symptoms,
	}
}

func TestBuildCycleStatsEmpty(t *testing.T) {
	stats := BuildCycleStats(nil)

	encoded, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.JSONEq(t, `{"averageCycleLength":0,"averageLength":0,"commonSymptoms":[],"flowIntensities":{},"totalCycles":0,"hasData":false}`, string(encoded))
}

func TestBuildCycleStatsAggregates(t *testing.T) {
	cycles := []models.Cycle{
		testCycle(28, models.FlowMedium, models.SymptomCramps, models.SymptomHeadache),
		testCycle(30, models.FlowHeavy, models.SymptomHeadache, models.SymptomBloating),
		testCycle(29, models.FlowMedium, models.SymptomFatigue, models.SymptomCramps),
	}

	stats := BuildCycleStats(cycles)

	assert.True(t, stats.HasData)
	assert.Equal(t, 3, stats.TotalCycles)
	assert.Equal(t, 29, stats.AverageCycleLength)
	assert.Equal(t, 29, stats.AverageLength)
	assert.Equal(t, []models.Symptom{models.SymptomCramps, models.SymptomHeadache, models.SymptomBloating}, stats.CommonSymptoms)
	assert.Equal(t, map[models.FlowIntensity]int{models.FlowMedium: 2, models.FlowHeavy: 1}, stats.FlowIntensities)
	require.NotNil(t, stats.LastCycleLength)
	assert.Equal(t, 28, *stats.LastCycleLength)
	assert.Equal(t, cycles[0].StartDate, *stats.LastCycleStart)
	assert.Equal(t, cycles[0].EndDate, *stats.LastCycleEnd)
}

func TestBuildCycleStatsRoundsHalfUp(t *testing.T) {
	stats := BuildCycleStats([]models.Cycle{
		testCycle(28, models.FlowLight),
		testCycle(29, models.FlowLight),
	})
	assert.Equal(t, 29, stats.AverageCycleLength)
}
