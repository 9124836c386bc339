package services

import (
	"math"
	"time"

	"github.com/terraincognita07/femora/internal/models"
)

const commonSymptomLimit = 3

type CycleStats struct {
	AverageCycleLength int                          `json:"averageCycleLength"`
	// AverageLength repeats AverageCycleLength under the key older clients read.
	AverageLength      int                          `json:"averageLength"`
	CommonSymptoms     []models.Symptom             `json:"commonSymptoms"`
	FlowIntensities    map[models.FlowIntensity]int `json:"flowIntensities"`
	TotalCycles        int                          `json:"totalCycles"`
	HasData            bool                         `json:"hasData"`
	LastCycleStart     *time.Time                   `json:"lastCycleStart,omitempty"`
	LastCycleEnd       *time.Time                   `json:"lastCycleEnd,omitempty"`
	LastCycleLength    *int                         `json:"lastCycleLength,omitempty"`
}

// BuildCycleStats summarizes cycles ordered by start date, newest first.
func BuildCycleStats(cycles []models.Cycle) CycleStats {
	stats := CycleStats{
		CommonSymptoms:  []models.Symptom{},
		FlowIntensities: map[models.FlowIntensity]int{},
	}
	if len(cycles) == 0 {
		return stats
	}

	symptoms := newFrequencyCounter[models.Symptom]()
	flows := newFrequencyCounter[models.FlowIntensity]()
	for _, cycle := range cycles {
		for _, symptom := range cycle.Symptoms {
			symptoms.add(symptom)
		}
		flows.add(cycle.FlowIntensity)
	}

	ranked := symptoms.ranked()
	if len(ranked) > commonSymptomLimit {
		ranked = ranked[:commonSymptomLimit]
	}

	last := cycles[0]
	lastStart := last.StartDate
	lastEnd := last.EndDate
	lastLength := last.CycleLength

	stats.AverageCycleLength = roundHalfUp(averageCycleLength(cycles))
	stats.AverageLength = stats.AverageCycleLength
	stats.CommonSymptoms = ranked
	stats.FlowIntensities = flows.asMap()
	stats.TotalCycles = len(cycles)
	stats.HasData = true
	stats.LastCycleStart = &lastStart
	stats.LastCycleEnd = &lastEnd
	stats.LastCycleLength = &lastLength
	return stats
}

func averageCycleLength(cycles []models.Cycle) float64 {
	if len(cycles) == 0 {
		return 0
	}
	total := 0
	for _, cycle := range cycles {
		total += cycle.CycleLength
	}
	return float64(total) / float64(len(cycles))
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
