package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/femora/internal/models"
)

type DischargePatternSummary struct {
	CurrentPattern   string    `json:"currentPattern"`
	History          string    `json:"history"`
	LastUpdated      time.Time `json:"lastUpdated"`
	DistinctPatterns int       `json:"distinctPatterns"`
}

type dischargePattern struct {
	consistency models.Consistency
	color       models.DischargeColor
}

// SummarizeDischargePatterns describes the latest discharge. The history line
// keeps the entry count in both positions for client compatibility; the real
// number of consistency/color combinations is in DistinctPatterns.
func SummarizeDischargePatterns(discharges []models.Discharge, now time.Time) DischargePatternSummary {
	if len(discharges) == 0 {
		return DischargePatternSummary{
			CurrentPattern: "No data available",
			History:        "No discharge patterns recorded yet",
			LastUpdated:    now,
		}
	}

	patterns := newFrequencyCounter[dischargePattern]()
	for _, discharge := range discharges {
		patterns.add(dischargePattern{consistency: discharge.Consistency, color: discharge.Color})
	}

	latest := discharges[0]
	return DischargePatternSummary{
		CurrentPattern:   fmt.Sprintf("%s %s discharge", latest.Consistency, latest.Color),
		History:          fmt.Sprintf("Last %d entries show %d different patterns", len(discharges), len(discharges)),
		LastUpdated:      latest.Date,
		DistinctPatterns: len(patterns.order),
	}
}
