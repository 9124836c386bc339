package models

import (
	"fmt"
	"strings"
	"time"
)

type FlowIntensity string

const (
	FlowLight  FlowIntensity = "light"
	FlowMedium FlowIntensity = "medium"
	FlowHeavy  FlowIntensity = "heavy"
)

func (flow FlowIntensity) Valid() bool {
	switch flow {
	case FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

func ParseFlowIntensity(raw string) (FlowIntensity, error) {
	flow := FlowIntensity(normalizeEnumValue(raw))
	if !flow.Valid() {
		return "", fmt.Errorf("unknown flow intensity %q", raw)
	}
	return flow, nil
}

type Symptom string

const (
	SymptomCramps     Symptom = "cramps"
	SymptomHeadache   Symptom = "headache"
	SymptomBloating   Symptom = "bloating"
	SymptomFatigue    Symptom = "fatigue"
	SymptomMoodSwings Symptom = "mood swings"
)

func (symptom Symptom) Valid() bool {
	switch symptom {
	case SymptomCramps, SymptomHeadache, SymptomBloating, SymptomFatigue, SymptomMoodSwings:
		return true
	default:
		return false
	}
}

func ParseSymptom(raw string) (Symptom, error) {
	symptom := Symptom(normalizeEnumValue(raw))
	if !symptom.Valid() {
		return "", fmt.Errorf("unknown symptom %q", raw)
	}
	return symptom, nil
}

// Cycle is immutable once stored; there is no update or delete path.
type Cycle struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index:idx_cycles_user_start,priority:1" json:"userId"`
	StartDate     time.Time     `gorm:"not null;index:idx_cycles_user_start,priority:2,sort:desc" json:"startDate"`
	EndDate       time.Time     `gorm:"not null" json:"endDate"`
	CycleLength   int           `gorm:"not null" json:"cycleLength"`
	FlowIntensity FlowIntensity `gorm:"not null" json:"flowIntensity"`
	Symptoms      []Symptom     `gorm:"serializer:json" json:"symptoms"`
	Notes         string        `gorm:"not null;default:''" json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (cycle Cycle) HasSymptom(symptom Symptom) bool {
	for _, candidate := range cycle.Symptoms {
		if candidate == symptom {
			return true
		}
	}
	return false
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
