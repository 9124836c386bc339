package models

import (
	"fmt"
	"time"
)

type Consistency string

const (
	ConsistencyWatery   Consistency = "watery"
	ConsistencySticky   Consistency = "sticky"
	ConsistencyCreamy   Consistency = "creamy"
	ConsistencyEggWhite Consistency = "egg-white"
	ConsistencyThick    Consistency = "thick"
)

func (consistency Consistency) Valid() bool {
	switch consistency {
	case ConsistencyWatery, ConsistencySticky, ConsistencyCreamy, ConsistencyEggWhite, ConsistencyThick:
		return true
	default:
		return false
	}
}

func ParseConsistency(raw string) (Consistency, error) {
	consistency := Consistency(normalizeEnumValue(raw))
	if !consistency.Valid() {
		return "", fmt.Errorf("unknown consistency %q", raw)
	}
	return consistency, nil
}

type DischargeColor string

const (
	ColorClear  DischargeColor = "clear"
	ColorWhite  DischargeColor = "white"
	ColorYellow DischargeColor = "yellow"
	ColorGreen  DischargeColor = "green"
	ColorBrown  DischargeColor = "brown"
	ColorPink   DischargeColor = "pink"
	ColorRed    DischargeColor = "red"
)

func (color DischargeColor) Valid() bool {
	switch color {
	case ColorClear, ColorWhite, ColorYellow, ColorGreen, ColorBrown, ColorPink, ColorRed:
		return true
	default:
		return false
	}
}

func ParseDischargeColor(raw string) (DischargeColor, error) {
	color := DischargeColor(normalizeEnumValue(raw))
	if !color.Valid() {
		return "", fmt.Errorf("unknown discharge color %q", raw)
	}
	return color, nil
}

type DischargeAmount string

const (
	AmountLight    DischargeAmount = "light"
	AmountModerate DischargeAmount = "moderate"
	AmountHeavy    DischargeAmount = "heavy"
)

func (amount DischargeAmount) Valid() bool {
	switch amount {
	case AmountLight, AmountModerate, AmountHeavy:
		return true
	default:
		return false
	}
}

func ParseDischargeAmount(raw string) (DischargeAmount, error) {
	amount := DischargeAmount(normalizeEnumValue(raw))
	if !amount.Valid() {
		return "", fmt.Errorf("unknown discharge amount %q", raw)
	}
	return amount, nil
}

type Odor string

const (
	OdorNone    Odor = "none"
	OdorMild    Odor = "mild"
	OdorStrong  Odor = "strong"
	OdorUnusual Odor = "unusual"
)

func (odor Odor) Valid() bool {
	switch odor {
	case OdorNone, OdorMild, OdorStrong, OdorUnusual:
		return true
	default:
		return false
	}
}

// Concerning reports odors that warrant a provider visit if they persist.
func (odor Odor) Concerning() bool {
	return odor == OdorUnusual || odor == OdorStrong
}

func ParseOdor(raw string) (Odor, error) {
	odor := Odor(normalizeEnumValue(raw))
	if !odor.Valid() {
		return "", fmt.Errorf("unknown odor %q", raw)
	}
	return odor, nil
}

type Discharge struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index:idx_discharges_user_date,priority:1" json:"userId"`
	Date        time.Time       `gorm:"not null;index:idx_discharges_user_date,priority:2,sort:desc" json:"date"`
	Consistency Consistency     `gorm:"not null" json:"consistency"`
	Color       DischargeColor  `gorm:"not null" json:"color"`
	Amount      DischargeAmount `gorm:"not null" json:"amount"`
	Odor        Odor            `gorm:"not null" json:"odor"`
	Notes       string          `gorm:"not null;default:''" json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
