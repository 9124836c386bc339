package services

import (
	"fmt"

	"github.com/terraincognita07/femora/internal/models"
)

const unusualOdorMessage = "You have reported an unusual or strong odor. Please consult a healthcare provider if this persists."

type AlertSeverity string

const (
	AlertWarning AlertSeverity = "warning"
	AlertInfo    AlertSeverity = "info"
)

type Alert struct {
	Severity AlertSeverity `json:"severity"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
}

// AlertRule compares the latest discharge with the one before it.
type AlertRule struct {
	Name     string
	Evaluate func(latest, previous models.Discharge) (Alert, bool)
}

type PatternMonitor struct {
	rules []AlertRule
}

func NewPatternMonitor() *PatternMonitor {
	return &PatternMonitor{rules: DefaultAlertRules()}
}

// Evaluate expects discharges newest first and only looks at the first two.
func (monitor *PatternMonitor) Evaluate(discharges []models.Discharge) []Alert {
	alerts := make([]Alert, 0)
	if len(discharges) < 2 {
		return alerts
	}

	latest, previous := discharges[0], discharges[1]
	for _, rule := range monitor.rules {
		if alert, ok := rule.Evaluate(latest, previous); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

func DefaultAlertRules() []AlertRule {
	return []AlertRule{
		{Name: "color-change", Evaluate: colorChangeAlert},
		{Name: "consistency-change", Evaluate: consistencyChangeAlert},
		{Name: "amount-change", Evaluate: amountChangeAlert},
		{Name: "odor", Evaluate: odorAlert},
	}
}

func colorChangeAlert(latest, previous models.Discharge) (Alert, bool) {
	if latest.Color == previous.Color {
		return Alert{}, false
	}
	return Alert{
		Severity: AlertWarning,
		Title:    "Color Change Detected",
		Message:  fmt.Sprintf("Your discharge color has changed from %s to %s", previous.Color, latest.Color),
	}, true
}

func consistencyChangeAlert(latest, previous models.Discharge) (Alert, bool) {
	if latest.Consistency == previous.Consistency {
		return Alert{}, false
	}
	return Alert{
		Severity: AlertInfo,
		Title:    "Consistency Change",
		Message:  fmt.Sprintf("Your discharge consistency has changed from %s to %s", previous.Consistency, latest.Consistency),
	}, true
}

func amountChangeAlert(latest, previous models.Discharge) (Alert, bool) {
	if latest.Amount == previous.Amount {
		return Alert{}, false
	}
	return Alert{
		Severity: AlertInfo,
		Title:    "Amount Change",
		Message:  fmt.Sprintf("Your discharge amount has changed from %s to %s", previous.Amount, latest.Amount),
	}, true
}

func odorAlert(latest, _ models.Discharge) (Alert, bool) {
	if !latest.Odor.Concerning() {
		return Alert{}, false
	}
	return Alert{Severity: AlertWarning, Title: "Unusual Odor", Message: unusualOdorMessage}, true
}
