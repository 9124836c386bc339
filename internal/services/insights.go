package services

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/femora/internal/models"
)

type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
	InsightTip     InsightType = "tip"
)

type InsightCategory string

const (
	CategoryCycle     InsightCategory = "cycle"
	CategoryDischarge InsightCategory = "discharge"
	CategoryGeneral   InsightCategory = "general"
)

type Insight struct {
	Type        InsightType     `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    InsightCategory `json:"category"`
}

// InsightConfig holds the static thresholds the insight rules compare against.
type InsightConfig struct {
	ShortCycleDays      int
	LongCycleDays       int
	IrregularDeltaDays  int
	FrequentSymptomMin  int
	PatternChangeWindow int
	MinimumInsights     int
}

func DefaultInsightConfig() InsightConfig {
	return InsightConfig{
		ShortCycleDays:      21,
		LongCycleDays:       35,
		IrregularDeltaDays:  7,
		FrequentSymptomMin:  3,
		PatternChangeWindow: 3,
		MinimumInsights:     3,
	}
}

// InsightSnapshot is the data every rule sees for one evaluation.
type InsightSnapshot struct {
	Cycles     []models.Cycle
	Discharges []models.Discharge
	Config     InsightConfig

	averageLength float64
}

func (snapshot InsightSnapshot) hasCycles() bool {
	return len(snapshot.Cycles) > 0
}

func (snapshot InsightSnapshot) hasDischarges() bool {
	return len(snapshot.Discharges) > 0
}

// InsightRule turns a snapshot into at most one insight.
type InsightRule struct {
	Name     string
	Evaluate func(snapshot InsightSnapshot) (Insight, bool)
}

var fallbackInsights = []Insight{
	{
		Type:        InsightTip,
		Title:       "Stay Hydrated",
		Description: "Drink plenty of water throughout your cycle to maintain healthy discharge patterns.",
		Category:    CategoryGeneral,
	},
	{
		Type:        InsightTip,
		Title:       "Track Patterns",
		Description: "Continue tracking both cycle and discharge patterns to better understand your body's signals.",
		Category:    CategoryGeneral,
	},
}

type InsightEngine struct {
	config InsightConfig
	rules  []InsightRule
}

func NewInsightEngine(config InsightConfig) *InsightEngine {
	return &InsightEngine{config: config, rules: DefaultInsightRules()}
}

func NewInsightEngineWithRules(config InsightConfig, rules []InsightRule) *InsightEngine {
	return &InsightEngine{config: config, rules: rules}
}

// Generate evaluates every rule in order against recent cycles and discharges,
// both newest first. General tips are appended when too few rules fired.
func (engine *InsightEngine) Generate(cycles []models.Cycle, discharges []models.Discharge) []Insight {
	snapshot := InsightSnapshot{
		Cycles:        cycles,
		Discharges:    discharges,
		Config:        engine.config,
		averageLength: averageCycleLength(cycles),
	}

	insights := make([]Insight, 0, len(engine.rules))
	for _, rule := range engine.rules {
		if insight, ok := rule.Evaluate(snapshot); ok {
			insights = append(insights, insight)
		}
	}

	if len(insights) < engine.config.MinimumInsights {
		insights = append(insights, fallbackInsights...)
	}
	return insights
}

func DefaultInsightRules() []InsightRule {
	return []InsightRule{
		{Name: "cycle-length", Evaluate: cycleLengthRule},
		{Name: "irregular-cycle", Evaluate: irregularCycleRule},
		{Name: "heavy-flow", Evaluate: heavyFlowRule},
		{Name: "frequent-symptoms", Evaluate: frequentSymptomsRule},
		{Name: "discharge-color", Evaluate: dischargeColorRule},
		{Name: "fertile-window", Evaluate: fertileWindowRule},
		{Name: "discharge-pattern-change", Evaluate: dischargePatternChangeRule},
		{Name: "discharge-odor", Evaluate: dischargeOdorRule},
		{Name: "track-ovulation", Evaluate: trackOvulationRule},
		{Name: "pain-management", Evaluate: painManagementRule},
	}
}

func cycleLengthRule(snapshot InsightSnapshot) (Insight, bool) {
	if !snapshot.hasCycles() {
		return Insight{}, false
	}
	average := snapshot.averageLength
	short := average < float64(snapshot.Config.ShortCycleDays)
	long := average > float64(snapshot.Config.LongCycleDays)
	if !short && !long {
		return Insight{}, false
	}

	title, comparison := "Long Cycle Length", "longer"
	if short {
		title, comparison = "Short Cycle Length", "shorter"
	}
	return Insight{
		Type:  InsightWarning,
		Title: title,
		Description: fmt.Sprintf(
			"Your average cycle length is %d days, which is %s than typical (%d-%d days). Consider consulting a healthcare provider if this persists.",
			roundHalfUp(average), comparison, snapshot.Config.ShortCycleDays, snapshot.Config.LongCycleDays,
		),
		Category: CategoryCycle,
	}, true
}

func irregularCycleRule(snapshot InsightSnapshot) (Insight, bool) {
	if len(snapshot.Cycles) < 2 {
		return Insight{}, false
	}
	latest := snapshot.Cycles[0].CycleLength
	previous := snapshot.Cycles[1].CycleLength
	if absInt(latest-previous) <= snapshot.Config.IrregularDeltaDays {
		return Insight{}, false
	}
	return Insight{
		Type:  InsightWarning,
		Title: "Irregular Cycle Length",
		Description: fmt.Sprintf(
			"Your cycle length has changed significantly from %d to %d days. Track a few more cycles to establish a pattern.",
			previous, latest,
		),
		Category: CategoryCycle,
	}, true
}

func heavyFlowRule(snapshot InsightSnapshot) (Insight, bool) {
	flows := newFrequencyCounter[models.FlowIntensity]()
	for _, cycle := range snapshot.Cycles {
		flows.add(cycle.FlowIntensity)
	}
	mostCommon, ok := flows.mode()
	if !ok || mostCommon != models.FlowHeavy {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightWarning,
		Title:       "Heavy Flow Pattern",
		Description: "You frequently experience heavy flow. Consider tracking iron levels and consulting a healthcare provider if this affects your daily activities.",
		Category:    CategoryCycle,
	}, true
}

func frequentSymptomsRule(snapshot InsightSnapshot) (Insight, bool) {
	symptoms := newFrequencyCounter[models.Symptom]()
	for _, cycle := range snapshot.Cycles {
		for _, symptom := range cycle.Symptoms {
			symptoms.add(symptom)
		}
	}
	frequent := symptoms.atLeast(snapshot.Config.FrequentSymptomMin)
	if len(frequent) == 0 {
		return Insight{}, false
	}

	names := make([]string, 0, len(frequent))
	for _, symptom := range frequent {
		names = append(names, string(symptom))
	}
	return Insight{
		Type:  InsightWarning,
		Title: "Frequent Symptoms",
		Description: fmt.Sprintf(
			"You frequently experience %s. Consider discussing these symptoms with a healthcare provider.",
			strings.Join(names, ", "),
		),
		Category: CategoryCycle,
	}, true
}

func dischargeColorRule(snapshot InsightSnapshot) (Insight, bool) {
	if !snapshot.hasDischarges() {
		return Insight{}, false
	}
	switch models.DischargeColor(strings.ToLower(string(snapshot.Discharges[0].Color))) {
	case models.ColorBrown, models.ColorGreen, models.ColorYellow:
	default:
		return Insight{}, false
	}
	return Insight{
		Type:        InsightWarning,
		Title:       "Unusual Discharge Color",
		Description: "Recent discharge observations show unusual colors. Monitor for any other symptoms and consult a healthcare provider if concerned.",
		Category:    CategoryDischarge,
	}, true
}

func fertileWindowRule(snapshot InsightSnapshot) (Insight, bool) {
	if !snapshot.hasDischarges() || snapshot.Discharges[0].Consistency != models.ConsistencyEggWhite {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightInfo,
		Title:       "Fertile Window Indicator",
		Description: "Egg white consistency discharge indicates you may be in your fertile window.",
		Category:    CategoryDischarge,
	}, true
}

func dischargePatternChangeRule(snapshot InsightSnapshot) (Insight, bool) {
	recent := snapshot.Discharges
	if len(recent) > snapshot.Config.PatternChangeWindow {
		recent = recent[:snapshot.Config.PatternChangeWindow]
	}

	changed := false
	for index := 1; index < len(recent); index++ {
		if recent[index].Consistency != recent[index-1].Consistency {
			changed = true
			break
		}
	}
	if !changed {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightInfo,
		Title:       "Discharge Pattern Change",
		Description: "Your discharge consistency has changed recently. This is normal throughout your cycle.",
		Category:    CategoryDischarge,
	}, true
}

func dischargeOdorRule(snapshot InsightSnapshot) (Insight, bool) {
	if !snapshot.hasDischarges() || !snapshot.Discharges[0].Odor.Concerning() {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightWarning,
		Title:       "Unusual Odor",
		Description: unusualOdorMessage,
		Category:    CategoryDischarge,
	}, true
}

func trackOvulationRule(snapshot InsightSnapshot) (Insight, bool) {
	if !snapshot.hasCycles() || snapshot.averageLength <= float64(snapshot.Config.LongCycleDays) {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightTip,
		Title:       "Track Ovulation",
		Description: "With longer cycles, tracking ovulation signs can help predict your fertile window more accurately.",
		Category:    CategoryGeneral,
	}, true
}

func painManagementRule(snapshot InsightSnapshot) (Insight, bool) {
	for _, cycle := range snapshot.Cycles {
		if cycle.HasSymptom(models.SymptomCramps) {
			return Insight{
				Type:        InsightTip,
				Title:       "Pain Management",
				Description: "Consider using a heating pad or gentle exercise to manage cramps during your cycle.",
				Category:    CategoryGeneral,
			}, true
		}
	}
	return Insight{}, false
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
