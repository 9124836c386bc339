package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/femora/internal/models"
)

func testDischarge(consistency models.Consistency, color models.DischargeColor, amount models.DischargeAmount, odor models.Odor) models.Discharge {
	return models.Discharge{
		Date:        time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Consistency: consistency,
		Color:       color,
		Amount:      amount,
		Odor:        odor,
	}
}

func insightTitles(insights []Insight) []string {
	titles := make([]string, 0, len(insights))
	for _, insight := range insights {
		titles = append(titles, insight.Title)
	}
	return titles
}

func TestInsightEngineEmptyInputReturnsFallbackTips(t *testing.T) {
	engine := NewInsightEngine(DefaultInsightConfig())

	insights := engine.Generate(nil, nil)

	assert.Equal(t, []string{"Stay Hydrated", "Track Patterns"}, insightTitles(insights))
	for _, insight := range insights {
		assert.Equal(t, InsightTip, insight.Type)
		assert.Equal(t, CategoryGeneral, insight.Category)
	}
}

func TestInsightEngineShortCycle(t *testing.T) {
	engine := NewInsightEngine(DefaultInsightConfig())

	insights := engine.Generate([]models.Cycle{
		testCycle(20, models.FlowLight),
		testCycle(20, models.FlowLight),
	}, nil)

	require.Len(t, insights, 3)
	assert.Equal(t, "Short Cycle Length", insights[0].Title)
	assert.Equal(t, InsightWarning, insights[0].Type)
	assert.Equal(t,
		"Your average cycle length is 20 days, which is shorter than typical (21-35 days). Consider consulting a healthcare provider if this persists.",
		insights[0].Description,
	)
	assert.Equal(t, []string{"Short Cycle Length", "Stay Hydrated", "Track Patterns"}, insightTitles(insights))
}

func TestInsightEngineLongCycleAddsOvulationTip(t *testing.T) {
	engine := NewInsightEngine(DefaultInsightConfig())

	insights := engine.Generate([]models.Cycle{
		testCycle(40, models.FlowMedium),
		testCycle(38, models.FlowMedium),
	}, nil)

	assert.Equal(t, []string{"Long Cycle Length", "Track Ovulation", "Stay Hydrated", "Track Patterns"}, insightTitles(insights))
	assert.Contains(t, insights[0].Description, "39 days, which is longer than typical")
}

func TestInsightEngineIrregularCycle(t *testing.T) {
	engine := NewInsightEngine(DefaultInsightConfig())

	insights := engine.Generate([]models.Cycle{
		testCycle(36, models.FlowMedium),
		testCycle(20, models.FlowMedium),
	}, nil)

	require.NotEmpty(t, insights)
	assert.Equal(t, "Irregular Cycle Length", insights[0].Title)
	assert.Equal(t,
		"Your cycle length has changed significantly from 20 to 36 days. Track a few more cycles to establish a pattern.",
		insights[0].Description,
	)
}

func TestInsightEngineHeavyFlowTieUsesFirstSeen(t *testing.T) {
	engine := NewInsightEngine(DefaultInsightConfig())

	heavyFirst := engine.Generate([]models.Cycle{
		testCycle(28, models.FlowHeavy),
		testCycle(28, models.FlowLight),
	}, nil)
	assert.Contains(t, insightTitles(heavyFirst), "Heavy Flow Pattern")

	lightFirst := engine.Generate([]models.Cycle{
		testCycle(28, models.FlowLight),
		testCycle(28, models.FlowHeavy),
	}, nil)
	assert.NotContains(t, insightTitles(lightFirst), "Heavy Flow Pattern")
}

func TestInsightEngineFrequentSymptomsAndPainTip(t *testing.T) {
	engine := NewInsightEngine(DefaultInsightConfig())

	cycles := []models.Cycle{
		testCycle(28, models.FlowMedium, models.SymptomCramps, models.SymptomHeadache),
		testCycle(28, models.FlowMedium, models.SymptomHeadache, models.SymptomCramps),
		testCycle(28, models.FlowMedium, models.SymptomCramps, models.SymptomHeadache, models.SymptomFatigue),
	}

	insights := engine.Generate(cycles, nil)

	assert.Equal(t, []string{"Frequent Symptoms", "Pain Management", "Stay Hydrated", "Track Patterns"}, insightTitles(insights))
	assert.Equal(t,
		"You frequently experience cramps, headache. Consider discussing these symptoms with a healthcare provider.",
		insights[0].Description,
	)
}

func TestInsightEngineDischargeRulesSkipFallback(t *testing.T) {
	engine := NewInsightEngine(DefaultInsightConfig())

	discharges := []models.Discharge{
		testDischarge(models.ConsistencyEggWhite, models.ColorBrown, models.AmountLight, models.OdorStrong),
		testDischarge(models.ConsistencyCreamy, models.ColorWhite, models.AmountLight, models.OdorNone),
	}

	insights := engine.Generate(nil, discharges)

	assert.Equal(t, []string{
		"Unusual Discharge Color",
		"Fertile Window Indicator",
		"Discharge Pattern Change",
		"Unusual Odor",
	}, insightTitles(insights))
	assert.Equal(t, CategoryDischarge, insights[0].Category)
	assert.Equal(t, InsightInfo, insights[1].Type)
}

func TestInsightEnginePatternChangeOnlyWithinWindow(t *testing.T) {
	engine := NewInsightEngine(DefaultInsightConfig())

	discharges := []models.Discharge{
		testDischarge(models.ConsistencyCreamy, models.ColorWhite, models.AmountLight, models.OdorNone),
		testDischarge(models.ConsistencyCreamy, models.ColorWhite, models.AmountLight, models.OdorNone),
		testDischarge(models.ConsistencyCreamy, models.ColorWhite, models.AmountLight, models.OdorNone),
		testDischarge(models.ConsistencyWatery, models.ColorClear, models.AmountLight, models.OdorNone),
	}

	insights := engine.Generate(nil, discharges)

	assert.Equal(t, []string{"Stay Hydrated", "Track Patterns"}, insightTitles(insights))
}

func TestInsightEngineCustomRules(t *testing.T) {
	always := InsightRule{
		Name: "always",
		Evaluate: func(InsightSnapshot) (Insight, bool) {
			return Insight{Type: InsightInfo, Title: "Always", Category: CategoryGeneral}, true
		},
	}
	config := DefaultInsightConfig()
	config.MinimumInsights = 1

	insights := NewInsightEngineWithRules(config, []InsightRule{always}).Generate(nil, nil)

	assert.Equal(t, []string{"Always"}, insightTitles(insights))
}

func TestInsightEngineCycleLengthThresholds(t *testing.T) {
	fallback := []string{"Stay Hydrated", "Track Patterns"}

	tests := []struct {
		name        string
		lengths     []int
		want        []string
		description string
	}{
		{name: "mean exactly 21", lengths: []int{21, 21}, want: fallback},
		{name: "mean exactly 35", lengths: []int{35, 35}, want: fallback},
		{name: "difference exactly 7", lengths: []int{28, 21}, want: fallback},
		{name: "difference of 8", lengths: []int{29, 21}, want: []string{"Irregular Cycle Length", "Stay Hydrated", "Track Patterns"}},
		{
			name:        "mean 15.5 rounds up in description",
			lengths:     []int{15, 16},
			want:        []string{"Short Cycle Length", "Stay Hydrated", "Track Patterns"},
			description: "Your average cycle length is 16 days, which is shorter than typical (21-35 days). Consider consulting a healthcare provider if this persists.",
		},
		{name: "mean just above 35", lengths: []int{36, 35}, want: []string{"Long Cycle Length", "Track Ovulation", "Stay Hydrated", "Track Patterns"}},
	}

	engine := NewInsightEngine(DefaultInsightConfig())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cycles := make([]models.Cycle, 0, len(test.lengths))
			for _, length := range test.lengths {
				cycles = append(cycles, testCycle(length, models.FlowMedium))
			}

			insights := engine.Generate(cycles, nil)

			assert.Equal(t, test.want, insightTitles(insights))
			if test.description != "" {
				assert.Equal(t, test.description, insights[0].Description)
			}
		})
	}
}

func TestAnalyticsAreRepeatableOnSameSnapshot(t *testing.T) {
	cycles := []models.Cycle{
		testCycle(40, models.FlowHeavy, models.SymptomCramps, models.SymptomBloating),
		testCycle(26, models.FlowHeavy, models.SymptomCramps),
		testCycle(30, models.FlowLight, models.SymptomCramps, models.SymptomBloating),
	}
	discharges := []models.Discharge{
		testDischarge(models.ConsistencyEggWhite, models.ColorBrown, models.AmountModerate, models.OdorStrong),
		testDischarge(models.ConsistencyCreamy, models.ColorWhite, models.AmountLight, models.OdorNone),
	}
	engine := NewInsightEngine(DefaultInsightConfig())

	firstInsights := engine.Generate(cycles, discharges)
	secondInsights := engine.Generate(cycles, discharges)
	assert.NotEmpty(t, firstInsights)
	assert.Equal(t, firstInsights, secondInsights)

	assert.Equal(t, BuildCycleStats(cycles), BuildCycleStats(cycles))
}
