package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/terraincognita07/femora/internal/models"
	"github.com/terraincognita07/femora/internal/services"
)

const reportDateLayout = "2006-01-02"

type UserLookup interface {
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, error)
}

type ReportSources struct {
	Users      UserLookup
	IsNotFound func(error) bool
	Cycles     interface {
		Stats(ctx context.Context, userID uint) (services.CycleStats, error)
	}
	Discharges interface {
		Patterns(ctx context.Context, userID uint, now time.Time) (services.DischargePatternSummary, error)
		Alerts(ctx context.Context, userID uint) ([]services.Alert, error)
	}
	Insights interface {
		Generate(ctx context.Context, userID uint) ([]services.Insight, error)
	}
}

type Report struct {
	User     models.User
	Stats    services.CycleStats
	Patterns services.DischargePatternSummary
	Alerts   []services.Alert
	Insights []services.Insight
}

// RunReport loads everything the API would show for one user and prints it.
func RunReport(ctx context.Context, sources ReportSources, email string, now time.Time, out io.Writer) error {
	report, err := BuildReport(ctx, sources, email, now)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, RenderReport(report))
	return err
}

func BuildReport(ctx context.Context, sources ReportSources, email string, now time.Time) (Report, error) {
	normalizedEmail := services.NormalizeEmail(email)
	if normalizedEmail == "" {
		return Report{}, errors.New("email is required")
	}

	user, err := sources.Users.FindByNormalizedEmail(ctx, normalizedEmail)
	if err != nil {
		if sources.IsNotFound != nil && sources.IsNotFound(err) {
			return Report{}, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return Report{}, fmt.Errorf("load user: %w", err)
	}

	stats, err := sources.Cycles.Stats(ctx, user.ID)
	if err != nil {
		return Report{}, err
	}
	patterns, err := sources.Discharges.Patterns(ctx, user.ID, now)
	if err != nil {
		return Report{}, err
	}
	alerts, err := sources.Discharges.Alerts(ctx, user.ID)
	if err != nil {
		return Report{}, err
	}
	insights, err := sources.Insights.Generate(ctx, user.ID)
	if err != nil {
		return Report{}, err
	}

	return Report{User: user, Stats: stats, Patterns: patterns, Alerts: alerts, Insights: insights}, nil
}

func RenderReport(report Report) string {
	sections := []string{
		styleTitle.Render(fmt.Sprintf("Health report for %s <%s>", report.User.Name, report.User.Email)),
		renderCycleSection(report.Stats),
		renderDischargeSection(report.Patterns, report.Alerts),
		renderInsightSection(report.Insights),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func renderCycleSection(stats services.CycleStats) string {
	var body strings.Builder
	if !stats.HasData {
		body.WriteString(styleMuted.Render("No cycles recorded yet"))
		return section("Cycles", body.String())
	}

	writeRow(&body, "Cycles recorded", fmt.Sprintf("%d", stats.TotalCycles))
	writeRow(&body, "Average length", fmt.Sprintf("%d days", stats.AverageCycleLength))
	if stats.LastCycleStart != nil && stats.LastCycleEnd != nil {
		writeRow(&body, "Last cycle", fmt.Sprintf("%s to %s", stats.LastCycleStart.Format(reportDateLayout), stats.LastCycleEnd.Format(reportDateLayout)))
	}
	if len(stats.CommonSymptoms) > 0 {
		names := make([]string, 0, len(stats.CommonSymptoms))
		for _, symptom := range stats.CommonSymptoms {
			names = append(names, string(symptom))
		}
		writeRow(&body, "Common symptoms", strings.Join(names, ", "))
	}

	flows := make([]string, 0, len(stats.FlowIntensities))
	for flow, count := range stats.FlowIntensities {
		flows = append(flows, fmt.Sprintf("%s %d", flow, count))
	}
	sort.Strings(flows)
	writeRow(&body, "Flow", strings.Join(flows, ", "))

	return section("Cycles", strings.TrimRight(body.String(), "\n"))
}

func renderDischargeSection(patterns services.DischargePatternSummary, alerts []services.Alert) string {
	var body strings.Builder
	writeRow(&body, "Current pattern", patterns.CurrentPattern)
	writeRow(&body, "History", patterns.History)
	if len(alerts) == 0 {
		body.WriteString(styleSuccess.Render("No changes since the previous entry"))
	}
	for _, alert := range alerts {
		marker := styleInfo.Render("[info]")
		if alert.Severity == services.AlertWarning {
			marker = styleWarning.Render("[warning]")
		}
		fmt.Fprintf(&body, "%s %s: %s\n", marker, alert.Title, alert.Message)
	}
	return section("Discharge", strings.TrimRight(body.String(), "\n"))
}

func renderInsightSection(insights []services.Insight) string {
	var body strings.Builder
	for _, insight := range insights {
		title := styleBold.Render(insight.Title)
		switch insight.Type {
		case services.InsightWarning:
			title = styleWarning.Render(insight.Title)
		case services.InsightTip:
			title = styleSuccess.Render(insight.Title)
		}
		fmt.Fprintf(&body, "%s %s\n  %s\n", title, styleMuted.Render("("+string(insight.Category)+")"), insight.Description)
	}
	return section("Insights", strings.TrimRight(body.String(), "\n"))
}

func section(title string, body string) string {
	return "\n" + styleHeader.Render(title) + "\n" + styleBox.Render(body)
}

func writeRow(body *strings.Builder, label string, value string) {
	body.WriteString(styleLabel.Render(label))
	body.WriteString(value)
	body.WriteString("\n")
}
