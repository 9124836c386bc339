package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#e57399")
	colorInfo    = lipgloss.Color("#64b5f6")
	colorSuccess = lipgloss.Color("#66bb6a")
	colorWarning = lipgloss.Color("#ffb74d")
	colorMuted   = lipgloss.Color("#888888")
)

var (
	styleTitle   lipgloss.Style
	styleHeader  lipgloss.Style
	styleSuccess lipgloss.Style
	styleWarning lipgloss.Style
	styleInfo    lipgloss.Style
	styleMuted   lipgloss.Style
	styleBold    lipgloss.Style
	styleLabel   lipgloss.Style
	styleBox     lipgloss.Style
)

func init() {
	SetNoColor(false)
}

// SetNoColor switches every report style between colored and plain output.
func SetNoColor(disabled bool) {
	if disabled {
		plain := lipgloss.NewStyle()
		styleTitle = plain.Bold(true)
		styleHeader = plain
		styleSuccess = plain
		styleWarning = plain
		styleInfo = plain
		styleMuted = plain
		styleBold = plain
		styleLabel = plain.Width(22)
		styleBox = plain.PaddingLeft(2)
		return
	}

	styleTitle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleHeader = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleInfo = lipgloss.NewStyle().Foreground(colorInfo)
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleBold = lipgloss.NewStyle().Bold(true)
	styleLabel = lipgloss.NewStyle().Width(22)
	styleBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1)
}
