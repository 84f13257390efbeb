package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OutcomeColor returns the style for a computation outcome.
func OutcomeColor(o domain.Outcome) lipgloss.Style {
	switch o {
	case domain.OutcomeWorked:
		return StyleGreen
	case domain.OutcomeNonWorking:
		return StyleBlue
	case domain.OutcomeMissingClock, domain.OutcomeNegative:
		return StyleYellow
	case domain.OutcomeInvalidTime:
		return StyleRed
	default:
		return StyleDim
	}
}

// OutcomeLabel returns a short colored label such as "● worked".
func OutcomeLabel(o domain.Outcome) string {
	switch o {
	case domain.OutcomeWorked:
		return StyleGreen.Render("● worked")
	case domain.OutcomeNonWorking:
		return StyleBlue.Render("○ day off")
	case domain.OutcomeMissingClock:
		return StyleYellow.Render("▲ missing")
	case domain.OutcomeInvalidTime:
		return StyleRed.Render("✖ invalid")
	case domain.OutcomeNegative:
		return StyleYellow.Render("▼ negative")
	default:
		return StyleDim.Render(string(o))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warn renders a warning line.
func Warn(text string) string {
	return StyleYellow.Render("! " + text)
}
