// Package cli provides styled terminal output, row selection and line prompts
// for the rolo command.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Index-card blue with muted status colors.
var (
	PrimaryColor = lipgloss.Color("#5B8DEF")
	SuccessColor = lipgloss.Color("#3FB68B")
	WarningColor = lipgloss.Color("#E8B339")
	ErrorColor   = lipgloss.Color("#E0565B")
	InfoColor    = lipgloss.Color("#7FB3D5")
	SubtleColor  = lipgloss.Color("#7A7A7A")
	BorderColor  = lipgloss.Color("#3A3F4B")
)

var (
	// TitleStyle renders listing and box titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)

	// SubtitleStyle renders secondary text such as "No contacts found.".
	SubtitleStyle = lipgloss.NewStyle().Foreground(SubtleColor).MarginBottom(1)

	// SubtleStyle renders placeholders inside tables.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	BoldStyle = lipgloss.NewStyle().Bold(true)

	// CategoryStyle highlights a contact's category label.
	CategoryStyle = lipgloss.NewStyle().Foreground(InfoColor).Italic(true)

	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	// BoxStyle frames the dashboard.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)
)

// Icons.
const (
	RolodexIcon = "📇"
	ChartIcon   = "📊"
)

// message pairs a status style with its leading icon.
type message struct {
	style lipgloss.Style
	icon  string
}

var (
	successMessage = message{style: lipgloss.NewStyle().Foreground(SuccessColor), icon: "✓"}
	errorMessage   = message{style: lipgloss.NewStyle().Foreground(ErrorColor), icon: "✗"}
	warningMessage = message{style: lipgloss.NewStyle().Foreground(WarningColor), icon: "⚠️"}
	infoMessage    = message{style: lipgloss.NewStyle().Foreground(InfoColor), icon: "ℹ️"}
)

func (m message) render(text string) string {
	return m.style.Render(m.icon + " " + text)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(text string) string { return successMessage.render(text) }

// FormatError formats an error message with icon.
func FormatError(text string) string { return errorMessage.render(text) }

// FormatWarning formats a warning, used for rejected input as well as soft failures.
func FormatWarning(text string) string { return warningMessage.render(text) }

// FormatInfo formats an informational message with icon.
func FormatInfo(text string) string { return infoMessage.render(text) }

// FormatTitle formats a section title with the rolodex icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(RolodexIcon + " " + title)
}

// FormatPrompt formats the text shown before reading a line of input.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content under a title inside a rounded border.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
