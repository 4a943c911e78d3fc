package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the day view.
type Styles struct {
	Header    lipgloss.Style
	DateTitle lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	TaskDone  lipgloss.Style
	Hidden    lipgloss.Style
	PrioHigh  lipgloss.Style
	PrioMed   lipgloss.Style
	PrioLow   lipgloss.Style
	Timer     lipgloss.Style
	Expired   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	FormTitle lipgloss.Style
}

// NewStyles creates the default style set.
func NewStyles() *Styles {
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true),
		DateTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
		TaskDone:  lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("242")),
		Hidden:    lipgloss.NewStyle().Faint(true),
		PrioHigh:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		PrioMed:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		PrioLow:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Timer:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Expired:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		FormTitle: lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

// CategoryHeader renders a category section title in the category's color.
func (s *Styles) CategoryHeader(color string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}
