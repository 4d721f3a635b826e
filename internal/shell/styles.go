package shell

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles applied to shell output.
type Styles struct {
	Title   lipgloss.Style
	Name    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles returns coloured styles bound to renderer r. The renderer decides
// whether escape sequences are emitted for its writer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		Name: r.NewStyle().Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		Warning: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		Muted: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
	}
}

// PlainStyles returns styles that leave text untouched.
func PlainStyles() Styles {
	return Styles{}
}
