package tui

import "github.com/charmbracelet/lipgloss"

// MinListWidth is the minimum character width for the contact list pane.
const MinListWidth = 24

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// paneStyle returns a rounded border style; focused panes get the accent colour.
func paneStyle(focused bool) lipgloss.Style {
	color := lipgloss.AdaptiveColor{Light: "240", Dark: "240"}
	if focused {
		color = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

// PaneWidths splits totalWidth into list and detail widths.
// The list gets 1/3 (minimum MinListWidth), the detail pane the rest.
func PaneWidths(totalWidth int) (list, detail int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	list = totalWidth / 3
	if list < MinListWidth {
		list = MinListWidth
	}
	detail = totalWidth - list
	if detail < 0 {
		detail = 0
	}
	return list, detail
}
