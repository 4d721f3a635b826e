// Package tui implements a read-only terminal browser for the phone book.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/phonebook/internal/book"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// filterBarHeight is the number of lines reserved for the filter input at the top.
const filterBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the Bubble Tea model for browsing contacts.
type Model struct {
	contacts  []book.Contact
	visible   []int // Indices into contacts that match the filter.
	cursor    int   // Index into visible.
	filter    textinput.Model
	filtering bool
	keys      browseKeys
	fkeys     filterKeys
	help      help.Model
	width     int
	height    int
}

// NewModel creates a Model over contacts, which must already be sorted.
func NewModel(contacts []book.Contact) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name or number"
	ti.CharLimit = book.MaxNameLen

	m := Model{
		contacts: contacts,
		filter:   ti,
		keys:     BrowseKeyMap(),
		fkeys:    FilterKeyMap(),
		help:     help.New(),
	}
	m.applyFilter()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the contact under the cursor.
func (m Model) Selected() (book.Contact, bool) {
	if len(m.visible) == 0 {
		return book.Contact{}, false
	}
	return m.contacts[m.visible[m.cursor]], true
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleBrowseKey(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.filter.SetValue("")
		m.applyFilter()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.fkeys.Apply):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case key.Matches(msg, m.fkeys.Cancel):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter recomputes the visible contacts and clamps the cursor.
// Names match case-insensitively; numbers match as typed.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	lower := strings.ToLower(query)

	m.visible = nil
	for i, c := range m.contacts {
		if query == "" || strings.Contains(strings.ToLower(c.Name), lower) || hasNumber(c.Numbers, query) {
			m.visible = append(m.visible, i)
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func hasNumber(numbers []string, query string) bool {
	for _, n := range numbers {
		if strings.Contains(n, query) {
			return true
		}
	}
	return false
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome, the filter bar, and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - helpBarHeight - filterBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the filter bar, the two panes, and the help bar.
func (m Model) View() string {
	if len(m.contacts) == 0 {
		return "No records found, the phone book is empty!\n\n" + m.help.View(m.keys)
	}

	listWidth, detailWidth := PaneWidths(m.width)
	if m.width == 0 {
		listWidth, detailWidth = PaneWidths(80)
	}
	height := m.contentHeight()

	listPane := paneStyle(!m.filtering).
		Width(listWidth - borderChrome).
		Height(height).
		Render(m.viewList(height))
	detailPane := paneStyle(false).
		Width(detailWidth - borderChrome).
		Height(height).
		Render(m.viewDetail())

	var helpView string
	if m.filtering {
		helpView = m.help.View(m.fkeys)
	} else {
		helpView = m.help.View(m.keys)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewFilter(),
		lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane),
		helpView,
	)
}

func (m Model) viewFilter() string {
	if m.filtering || m.filter.Value() != "" {
		return m.filter.View()
	}
	return mutedStyle.Render(fmt.Sprintf("%d contacts", len(m.contacts)))
}

// viewList renders the visible names, scrolled so the cursor stays in view.
func (m Model) viewList(height int) string {
	if len(m.visible) == 0 {
		return mutedStyle.Render("No matches")
	}

	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(m.visible))

	var b strings.Builder
	for i := start; i < end; i++ {
		name := m.contacts[m.visible[i]].Name
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + name))
		} else {
			b.WriteString("  " + name)
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) viewDetail() string {
	c, ok := m.Selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name))
	for _, n := range c.Numbers {
		b.WriteString("\n" + n)
	}
	return b.String()
}
