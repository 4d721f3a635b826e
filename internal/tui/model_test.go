package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/phonebook/internal/book"
)

func testContacts() []book.Contact {
	return []book.Contact{
		{Name: "Alice", Numbers: []string{"+1 555 0100", "555 0199"}},
		{Name: "Bob", Numbers: []string{"+44 20 7946 0958"}},
		{Name: "Carol", Numbers: []string{"0049 30 1234"}},
	}
}

func newSizedModel(w, h int) Model {
	m := NewModel(testContacts())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_SelectsFirstContact(t *testing.T) {
	m := NewModel(testContacts())

	c, ok := m.Selected()
	if !ok {
		t.Fatal("Selected() ok = false, want true")
	}
	if c.Name != "Alice" {
		t.Errorf("Selected() = %q, want %q", c.Name, "Alice")
	}
}

func TestModel_Navigation(t *testing.T) {
	m := newSizedModel(90, 30)

	// Down twice moves to the last contact; a third down stays there.
	m = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown}, runes("j"))
	if c, _ := m.Selected(); c.Name != "Carol" {
		t.Errorf("after 3x down: selected = %q, want Carol", c.Name)
	}

	// Up moves back; up at the top stays there.
	m = press(t, m, runes("k"), tea.KeyMsg{Type: tea.KeyUp}, runes("k"))
	if c, _ := m.Selected(); c.Name != "Alice" {
		t.Errorf("after 3x up: selected = %q, want Alice", c.Name)
	}
}

func TestModel_FilterByName(t *testing.T) {
	// Given a browsing model
	m := newSizedModel(90, 30)

	// When filtering for "car" (case-insensitive) and applying
	m = press(t, m, runes("/"))
	if !m.filtering {
		t.Fatal("'/' should start filtering")
	}
	m = press(t, m, runes("c"), runes("A"), runes("r"), tea.KeyMsg{Type: tea.KeyEnter})

	// Then only Carol is visible and filtering has ended
	if m.filtering {
		t.Error("enter should stop filtering")
	}
	if len(m.visible) != 1 {
		t.Fatalf("visible = %d, want 1", len(m.visible))
	}
	if c, _ := m.Selected(); c.Name != "Carol" {
		t.Errorf("selected = %q, want Carol", c.Name)
	}

	// When esc is pressed in browse mode
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	// Then the filter is cleared
	if len(m.visible) != 3 {
		t.Errorf("visible after clear = %d, want 3", len(m.visible))
	}
}

func TestModel_FilterByNumber(t *testing.T) {
	m := newSizedModel(90, 30)

	m = press(t, m, runes("/"), runes("+"), runes("4"), runes("4"))

	if len(m.visible) != 1 {
		t.Fatalf("visible = %d, want 1", len(m.visible))
	}
	if c, _ := m.Selected(); c.Name != "Bob" {
		t.Errorf("selected = %q, want Bob", c.Name)
	}
}

func TestModel_FilterCancelRestoresList(t *testing.T) {
	m := newSizedModel(90, 30)

	m = press(t, m, runes("/"), runes("z"), runes("z"))
	if _, ok := m.Selected(); ok {
		t.Error("Selected() ok = true with no matches")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.filtering {
		t.Error("esc should stop filtering")
	}
	if len(m.visible) != 3 {
		t.Errorf("visible = %d, want 3", len(m.visible))
	}
}

func TestModel_QKeyTypedWhileFiltering(t *testing.T) {
	// 'q' is text while the filter has focus, not a quit key.
	m := newSizedModel(90, 30)
	m = press(t, m, runes("/"))

	m = press(t, m, runes("q"))

	if !m.filtering {
		t.Error("q while filtering should keep the filter focused")
	}
	if m.filter.Value() != "q" {
		t.Errorf("filter = %q, want %q", m.filter.Value(), "q")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", runes("q")},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSizedModel(90, 30)
			_, cmd := m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("command produced %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestModel_ViewShowsSelectedNumbers(t *testing.T) {
	m := newSizedModel(90, 30)

	view := m.View()

	for _, want := range []string{"Alice", "Bob", "Carol", "+1 555 0100", "555 0199", "3 contacts"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "+44 20 7946 0958") {
		t.Error("View() shows numbers of an unselected contact")
	}
}

func TestModel_ViewEmptyBook(t *testing.T) {
	m := NewModel(nil)
	if !strings.Contains(m.View(), "No records found") {
		t.Errorf("View() = %q, want empty notice", m.View())
	}
}

func TestPaneWidths(t *testing.T) {
	tests := []struct {
		total, wantList, wantDetail int
	}{
		{0, 0, 0},
		{30, 24, 6},
		{90, 30, 60},
		{120, 40, 80},
	}
	for _, tt := range tests {
		list, detail := PaneWidths(tt.total)
		if list != tt.wantList || detail != tt.wantDetail {
			t.Errorf("PaneWidths(%d) = (%d, %d), want (%d, %d)", tt.total, list, detail, tt.wantList, tt.wantDetail)
		}
	}
}

func TestBrowseKeyMap_HelpBindings(t *testing.T) {
	var keys []string
	for _, b := range BrowseKeyMap().ShortHelp() {
		keys = append(keys, b.Keys()...)
	}
	joined := strings.Join(keys, " ")
	for _, want := range []string{"/", "esc", "q"} {
		if !strings.Contains(joined, want) {
			t.Errorf("browse help missing %q in %q", want, joined)
		}
	}
	if len(FilterKeyMap().FullHelp()) != 1 {
		t.Error("filter full help should be a single group")
	}
}

// TestModel_Teatest_FilterAndQuit drives the model through a real program via teatest.
func TestModel_Teatest_FilterAndQuit(t *testing.T) {
	m := NewModel(testContacts())

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(90, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Carol"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("/bob")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	c, ok := final.Selected()
	if !ok || c.Name != "Bob" {
		t.Errorf("final selection = %q (ok=%v), want Bob", c.Name, ok)
	}
	if final.filter.Value() != "bob" {
		t.Errorf("filter = %q, want %q", final.filter.Value(), "bob")
	}
}
