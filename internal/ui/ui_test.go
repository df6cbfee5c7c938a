package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-tab-rename/internal/backend"
	"github.com/atomicstack/tmux-tab-rename/internal/pane"
	tea "github.com/charmbracelet/bubbletea"
)

func loadedHarness(t *testing.T, height int) *Harness {
	t.Helper()
	h := NewHarness(NewModel(Options{Session: "work", Width: 60, Height: height}))
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindTabs, Data: pane.TabSnapshot{
		{Position: 1, Name: "🤖 build"},
		{Position: 3, Name: "shell"},
	}}})
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindPanes, Data: pane.PaneManifest{
		1: {{ID: 4}, {ID: 9, IsPlugin: true}},
		3: {{ID: 2}, {ID: 7}},
	}}})
	return h
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestBuildRowsOrdersByTabThenPane(t *testing.T) {
	idx := pane.Index{
		7: {DisplayIndex: 1, TabName: "shell"},
		2: {DisplayIndex: 1, TabName: "shell"},
		4: {DisplayIndex: 0, TabName: "🤖 build"},
	}
	rows := BuildRows(idx, pane.TabSnapshot{{Position: 1}, {Position: 3}})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %#v", rows)
	}
	if rows[0].PaneID != 4 || rows[0].TabID != 1 || rows[0].Marker != "🤖" || rows[0].Base != "build" || rows[0].WindowIndex != 1 {
		t.Fatalf("unexpected first row: %#v", rows[0])
	}
	if rows[1].PaneID != 2 || rows[2].PaneID != 7 || rows[2].WindowIndex != 3 {
		t.Fatalf("unexpected ordering: %#v", rows)
	}
}

func TestViewShowsIndexedPanes(t *testing.T) {
	h := loadedHarness(t, 20)
	view := h.View()
	if !strings.Contains(view, "session work · 3 panes indexed") {
		t.Fatalf("expected header in view, got:\n%s", view)
	}
	for _, want := range []string{"%4", "%2", "%7", "build", "shell"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "%9") {
		t.Fatalf("plugin pane must not be listed, got:\n%s", view)
	}
}

func TestViewBeforeFirstSnapshot(t *testing.T) {
	m := NewModel(Options{Session: "work"})
	if !strings.Contains(m.View(), "waiting for tmux") {
		t.Fatalf("expected loading line, got:\n%s", m.View())
	}
}

func TestFilterNarrowsRows(t *testing.T) {
	h := loadedHarness(t, 20)
	typeText(h, "bld")
	rows := h.Model().Rows()
	if len(rows) != 1 || rows[0].PaneID != 4 {
		t.Fatalf("expected only pane 4, got %#v", rows)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if len(h.Model().Rows()) != 3 {
		t.Fatalf("esc should clear the filter")
	}
	if h.Quit() {
		t.Fatalf("esc with a filter should not quit")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if !h.Quit() {
		t.Fatalf("esc on empty filter should quit")
	}
}

func TestCursorFollowsPaneAcrossRefresh(t *testing.T) {
	h := loadedHarness(t, 20)
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if row, _ := h.Model().currentRow(); row.PaneID != 7 {
		t.Fatalf("expected cursor on pane 7, got %#v", row)
	}
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindPanes, Data: pane.PaneManifest{
		1: {{ID: 4}, {ID: 1}},
		3: {{ID: 7}},
	}}})
	if row, _ := h.Model().currentRow(); row.PaneID != 7 {
		t.Fatalf("expected cursor to stay on pane 7, got %#v", row)
	}
}

func TestEnterDescribesRow(t *testing.T) {
	h := loadedHarness(t, 20)
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	view := h.View()
	if !strings.Contains(view, "pane %4 → tab 1 (window 1) status 🤖") {
		t.Fatalf("expected row description, got:\n%s", view)
	}
}

func TestBackendErrorIsShownAndKeepsRows(t *testing.T) {
	h := loadedHarness(t, 20)
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindTabs, Err: errors.New("no server running")}})
	view := h.View()
	if !strings.Contains(view, "no server running") {
		t.Fatalf("expected backend error, got:\n%s", view)
	}
	if len(h.Model().Rows()) != 3 {
		t.Fatalf("rows should survive a failed poll")
	}
}

func TestViewportLimitsRows(t *testing.T) {
	h := loadedHarness(t, 6)
	view := h.View()
	if strings.Contains(view, "%7") {
		t.Fatalf("expected %%7 outside the viewport, got:\n%s", view)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnd})
	if view = h.View(); !strings.Contains(view, "%7") {
		t.Fatalf("expected %%7 visible after end, got:\n%s", view)
	}
}

func TestCtrlCQuits(t *testing.T) {
	h := loadedHarness(t, 20)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !h.Quit() {
		t.Fatalf("expected quit")
	}
}
