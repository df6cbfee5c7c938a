package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-tab-rename/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		if m.filter.Value() == "" {
			return tea.Quit
		}
		m.filter.SetValue("")
		m.applyFilter()
		events.Filter.Cleared()
		return nil
	case "up", "ctrl+p":
		m.moveCursor(m.list.MoveCursorUp())
		return nil
	case "down", "ctrl+n":
		m.moveCursor(m.list.MoveCursorDown())
		return nil
	case "pgup":
		m.moveCursor(m.list.MoveCursorPageUp(m.maxVisibleItems()))
		return nil
	case "pgdown":
		m.moveCursor(m.list.MoveCursorPageDown(m.maxVisibleItems()))
		return nil
	case "home":
		m.moveCursor(m.list.MoveCursorHome())
		return nil
	case "end":
		m.moveCursor(m.list.MoveCursorEnd())
		return nil
	case "enter":
		if row, ok := m.currentRow(); ok {
			m.setInfo(describeRow(row))
		}
		return nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(key)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return cmd
}

func (m *Model) applyFilter() {
	m.list.SetFilter(m.filter.Value())
	m.syncViewport()
	events.Filter.Changed(m.filter.Value(), len(m.list.Items))
}

func (m *Model) moveCursor(moved bool) {
	if !moved {
		return
	}
	m.syncViewport()
	events.Inspector.Cursor(m.list.Cursor)
}

func (m *Model) syncViewport() {
	m.list.EnsureCursorVisible(m.maxVisibleItems())
}

func describeRow(r Row) string {
	marker := r.Marker
	if marker == "" {
		marker = "none"
	}
	window := "?"
	if r.WindowIndex >= 0 {
		window = fmt.Sprint(r.WindowIndex)
	}
	return fmt.Sprintf("pane %%%d → tab %d (window %s) status %s name %q", r.PaneID, r.TabID, window, marker, r.Base)
}
