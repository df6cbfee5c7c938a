package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	tea "github.com/charmbracelet/bubbletea"
)

// View renders the header, the visible rows and the filter prompt.
func (m *Model) View() string {
	lines := make([]string, 0, m.height+4)
	lines = append(lines, m.render(styles.Header, m.header()))
	lines = append(lines, m.render(styles.Header, "  "+m.columns))

	switch {
	case m.loading:
		lines = append(lines, m.render(styles.Loading, "  waiting for tmux…"))
	case len(m.list.Items) == 0:
		lines = append(lines, m.render(styles.Info, "  no panes match"))
	default:
		lines = append(lines, m.visibleRows()...)
	}

	if m.backendErr != "" {
		lines = append(lines, m.render(styles.Error, "tmux: "+m.backendErr))
	} else if info := m.currentInfo(); info != "" {
		lines = append(lines, m.render(styles.Info, info))
	}
	lines = append(lines, m.fit(m.filter.View()))
	return strings.Join(lines, "\n")
}

func (m *Model) header() string {
	session := m.session
	if session == "" {
		session = "?"
	}
	return fmt.Sprintf("session %s · %d panes indexed", session, m.index.Len())
}

func (m *Model) visibleRows() []string {
	limit := m.maxVisibleItems()
	start := m.list.ViewportOffset
	end := len(m.list.Items)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label := m.list.Items[i].Label
		if i == m.list.Cursor {
			out = append(out, m.render(styles.SelectedItemIndicator, "▌")+m.render(styles.SelectedItem, " "+label))
			continue
		}
		out = append(out, m.render(styles.ItemIndicator, "  ")+m.render(styles.Item, label))
	}
	return out
}

// render applies style, then truncates to the view width without cutting
// through escape sequences.
func (m *Model) render(style *lipgloss.Style, text string) string {
	if style != nil {
		text = style.Render(text)
	}
	return m.fit(text)
}

func (m *Model) fit(text string) string {
	if m.width <= 0 || ansi.StringWidth(text) <= m.width {
		return text
	}
	return ansi.Truncate(text, m.width, "…")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.filter.Width = m.width - 3
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 4 // header, column titles, status line, filter prompt
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}
