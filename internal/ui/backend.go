package ui

import (
	"github.com/atomicstack/tmux-tab-rename/internal/backend"
	"github.com/atomicstack/tmux-tab-rename/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		events.App.BackendError(evt.Kind.String(), evt.Err)
		return
	}
	res := m.dispatcher.Handle(evt)
	if !res.Rebuilt {
		return
	}
	m.backendErr = ""
	m.loading = false
	m.refreshRows()
}

func (m *Model) refreshRows() {
	m.rows = BuildRows(m.index.Index(), m.tabs.Tabs())
	header, items := rowItems(m.rows)
	m.columns = header
	m.list.UpdateItems(items)
	m.syncViewport()
	events.Inspector.Refresh(len(m.rows))
}
