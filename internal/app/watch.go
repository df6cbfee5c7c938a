package app

import (
	"errors"

	"github.com/atomicstack/tmux-tab-rename/internal/logging"
	"github.com/atomicstack/tmux-tab-rename/internal/tmux"
	"github.com/atomicstack/tmux-tab-rename/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	markPlugin    = tmux.MarkPlugin
	unmarkPlugin  = tmux.UnmarkPlugin
	currentPaneID = tmux.CurrentPaneID
)

// Watch runs the interactive index inspector for the resolved session.
func Watch(cfg Config) error {
	target, err := Resolve(cfg)
	if err != nil {
		return err
	}
	defer tmux.Shutdown()
	return asPluginPane(target.SocketPath, func() error {
		watcher := newWatcher(target.SocketPath, target.Session, cfg.PollInterval)
		defer stopWatcher(watcher)
		model := ui.NewModel(ui.Options{Session: target.Session, Watcher: watcher})
		program := tea.NewProgram(model, tea.WithAltScreen())
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
}

// asPluginPane keeps the calling pane out of the index while fn runs, so the
// inspector does not list itself, and hands the pane back afterwards.
func asPluginPane(socketPath string, fn func() error) error {
	id := currentPaneID()
	if id == "" {
		return fn()
	}
	pane := "%" + id
	if err := markPlugin(socketPath, pane); err != nil {
		logging.Error(err)
	}
	defer func() {
		if err := unmarkPlugin(socketPath, pane); err != nil {
			logging.Error(err)
		}
	}()
	return fn()
}

type stoppable interface {
	Stop()
	Wait()
}

// stopWatcher cancels the pollers and waits for them to exit.
func stopWatcher(w stoppable) {
	w.Stop()
	w.Wait()
}
