// Package command serves tab-rename and tab-status requests against the
// current pane index.
package command

import (
	"fmt"

	"github.com/atomicstack/tmux-tab-rename/internal/logging/events"
	"github.com/atomicstack/tmux-tab-rename/internal/pane"
	"github.com/atomicstack/tmux-tab-rename/internal/status"
)

const (
	NameRename = "tab-rename"
	NameStatus = "tab-status"
)

const (
	ActionSetStatus   = "set_status"
	ActionClearStatus = "clear_status"
	ActionGetStatus   = "get_status"
	ActionGetName     = "get_name"
)

// Message is an inbound named request. A nil Payload means none was sent.
type Message struct {
	Name    string
	Payload *string
}

// Host performs tab renames. tabID is 1-based.
type Host interface {
	RenameTab(tabID int, name string) error
}

// Output carries query results back to the requester.
type Output interface {
	Output(name, data string)
	Unblock(name string)
}

// IndexSource yields the index commands are served from.
type IndexSource interface {
	Index() pane.Index
}

// Observer is told the outcome of every handled command. action is empty
// for tab-rename and for status requests whose payload did not parse.
type Observer interface {
	Observe(name, action string, err error)
}

// Handler dispatches commands. It never rebuilds the index.
type Handler struct {
	host     Host
	index    IndexSource
	observer Observer
}

// NewHandler wires a handler to the host and the index it reads.
func NewHandler(host Host, index IndexSource) *Handler {
	return &Handler{host: host, index: index}
}

// SetObserver installs obs; nil disables observation.
func (h *Handler) SetObserver(obs Observer) {
	h.observer = obs
}

// Handle dispatches msg by name. Unknown names are ignored. The returned
// error has already been reported; callers only need it for bookkeeping.
func (h *Handler) Handle(msg Message, out Output) error {
	events.Command.Received(msg.Name, msg.Payload)
	var (
		action string
		err    error
	)
	switch msg.Name {
	case NameRename:
		err = h.rename(msg.Payload)
	case NameStatus:
		action, err = h.status(msg.Payload, out)
	default:
		events.Command.Ignored(msg.Name)
		return nil
	}
	if err != nil {
		events.Command.Failed(msg.Name, fmt.Errorf("[%s] %w", msg.Name, err))
	}
	if h.observer != nil {
		h.observer.Observe(msg.Name, action, err)
	}
	return err
}

func (h *Handler) rename(payload *string) error {
	req, err := ParseRename(payload)
	if err != nil {
		return err
	}
	entry, err := h.resolve(NameRename, req.PaneID)
	if err != nil {
		return err
	}
	tabID := entry.TargetID()
	events.Command.Rename(NameRename, tabID, entry.DisplayIndex, entry.TabName, req.Name)
	if err := h.host.RenameTab(tabID, req.Name); err != nil {
		return fmt.Errorf("rename tab %d: %w", tabID, err)
	}
	return nil
}

func (h *Handler) status(payload *string, out Output) (string, error) {
	req, err := ParseStatus(payload)
	if err != nil {
		return "", err
	}
	entry, err := h.resolve(NameStatus, req.PaneID)
	if err != nil {
		return req.Action, err
	}
	marker, base := status.Decode(entry.TabName)
	tabID := entry.TargetID()

	switch req.Action {
	case ActionSetStatus:
		if req.Emoji == "" {
			return req.Action, ErrMissingEmoji
		}
		return req.Action, h.apply(req.Action, entry, status.Encode(req.Emoji, base))
	case ActionClearStatus:
		return req.Action, h.apply(req.Action, entry, base)
	case ActionGetStatus:
		events.Command.Query(req.Action, marker)
		reply(out, marker)
		return req.Action, nil
	case ActionGetName:
		events.Command.Query(req.Action, base)
		reply(out, base)
		return req.Action, nil
	default:
		return req.Action, fmt.Errorf("%w %q on tab %d. Use '%s', '%s', '%s', or '%s'", ErrInvalidAction, req.Action, tabID,
			ActionSetStatus, ActionClearStatus, ActionGetStatus, ActionGetName)
	}
}

func (h *Handler) apply(action string, entry pane.Entry, name string) error {
	tabID := entry.TargetID()
	events.Command.Rename(action, tabID, entry.DisplayIndex, entry.TabName, name)
	if err := h.host.RenameTab(tabID, name); err != nil {
		return fmt.Errorf("%s on tab %d: %w", action, tabID, err)
	}
	return nil
}

func (h *Handler) resolve(name, rawID string) (pane.Entry, error) {
	id, err := ParsePaneID(rawID)
	if err != nil {
		return pane.Entry{}, err
	}
	idx := h.currentIndex()
	events.Command.Lookup(name, id, idx.Len())
	entry, ok := idx.Lookup(id)
	if !ok {
		return pane.Entry{}, fmt.Errorf("%w: pane %d. Known panes: %v", ErrUnknownPane, id, idx.IDs())
	}
	return entry, nil
}

func (h *Handler) currentIndex() pane.Index {
	if h.index == nil {
		return nil
	}
	return h.index.Index()
}

func reply(out Output, data string) {
	if out == nil {
		return
	}
	out.Output(NameStatus, data)
	out.Unblock(NameStatus)
}
