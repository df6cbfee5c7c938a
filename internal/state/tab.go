package state

import "github.com/atomicstack/tmux-tab-rename/internal/pane"

// TabStore holds the most recent tab snapshot and the session it belongs to.
type TabStore interface {
	Tabs() pane.TabSnapshot
	SetTabs(pane.TabSnapshot)
	Session() string
	SetSession(string)
	Loaded() bool
}

type tabStore struct {
	tabs    pane.TabSnapshot
	session string
	loaded  bool
}

func NewTabStore() TabStore {
	return &tabStore{}
}

func (t *tabStore) Tabs() pane.TabSnapshot {
	return pane.CloneTabs(t.tabs)
}

func (t *tabStore) SetTabs(tabs pane.TabSnapshot) {
	t.tabs = pane.CloneTabs(tabs)
	t.loaded = true
}

func (t *tabStore) Session() string {
	return t.session
}

func (t *tabStore) SetSession(session string) {
	t.session = session
}

// Loaded reports whether any tab snapshot has been stored yet.
func (t *tabStore) Loaded() bool {
	return t.loaded
}
