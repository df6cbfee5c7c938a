package state

import "github.com/atomicstack/tmux-tab-rename/internal/pane"

type PaneStore interface {
	Manifest() pane.PaneManifest
	SetManifest(pane.PaneManifest)
	Loaded() bool
}

type paneStore struct {
	manifest pane.PaneManifest
	loaded   bool
}

func NewPaneStore() PaneStore {
	return &paneStore{}
}

func (p *paneStore) Manifest() pane.PaneManifest {
	return pane.CloneManifest(p.manifest)
}

func (p *paneStore) SetManifest(manifest pane.PaneManifest) {
	p.manifest = pane.CloneManifest(manifest)
	p.loaded = true
}

func (p *paneStore) Loaded() bool {
	return p.loaded
}
