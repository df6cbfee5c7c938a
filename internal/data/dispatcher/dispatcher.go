package dispatcher

import (
	"github.com/atomicstack/tmux-tab-rename/internal/backend"
	"github.com/atomicstack/tmux-tab-rename/internal/logging/events"
	"github.com/atomicstack/tmux-tab-rename/internal/pane"
	"github.com/atomicstack/tmux-tab-rename/internal/state"
)

type Result struct {
	TabsUpdated  bool
	PanesUpdated bool
	Rebuilt      bool
	IndexSize    int
}

// Trigger names the snapshot kind that caused a rebuild.
func (r Result) Trigger() string {
	switch {
	case r.TabsUpdated:
		return backend.KindTabs.String()
	case r.PanesUpdated:
		return backend.KindPanes.String()
	default:
		return ""
	}
}

type Dispatcher struct {
	tabs  state.TabStore
	panes state.PaneStore
	index state.IndexStore
}

func New(t state.TabStore, p state.PaneStore, i state.IndexStore) *Dispatcher {
	return &Dispatcher{tabs: t, panes: p, index: i}
}

// Handle stores the snapshot carried by evt and rebuilds the index from it
// and the latest snapshot of the other kind. Failed polls leave everything
// as it was.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.App.BackendError(evt.Kind.String(), evt.Err)
		return res
	}
	switch evt.Kind {
	case backend.KindTabs:
		if snapshot, ok := evt.Data.(pane.TabSnapshot); ok {
			d.tabs.SetTabs(snapshot)
			events.Index.TabUpdate(len(snapshot))
			res.TabsUpdated = true
		}
	case backend.KindPanes:
		if manifest, ok := evt.Data.(pane.PaneManifest); ok {
			d.panes.SetManifest(manifest)
			events.Index.PaneUpdate(len(manifest))
			res.PanesUpdated = true
		}
	}
	if !res.TabsUpdated && !res.PanesUpdated {
		return res
	}
	idx := pane.RebuildFunc(d.tabs.Tabs(), d.panes.Manifest(), func(id uint32, entry pane.Entry) {
		events.Index.Mapped(id, entry.DisplayIndex, entry.TabName)
	})
	d.index.Replace(idx)
	res.Rebuilt = true
	res.IndexSize = idx.Len()
	events.Index.Rebuilt(res.Trigger(), res.IndexSize)
	return res
}
