// Package pane maintains the mapping from tmux pane ids to the window (tab)
// that currently contains them.
package pane

import "sort"

// Tab describes a window as reported by the host. Position is the join key
// against pane groups; the display index is the tab's slot in a TabSnapshot.
type Tab struct {
	Position int    `json:"position" yaml:"position"`
	Name     string `json:"name" yaml:"name"`
}

// TabSnapshot is the ordered tab list from the most recent tab update.
type TabSnapshot []Tab

// Pane describes a single pane within a tab group.
type Pane struct {
	ID       uint32 `json:"id" yaml:"id"`
	IsPlugin bool   `json:"is_plugin" yaml:"is_plugin"`
}

// PaneManifest groups panes by the Position of the tab that holds them.
type PaneManifest map[int][]Pane

// Entry is what the index records for a pane.
type Entry struct {
	DisplayIndex int    `json:"display_index" yaml:"display_index"`
	TabName      string `json:"tab_name" yaml:"tab_name"`
}

// TargetID converts the 0-based display index into the 1-based tab id the
// host expects for renames.
func (e Entry) TargetID() int {
	return TargetID(e.DisplayIndex)
}

// TargetID maps a 0-based display index to the host's 1-based tab id.
func TargetID(displayIndex int) int {
	return displayIndex + 1
}

// Index maps pane ids to the tab containing them as of the last rebuild.
type Index map[uint32]Entry

// Lookup returns the entry for id.
func (idx Index) Lookup(id uint32) (Entry, bool) {
	entry, ok := idx[id]
	return entry, ok
}

// Len reports how many panes are indexed.
func (idx Index) Len() int {
	return len(idx)
}

// IDs returns the indexed pane ids in ascending order.
func (idx Index) IDs() []uint32 {
	ids := make([]uint32, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns an independent copy of the index.
func (idx Index) Clone() Index {
	if idx == nil {
		return nil
	}
	dup := make(Index, len(idx))
	for id, entry := range idx {
		dup[id] = entry
	}
	return dup
}
