package pane

// MapFunc observes every pane inserted during a rebuild.
type MapFunc func(id uint32, entry Entry)

// Rebuild computes a fresh index from the latest tab and pane snapshots.
// Tabs without a pane group are skipped and plugin panes never enter the
// index. A pane id listed under more than one tab keeps the entry of the
// last tab visited.
func Rebuild(tabs TabSnapshot, panes PaneManifest) Index {
	return RebuildFunc(tabs, panes, nil)
}

// RebuildFunc is Rebuild with a callback invoked for each mapped pane.
func RebuildFunc(tabs TabSnapshot, panes PaneManifest, mapped MapFunc) Index {
	idx := make(Index)
	for displayIndex, tab := range tabs {
		group, ok := panes[tab.Position]
		if !ok {
			continue
		}
		for _, p := range group {
			if p.IsPlugin {
				continue
			}
			entry := Entry{DisplayIndex: displayIndex, TabName: tab.Name}
			idx[p.ID] = entry
			if mapped != nil {
				mapped(p.ID, entry)
			}
		}
	}
	return idx
}

// CloneTabs returns a copy of the snapshot.
func CloneTabs(tabs TabSnapshot) TabSnapshot {
	if len(tabs) == 0 {
		return nil
	}
	dup := make(TabSnapshot, len(tabs))
	copy(dup, tabs)
	return dup
}

// CloneManifest returns a deep copy of the manifest.
func CloneManifest(panes PaneManifest) PaneManifest {
	if panes == nil {
		return nil
	}
	dup := make(PaneManifest, len(panes))
	for position, group := range panes {
		g := make([]Pane, len(group))
		copy(g, group)
		dup[position] = g
	}
	return dup
}

// Count returns the number of pane descriptors in the manifest, plugin
// panes included.
func (m PaneManifest) Count() int {
	total := 0
	for _, group := range m {
		total += len(group)
	}
	return total
}
