package ui

import (
	"sort"
	"strconv"

	"github.com/atomicstack/tmux-tab-rename/internal/format/table"
	"github.com/atomicstack/tmux-tab-rename/internal/pane"
	"github.com/atomicstack/tmux-tab-rename/internal/status"
	uistate "github.com/atomicstack/tmux-tab-rename/internal/ui/state"
)

// Row is one indexed pane as shown by the inspector.
type Row struct {
	PaneID      uint32
	TabID       int
	WindowIndex int
	Marker      string
	Base        string
}

// BuildRows flattens idx into rows ordered by tab, then pane id. tabs
// supplies the window index behind each display index.
func BuildRows(idx pane.Index, tabs pane.TabSnapshot) []Row {
	rows := make([]Row, 0, idx.Len())
	for _, id := range idx.IDs() {
		entry, _ := idx.Lookup(id)
		marker, base := status.Decode(entry.TabName)
		window := -1
		if entry.DisplayIndex < len(tabs) {
			window = tabs[entry.DisplayIndex].Position
		}
		rows = append(rows, Row{
			PaneID:      id,
			TabID:       entry.TargetID(),
			WindowIndex: window,
			Marker:      marker,
			Base:        base,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TabID != rows[j].TabID {
			return rows[i].TabID < rows[j].TabID
		}
		return rows[i].PaneID < rows[j].PaneID
	})
	return rows
}

var rowAlignments = []table.Alignment{table.AlignRight, table.AlignRight, table.AlignLeft, table.AlignLeft}

// rowItems renders rows as aligned list items. The first returned line is
// the column header.
func rowItems(rows []Row) (string, []uistate.Item) {
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, []string{"PANE", "TAB", "STATUS", "NAME"})
	for _, r := range rows {
		cells = append(cells, []string{
			"%" + strconv.FormatUint(uint64(r.PaneID), 10),
			strconv.Itoa(r.TabID),
			r.Marker,
			r.Base,
		})
	}
	lines := table.Format(cells, rowAlignments)
	items := make([]uistate.Item, len(rows))
	for i, r := range rows {
		items[i] = uistate.Item{ID: strconv.FormatUint(uint64(r.PaneID), 10), Label: lines[i+1]}
	}
	return lines[0], items
}
