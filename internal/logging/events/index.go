package events

import "github.com/atomicstack/tmux-tab-rename/internal/logging"

type IndexTracer struct{}

var Index = IndexTracer{}

func (IndexTracer) TabUpdate(tabs int) {
	logging.Trace("index.tabs", map[string]interface{}{"tabs": tabs})
}

func (IndexTracer) PaneUpdate(groups int) {
	logging.Trace("index.panes", map[string]interface{}{"groups": groups})
}

func (IndexTracer) Mapped(pane uint32, displayIndex int, tabName string) {
	logging.Trace("index.map", map[string]interface{}{"pane": pane, "tab": displayIndex, "name": tabName})
}

func (IndexTracer) Rebuilt(trigger string, total int) {
	logging.Trace("index.rebuild", map[string]interface{}{"trigger": trigger, "total": total})
}
