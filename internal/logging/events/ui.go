package events

import "github.com/atomicstack/tmux-tab-rename/internal/logging"

type FilterTracer struct{}

type InspectorTracer struct{}

var (
	Filter    = FilterTracer{}
	Inspector = InspectorTracer{}
)

func (FilterTracer) Changed(filter string, matches int) {
	logging.Trace("filter.change", map[string]interface{}{"filter": filter, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (InspectorTracer) Cursor(cursor int) {
	logging.Trace("inspector.cursor", map[string]interface{}{"cursor": cursor})
}

func (InspectorTracer) Refresh(rows int) {
	logging.Trace("inspector.refresh", map[string]interface{}{"rows": rows})
}
