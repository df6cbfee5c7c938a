package events

import "github.com/atomicstack/tmux-tab-rename/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) BackendError(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("app.backend.error", map[string]interface{}{"kind": kind, "error": err.Error()})
}
