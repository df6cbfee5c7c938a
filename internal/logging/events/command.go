package events

import "github.com/atomicstack/tmux-tab-rename/internal/logging"

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Received(name string, payload *string) {
	fields := map[string]interface{}{"name": name}
	if payload != nil {
		fields["payload"] = *payload
	}
	logging.Trace("command.received", fields)
}

func (CommandTracer) Ignored(name string) {
	logging.Trace("command.ignored", map[string]interface{}{"name": name})
}

func (CommandTracer) Lookup(name string, pane uint32, known int) {
	logging.Trace("command.lookup", map[string]interface{}{"name": name, "pane": pane, "known": known})
}

func (CommandTracer) Rename(name string, tabID, displayIndex int, from, to string) {
	logging.Trace("command.rename", map[string]interface{}{
		"name":     name,
		"tab":      tabID,
		"position": displayIndex,
		"from":     from,
		"to":       to,
	})
}

func (CommandTracer) Query(action, value string) {
	logging.Trace("command.query", map[string]interface{}{"action": action, "value": value})
}

// Failed records a handler failure in the trace and in the error log.
func (CommandTracer) Failed(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"name": name, "error": err.Error()})
	logging.Error(err)
}
