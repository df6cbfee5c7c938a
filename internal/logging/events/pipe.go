package events

import "github.com/atomicstack/tmux-tab-rename/internal/logging"

type PipeTracer struct{}

var Pipe = PipeTracer{}

func (PipeTracer) Accept(id, name string) {
	logging.Trace("pipe.accept", map[string]interface{}{"id": id, "name": name})
}

func (PipeTracer) Output(id, name, data string) {
	logging.Trace("pipe.output", map[string]interface{}{"id": id, "name": name, "data": data})
}

func (PipeTracer) Unblock(id, name string) {
	logging.Trace("pipe.unblock", map[string]interface{}{"id": id, "name": name})
}

func (PipeTracer) Done(id string) {
	logging.Trace("pipe.done", map[string]interface{}{"id": id})
}

func (PipeTracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("pipe.error", map[string]interface{}{"id": id, "error": err.Error()})
}
