package command

import "errors"

var (
	ErrMissingPayload   = errors.New("missing payload")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrInvalidPaneID    = errors.New("pane_id must be a number")
	ErrUnknownPane      = errors.New("pane not found")
	ErrInvalidAction    = errors.New("unknown action")
	ErrMissingEmoji     = errors.New("emoji is required for 'set_status' action")
)
