package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RenamePayload is the body of a tab-rename request.
type RenamePayload struct {
	PaneID string `json:"pane_id"`
	Name   string `json:"name"`
}

// StatusPayload is the body of a tab-status request.
type StatusPayload struct {
	PaneID string `json:"pane_id"`
	Action string `json:"action"`
	Emoji  string `json:"emoji,omitempty"`
}

// ParseRename decodes a tab-rename payload. Both fields are required.
func ParseRename(payload *string) (RenamePayload, error) {
	var raw struct {
		PaneID *string `json:"pane_id"`
		Name   *string `json:"name"`
	}
	if err := decode(payload, &raw); err != nil {
		return RenamePayload{}, err
	}
	if raw.PaneID == nil {
		return RenamePayload{}, fmt.Errorf("%w: missing field `pane_id`", ErrMalformedPayload)
	}
	if raw.Name == nil {
		return RenamePayload{}, fmt.Errorf("%w: missing field `name`", ErrMalformedPayload)
	}
	return RenamePayload{PaneID: *raw.PaneID, Name: *raw.Name}, nil
}

// ParseStatus decodes a tab-status payload. emoji defaults to "".
func ParseStatus(payload *string) (StatusPayload, error) {
	var raw struct {
		PaneID *string `json:"pane_id"`
		Action *string `json:"action"`
		Emoji  string  `json:"emoji"`
	}
	if err := decode(payload, &raw); err != nil {
		return StatusPayload{}, err
	}
	if raw.PaneID == nil {
		return StatusPayload{}, fmt.Errorf("%w: missing field `pane_id`", ErrMalformedPayload)
	}
	if raw.Action == nil {
		return StatusPayload{}, fmt.Errorf("%w: missing field `action`", ErrMalformedPayload)
	}
	return StatusPayload{PaneID: *raw.PaneID, Action: *raw.Action, Emoji: raw.Emoji}, nil
}

// ParsePaneID parses a pane id as a non-negative base-10 integer. A single
// leading '+' is allowed.
func ParsePaneID(value string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(value, "+"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPaneID, value)
	}
	return uint32(id), nil
}

func decode(payload *string, v interface{}) error {
	if payload == nil {
		return ErrMissingPayload
	}
	dec := json.NewDecoder(strings.NewReader(*payload))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: trailing data after object", ErrMalformedPayload)
	}
	return nil
}
