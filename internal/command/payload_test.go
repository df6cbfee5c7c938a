package command

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRenameMissingField(t *testing.T) {
	_, err := ParseRename(payload(`{"pane_id":"7"}`))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected field name in %q", err.Error())
	}
}

func TestParseStatusDefaultsEmoji(t *testing.T) {
	req, err := ParseStatus(payload(`{"pane_id":"7","action":"get_status"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.PaneID != "7" || req.Action != ActionGetStatus || req.Emoji != "" {
		t.Fatalf("unexpected payload: %#v", req)
	}
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	req, err := ParseRename(payload(`{"pane_id":"1","name":"x","extra":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Name != "x" {
		t.Fatalf("unexpected payload: %#v", req)
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	for _, body := range []string{
		`{"pane_id":"1","name":"x"} {"a":1}`,
		`{"pane_id":"1","name":"x"} x`,
		`{"pane_id":"7","name":"x"}}`,
		`{"pane_id":"7","name":"x"}]`,
	} {
		if _, err := ParseRename(payload(body)); !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("%s: expected ErrMalformedPayload, got %v", body, err)
		}
		status := strings.Replace(body, `"name":"x"`, `"action":"get_status"`, 1)
		if _, err := ParseStatus(payload(status)); !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("%s: expected ErrMalformedPayload, got %v", status, err)
		}
	}
	if _, err := ParseRename(payload("{\"pane_id\":\"1\",\"name\":\"x\"}\n ")); err != nil {
		t.Fatalf("trailing whitespace should be accepted, got %v", err)
	}
}

func TestParsePaneID(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"4294967295", 4294967295, true},
		{"4294967296", 0, false},
		{"", 0, false},
		{"-3", 0, false},
		{" 3", 0, false},
		{"%3", 0, false},
		{"+7", 7, true},
		{"++7", 0, false},
		{"+", 0, false},
		{"-0", 0, false},
	}
	for _, tc := range cases {
		got, err := ParsePaneID(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("ParsePaneID(%q) = %d, %v", tc.in, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidPaneID) {
			t.Fatalf("ParsePaneID(%q) expected ErrInvalidPaneID, got %v", tc.in, err)
		}
	}
}
