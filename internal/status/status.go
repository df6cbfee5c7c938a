// Package status encodes a one-character status marker into a tab name.
//
// A decorated name has the form "<marker> <base>" where marker is exactly one
// Unicode scalar value. The name string is the only place the status lives.
package status

import "unicode/utf8"

const separator = ' '

// Decode splits name into its status marker and base name. Names whose first
// character is not followed by a single space are plain: the marker is empty
// and the base is the name unchanged.
func Decode(name string) (marker, base string) {
	if name == "" {
		return "", name
	}
	_, size := utf8.DecodeRuneInString(name)
	rest := name[size:]
	if rest == "" || rest[0] != separator {
		return "", name
	}
	return name[:size], rest[1:]
}

// Marker returns the status marker of name, or "" when it has none.
func Marker(name string) string {
	marker, _ := Decode(name)
	return marker
}

// Base returns name with any status marker and its separator removed.
func Base(name string) string {
	_, base := Decode(name)
	return base
}

// Encode prefixes base with marker and the separating space.
func Encode(marker, base string) string {
	return marker + string(separator) + base
}

// Valid reports whether marker is exactly one Unicode scalar value.
func Valid(marker string) bool {
	if marker == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(marker)
	if r == utf8.RuneError && size <= 1 {
		return false
	}
	return size == len(marker)
}
