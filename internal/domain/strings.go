package domain

import "strings"

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

// NullableString returns nil for blank input, otherwise the trimmed value.
func NullableString(s string) *string {
	s = trimmed(s)
	if s == "" {
		return nil
	}
	return &s
}
