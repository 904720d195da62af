package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		value string
		max   int
		want  string
	}{
		{"short unchanged", "Browse the web", 60, "Browse the web"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"long ascii", "abcdefghij", 8, "abcde..."},
		{"tiny max unchanged", "abcdefghij", 3, "abcdefghij"},
		{"trims whitespace", "  padded  ", 60, "padded"},
	}
	for _, tc := range cases {
		if got := truncate(tc.value, tc.max); got != tc.want {
			t.Errorf("%s: truncate(%q, %d) = %q, want %q", tc.name, tc.value, tc.max, got, tc.want)
		}
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	value := strings.Repeat("ü", 20)

	got := truncate(value, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if want := strings.Repeat("ü", 7) + "..."; got != want {
		t.Fatalf("truncate = %q, want %q", got, want)
	}
}
