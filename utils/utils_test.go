package utils

import (
	"strings"
	"testing"
	"time"
)

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		shouldError bool
	}{
		{
			name:     "valid date and time",
			input:    "2025-08-15 19:00",
			expected: time.Date(2025, 8, 15, 19, 0, 0, 0, time.UTC),
		},
		{
			name:     "surrounding whitespace",
			input:    "  2025-01-02 03:04 ",
			expected: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		},
		{name: "date only", input: "2025-08-15", shouldError: true},
		{name: "wrong order", input: "15-08-2025 19:00", shouldError: true},
		{name: "seconds", input: "2025-08-15 19:00:00", shouldError: true},
		{name: "impossible day", input: "2025-02-30 10:00", shouldError: true},
		{name: "hour out of range", input: "2025-08-15 25:00", shouldError: true},
		{name: "free text", input: "next friday", shouldError: true},
		{name: "empty", input: "", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventTime(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Errorf("ParseEventTime(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEventTime(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseEventTime(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStorageDateRoundTrip(t *testing.T) {
	when, err := ParseEventTime("2025-08-15 19:00")
	if err != nil {
		t.Fatalf("ParseEventTime() error = %v", err)
	}

	stored := FormatStorageDate(when)
	if stored != "2025-08-15 19:00:00" {
		t.Errorf("FormatStorageDate() = %q, want %q", stored, "2025-08-15 19:00:00")
	}

	if got := FormatDisplayDate(stored); got != "Fri, 15 Aug 2025 19:00" {
		t.Errorf("FormatDisplayDate(%q) = %q", stored, got)
	}
}

func TestFormatDisplayDateFallback(t *testing.T) {
	if got := FormatDisplayDate(""); got != "" {
		t.Errorf("FormatDisplayDate(\"\") = %q, want empty", got)
	}
	if got := FormatDisplayDate("soon"); got != "soon" {
		t.Errorf("FormatDisplayDate(\"soon\") = %q, want input unchanged", got)
	}
}

// assertFullyEscaped fails if s contains a reserved character that is not
// preceded by an escaping backslash.
func assertFullyEscaped(t *testing.T, s string) {
	t.Helper()
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' {
			if i+1 >= len(runes) || !strings.ContainsRune(markdownV2Reserved, runes[i+1]) {
				t.Fatalf("dangling backslash at %d in %q", i, s)
			}
			i++
			continue
		}
		if strings.ContainsRune(markdownV2Reserved, r) {
			t.Fatalf("unescaped %q at %d in %q", r, i, s)
		}
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"Picnic!", `Picnic\!`},
		{"a_b*c", `a\_b\*c`},
		{"(1+1=2)", `\(1\+1\=2\)`},
		{"back\\slash", `back\\slash`},
		{"ünïcødé.", `ünïcødé\.`},
		{"[link](http://x.y)", `\[link\]\(http://x\.y\)`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EscapeMarkdownV2(tt.input)
			if got != tt.expected {
				t.Errorf("EscapeMarkdownV2(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			assertFullyEscaped(t, got)
		})
	}
}

func TestEscapeEveryReservedCharacter(t *testing.T) {
	inputs := []string{
		markdownV2Reserved,
		strings.Repeat(markdownV2Reserved, 3),
		`\\\_already\_escaped\\`,
		"mixed *bold* _it_ ~strike~ `code` > quote #tag | pipe {x}",
		"",
	}

	for _, in := range inputs {
		escaped := EscapeMarkdownV2(in)
		assertFullyEscaped(t, escaped)

		if got := UnescapeMarkdownV2(escaped); got != in {
			t.Errorf("UnescapeMarkdownV2(EscapeMarkdownV2(%q)) = %q", in, got)
		}
	}
}
