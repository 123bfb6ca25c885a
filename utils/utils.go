package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	// InputLayout is the date-time format users type during event creation.
	InputLayout = "2006-01-02 15:04"
	// StorageLayout is how event_date is persisted; it sorts lexically.
	StorageLayout = "2006-01-02 15:04:05"
	// DisplayLayout is how event dates are shown in event messages.
	DisplayLayout = "Mon, 02 Jan 2006 15:04"
)

// ParseEventTime parses user input in YYYY-MM-DD HH:MM form.
func ParseEventTime(s string) (time.Time, error) {
	t, err := time.Parse(InputLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q, expected YYYY-MM-DD HH:MM", s)
	}
	return t, nil
}

// FormatStorageDate formats t for the event_date column.
func FormatStorageDate(t time.Time) string {
	return t.Format(StorageLayout)
}

// FormatDisplayDate turns a stored event_date into the display form.
// Values that do not parse are returned unchanged.
func FormatDisplayDate(dbDate string) string {
	if dbDate == "" {
		return ""
	}
	t, err := time.Parse(StorageLayout, dbDate)
	if err != nil {
		return dbDate
	}
	return t.Format(DisplayLayout)
}

// markdownV2Reserved lists every character Telegram MarkdownV2 requires to be escaped.
const markdownV2Reserved = "\\_*[]()~`>#+-=|{}.!"

var (
	escaper   *strings.Replacer
	unescaper *strings.Replacer
)

func init() {
	var esc, unesc []string
	for _, r := range markdownV2Reserved {
		esc = append(esc, string(r), `\`+string(r))
		unesc = append(unesc, `\`+string(r), string(r))
	}
	escaper = strings.NewReplacer(esc...)
	unescaper = strings.NewReplacer(unesc...)
}

// EscapeMarkdownV2 prefixes every reserved character in s with a backslash.
func EscapeMarkdownV2(s string) string {
	return escaper.Replace(s)
}

// UnescapeMarkdownV2 reverses EscapeMarkdownV2.
func UnescapeMarkdownV2(s string) string {
	return unescaper.Replace(s)
}
