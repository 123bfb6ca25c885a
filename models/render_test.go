package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func testEvent() *Event {
	return &Event{
		ID:          42,
		Creator:     7,
		Title:       "Picnic",
		Description: "Bring snacks",
		Location:    "Park",
		EventDate:   "2025-08-15 19:00:00",
		ChatID:      100,
	}
}

func TestFormatMessageWithoutAttendees(t *testing.T) {
	got := testEvent().FormatMessage()

	want := "*__Picnic__*\nBring snacks\n\n⏰ Fri, 15 Aug 2025 19:00\n📍 Park\n"
	if got != want {
		t.Errorf("FormatMessage() = %q, want %q", got, want)
	}
	if strings.Contains(got, "Accepted") || strings.Contains(got, "Declined") {
		t.Errorf("FormatMessage() should omit empty lists, got %q", got)
	}
}

func TestFormatMessageLists(t *testing.T) {
	e := testEvent()
	e.Attendees = []Attendee{
		{UserID: 1, Name: "Ann", Status: StatusAccepted},
		{UserID: 2, Name: "Bob", Status: StatusDeclined},
		{UserID: 3, Name: "Cy.", Status: StatusAccepted},
	}

	got := e.FormatMessage()

	if !strings.Contains(got, "\n✅ Accepted\n• Ann\n• Cy\\.\n") {
		t.Errorf("accepted list missing or out of order in %q", got)
	}
	if !strings.Contains(got, "\n❌ Declined\n• Bob\n") {
		t.Errorf("declined list missing in %q", got)
	}
	if strings.Index(got, "Accepted") > strings.Index(got, "Declined") {
		t.Errorf("accepted list should come before declined list in %q", got)
	}
}

func TestFormatMessageOnlyDeclined(t *testing.T) {
	e := testEvent()
	e.Attendees = []Attendee{{UserID: 2, Name: "Bob", Status: StatusDeclined}}

	got := e.FormatMessage()
	if strings.Contains(got, "Accepted") {
		t.Errorf("empty accepted list should be omitted, got %q", got)
	}
	if !strings.Contains(got, "❌ Declined") {
		t.Errorf("declined list missing in %q", got)
	}
}

func TestFormatMessageEscapesUserInput(t *testing.T) {
	e := testEvent()
	e.Title = "*bold*"
	e.Description = "1+1=2."
	e.Location = "[here](x)"

	got := e.FormatMessage()

	for _, want := range []string{`\*bold\*`, `1\+1\=2\.`, `\[here\]\(x\)`} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatMessage() = %q, want it to contain %q", got, want)
		}
	}
}

func TestKeyboard(t *testing.T) {
	tests := []struct {
		name       string
		viewerID   int64
		public     bool
		wantDelete bool
	}{
		{name: "creator in private chat", viewerID: 7, public: false, wantDelete: true},
		{name: "creator in group", viewerID: 7, public: true, wantDelete: false},
		{name: "other user in private chat", viewerID: 8, public: false, wantDelete: false},
		{name: "other user in group", viewerID: 8, public: true, wantDelete: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := testEvent().Keyboard(tt.viewerID, tt.public)

			first := kb.InlineKeyboard[0]
			if len(first) != 2 {
				t.Fatalf("first row has %d buttons, want 2", len(first))
			}
			if *first[0].CallbackData != "accepted_42" || *first[1].CallbackData != "declined_42" {
				t.Errorf("RSVP buttons carry %q and %q", *first[0].CallbackData, *first[1].CallbackData)
			}

			hasDelete := len(kb.InlineKeyboard) == 2
			if hasDelete != tt.wantDelete {
				t.Fatalf("delete button present = %v, want %v", hasDelete, tt.wantDelete)
			}
			if hasDelete && *kb.InlineKeyboard[1][0].CallbackData != "deleted_42" {
				t.Errorf("delete button carries %q", *kb.InlineKeyboard[1][0].CallbackData)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	for _, s := range []Status{StatusAccepted, StatusDeclined} {
		parsed, err := ParseStatus(s.String())
		if err != nil || parsed != s {
			t.Errorf("ParseStatus(%q) = %v, %v", s.String(), parsed, err)
		}

		var scanned Status
		if err := scanned.Scan([]byte(s.String())); err != nil || scanned != s {
			t.Errorf("Scan(%q) = %v, %v", s.String(), scanned, err)
		}
	}

	if _, err := ParseStatus("maybe"); err == nil {
		t.Error("ParseStatus(\"maybe\") expected error")
	}
	if _, err := Status(0).Value(); err == nil {
		t.Error("Value() of zero Status expected error")
	}
	var s Status
	if err := s.Scan(int64(1)); err == nil {
		t.Error("Scan(int64) expected error")
	}
}

func TestErrorKinds(t *testing.T) {
	if Wrap(KindDatabase, "op", nil) != nil {
		t.Fatal("Wrap(nil) should be nil")
	}

	err := fmt.Errorf("handling update: %w", Wrap(KindTelegram, "send message", ErrForbidden))
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("errors.Is(%v, ErrForbidden) = false", err)
	}
	if got := KindOf(err); got != KindTelegram {
		t.Errorf("KindOf() = %v, want %v", got, KindTelegram)
	}
	if got := KindOf(errors.New("plain")); got != 0 {
		t.Errorf("KindOf(plain) = %v, want 0", got)
	}
	if got := err.Error(); !strings.Contains(got, "telegram error: send message") {
		t.Errorf("Error() = %q", got)
	}
}
