package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Status is a user's answer to an event invitation.
type Status int

const (
	StatusAccepted Status = iota + 1
	StatusDeclined
)

// String returns the value stored in the attendees.status column.
func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusDeclined:
		return "declined"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts a stored or callback value into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "accepted":
		return StatusAccepted, nil
	case "declined":
		return StatusDeclined, nil
	}
	return 0, fmt.Errorf("unknown attendance status %q", s)
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if s != StatusAccepted && s != StatusDeclined {
		return nil, fmt.Errorf("invalid attendance status %d", int(s))
	}
	return s.String(), nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Status", src)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Toggle reports what ToggleAttendance did with the attendance row.
type Toggle int

const (
	ToggleAdded Toggle = iota + 1
	ToggleChanged
	ToggleRemoved
)

// Attendee is one attendance row, with the display name filled in at read time.
type Attendee struct {
	UserID int64
	Name   string
	Status Status
}

// Event is a stored event together with its attendance rows.
type Event struct {
	ID          int64
	Creator     int64
	Title       string
	Description string
	Location    string
	EventDate   string
	ChatID      int64
	CreatedAt   time.Time
	Attendees   []Attendee
}

// Accepted returns attendees who accepted, in the order they answered.
func (e *Event) Accepted() []Attendee {
	return e.filter(StatusAccepted)
}

// Declined returns attendees who declined, in the order they answered.
func (e *Event) Declined() []Attendee {
	return e.filter(StatusDeclined)
}

func (e *Event) filter(status Status) []Attendee {
	var out []Attendee
	for _, a := range e.Attendees {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// DraftState is the field the creation dialogue is currently collecting.
type DraftState int

const (
	StateAwaitingTitle DraftState = iota
	StateAwaitingDescription
	StateAwaitingLocation
	StateAwaitingTime
)

func (s DraftState) String() string {
	switch s {
	case StateAwaitingTitle:
		return "awaiting_title"
	case StateAwaitingDescription:
		return "awaiting_description"
	case StateAwaitingLocation:
		return "awaiting_location"
	case StateAwaitingTime:
		return "awaiting_time"
	}
	return fmt.Sprintf("DraftState(%d)", int(s))
}

// Draft holds an event being created through the private dialogue.
type Draft struct {
	OriginChatID int64
	Title        string
	Description  string
	Location     string
	DateTime     string
	State        DraftState
	UpdatedAt    time.Time
}
