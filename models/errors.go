package models

import (
	"errors"
	"fmt"
)

// Kind classifies where an error came from.
type Kind int

const (
	KindDatabase Kind = iota + 1
	KindTelegram
	KindParse
	KindMissingDraft
)

func (k Kind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindTelegram:
		return "telegram"
	case KindParse:
		return "parse"
	case KindMissingDraft:
		return "missing draft"
	}
	return "unknown"
}

var (
	// ErrNotFound is returned when an event id has no row.
	ErrNotFound = errors.New("event not found")
	// ErrForbidden is returned when Telegram refuses to deliver to a user who never started the bot.
	ErrForbidden = errors.New("bot cannot message this user")
	// ErrNotModified is returned when an edit would leave the message unchanged.
	ErrNotModified = errors.New("message is not modified")
	// ErrMissingDraft is returned when no draft exists for a user.
	ErrMissingDraft = errors.New("event draft not found")
)

// Error is a classified failure of a single operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap classifies err. A nil err stays nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
