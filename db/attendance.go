package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/awhatson15/rsvp-bot/models"
)

// ToggleAttendance records userID's answer for an event.
//
// A first answer inserts a row, a different answer updates it, and repeating
// the stored answer deletes the row so the user has no answer again.
func (db *DB) ToggleAttendance(ctx context.Context, eventID, userID int64, status models.Status) (models.Toggle, error) {
	const op = "toggle attendance"

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, models.Wrap(models.KindDatabase, op, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	var current models.Status
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM attendees WHERE event_id = ? AND user_id = ?",
		eventID, userID,
	).Scan(&current)

	var toggle models.Toggle
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			"INSERT INTO attendees (event_id, user_id, status) VALUES (?, ?, ?)",
			eventID, userID, status,
		)
		toggle = models.ToggleAdded
	case err != nil:
		return 0, models.Wrap(models.KindDatabase, op, err)
	case current == status:
		_, err = tx.ExecContext(ctx,
			"DELETE FROM attendees WHERE event_id = ? AND user_id = ?",
			eventID, userID,
		)
		toggle = models.ToggleRemoved
	default:
		_, err = tx.ExecContext(ctx,
			"UPDATE attendees SET status = ? WHERE event_id = ? AND user_id = ?",
			status, eventID, userID,
		)
		toggle = models.ToggleChanged
	}
	if err != nil {
		return 0, models.Wrap(models.KindDatabase, op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, models.Wrap(models.KindDatabase, op, fmt.Errorf("failed to commit transaction: %w", err))
	}

	return toggle, nil
}

// getAttendees returns an event's attendance rows in the order they were first recorded.
func (db *DB) getAttendees(ctx context.Context, eventID int64) ([]models.Attendee, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT user_id, status FROM attendees WHERE event_id = ? ORDER BY rowid",
		eventID,
	)
	if err != nil {
		return nil, models.Wrap(models.KindDatabase, "get attendees", err)
	}
	defer rows.Close()

	attendees := []models.Attendee{}
	for rows.Next() {
		var a models.Attendee
		if err := rows.Scan(&a.UserID, &a.Status); err != nil {
			return nil, models.Wrap(models.KindDatabase, "get attendees", err)
		}
		attendees = append(attendees, a)
	}

	if err := rows.Err(); err != nil {
		return nil, models.Wrap(models.KindDatabase, "get attendees", err)
	}

	return attendees, nil
}
