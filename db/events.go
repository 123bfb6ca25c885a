package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/awhatson15/rsvp-bot/models"
	"github.com/awhatson15/rsvp-bot/utils"
)

const eventColumns = "id, creator, title, description, location, event_date, chat_id, created_at"

// CreateEvent stores a completed draft and returns the new event id.
func (db *DB) CreateEvent(ctx context.Context, creator, chatID int64, draft models.Draft, when time.Time) (int64, error) {
	if draft.Title == "" {
		return 0, models.Wrap(models.KindDatabase, "create event", errors.New("title is required"))
	}

	result, err := db.ExecContext(ctx,
		"INSERT INTO events (creator, title, description, location, event_date, chat_id) VALUES (?, ?, ?, ?, ?, ?)",
		creator, draft.Title, draft.Description, draft.Location, utils.FormatStorageDate(when), chatID,
	)
	if err != nil {
		return 0, models.Wrap(models.KindDatabase, "create event", err)
	}

	eventID, err := result.LastInsertId()
	if err != nil {
		return 0, models.Wrap(models.KindDatabase, "create event", fmt.Errorf("failed to get new event id: %w", err))
	}

	return eventID, nil
}

// GetEventByID loads an event and its attendance rows.
// It returns models.ErrNotFound when no such event exists.
func (db *DB) GetEventByID(ctx context.Context, eventID int64) (*models.Event, error) {
	event := &models.Event{}

	err := db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?",
		eventID,
	).Scan(&event.ID, &event.Creator, &event.Title, &event.Description, &event.Location,
		&event.EventDate, &event.ChatID, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.Wrap(models.KindDatabase, "get event", err)
	}

	event.Attendees, err = db.getAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// GetEventsByChat loads every event posted to chatID, earliest first.
func (db *DB) GetEventsByChat(ctx context.Context, chatID int64) ([]*models.Event, error) {
	ids, err := db.queryIDs(ctx, "list chat events",
		"SELECT id FROM events WHERE chat_id = ? ORDER BY event_date, id", chatID)
	if err != nil {
		return nil, err
	}

	events := make([]*models.Event, 0, len(ids))
	for _, id := range ids {
		event, err := db.GetEventByID(ctx, id)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// GetEventIDsByCreator returns the ids of events created by userID, earliest first.
func (db *DB) GetEventIDsByCreator(ctx context.Context, userID int64) ([]int64, error) {
	return db.queryIDs(ctx, "list creator events",
		"SELECT id FROM events WHERE creator = ? ORDER BY event_date, id", userID)
}

// DeleteEvent removes an event and, first, its attendance rows.
func (db *DB) DeleteEvent(ctx context.Context, eventID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return models.Wrap(models.KindDatabase, "delete event", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM attendees WHERE event_id = ?", eventID); err != nil {
		return models.Wrap(models.KindDatabase, "delete event", fmt.Errorf("failed to delete attendees: %w", err))
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", eventID); err != nil {
		return models.Wrap(models.KindDatabase, "delete event", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Wrap(models.KindDatabase, "delete event", fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

func (db *DB) queryIDs(ctx context.Context, op, query string, args ...any) ([]int64, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, models.Wrap(models.KindDatabase, op, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, models.Wrap(models.KindDatabase, op, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, models.Wrap(models.KindDatabase, op, err)
	}

	return ids, nil
}
