package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/awhatson15/rsvp-bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandleCallback handles presses on an event's Accept, Decline and Delete buttons.
func (d *Dispatcher) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback == nil || callback.From == nil {
		return nil
	}

	if err := d.messenger.AnswerCallback(callback.ID); err != nil {
		d.log.Warn("failed to answer callback query", zap.String("callback_id", callback.ID), zap.Error(err))
	}

	action, eventID, err := parseCallbackData(callback.Data)
	if err != nil {
		return err
	}

	switch action {
	case models.ActionAccepted:
		return d.handleRSVP(ctx, callback, eventID, models.StatusAccepted)
	case models.ActionDeclined:
		return d.handleRSVP(ctx, callback, eventID, models.StatusDeclined)
	case models.ActionDeleted:
		return d.handleDelete(ctx, callback, eventID)
	}

	return models.Wrap(models.KindParse, "callback", fmt.Errorf("unknown action %q", action))
}

// parseCallbackData splits an "<action>_<eventID>" token.
func parseCallbackData(data string) (string, int64, error) {
	action, rawID, ok := strings.Cut(data, "_")
	if !ok {
		return "", 0, models.Wrap(models.KindParse, "callback", fmt.Errorf("malformed callback data %q", data))
	}

	eventID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return "", 0, models.Wrap(models.KindParse, "callback", err)
	}

	return action, eventID, nil
}

func (d *Dispatcher) handleRSVP(ctx context.Context, callback *tgbotapi.CallbackQuery, eventID int64, status models.Status) error {
	userID := callback.From.ID

	if _, err := d.store.GetEventByID(ctx, eventID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	toggle, err := d.store.ToggleAttendance(ctx, eventID, userID, status)
	if err != nil {
		return err
	}
	d.log.Debug("attendance toggled", zap.Int64("event_id", eventID), zap.Int64("user_id", userID),
		zap.Stringer("status", status), zap.Int("toggle", int(toggle)))

	message := callback.Message
	if message == nil || message.Chat == nil {
		return nil
	}

	event, err := d.loadEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	err = d.messenger.EditEvent(message.Chat.ID, message.MessageID,
		event.FormatMessage(), event.Keyboard(userID, !message.Chat.IsPrivate()))
	if errors.Is(err, models.ErrNotModified) {
		return nil
	}
	return err
}

func (d *Dispatcher) handleDelete(ctx context.Context, callback *tgbotapi.CallbackQuery, eventID int64) error {
	userID := callback.From.ID

	event, err := d.store.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	if event.Creator != userID {
		d.log.Info("ignoring delete from non-creator", zap.Int64("event_id", eventID), zap.Int64("user_id", userID))
		return nil
	}

	message := callback.Message
	if message == nil || message.Chat == nil {
		return nil
	}

	if err := d.store.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	d.log.Info("event deleted", zap.Int64("event_id", eventID), zap.Int64("user_id", userID))

	if err := d.messenger.DeleteMessage(message.Chat.ID, message.MessageID); err != nil {
		return err
	}

	return d.messenger.SendText(message.Chat.ID, msgDeleted)
}
