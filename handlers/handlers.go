package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/awhatson15/rsvp-bot/models"
	"github.com/awhatson15/rsvp-bot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store is the persistence the dispatcher needs.
type Store interface {
	CreateEvent(ctx context.Context, creator, chatID int64, draft models.Draft, when time.Time) (int64, error)
	GetEventByID(ctx context.Context, eventID int64) (*models.Event, error)
	GetEventsByChat(ctx context.Context, chatID int64) ([]*models.Event, error)
	GetEventIDsByCreator(ctx context.Context, userID int64) ([]int64, error)
	DeleteEvent(ctx context.Context, eventID int64) error
	ToggleAttendance(ctx context.Context, eventID, userID int64, status models.Status) (models.Toggle, error)
}

// Messenger is the outbound side of the chat platform.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendEvent(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	EditEvent(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID string) error
	DisplayName(chatID, userID int64) (string, error)
}

// Options tunes a Dispatcher.
type Options struct {
	// BotUsername is shown in the "start a private chat" instructions and
	// used to tell our /command@bot apart from other bots' commands.
	BotUsername string
	// NameLookups bounds concurrent display name lookups per event.
	NameLookups int
}

// Dispatcher routes updates to command, draft and callback handlers.
type Dispatcher struct {
	store     Store
	messenger Messenger
	drafts    *DraftStore
	log       *zap.Logger
	opts      Options
}

// NewDispatcher creates a dispatcher that owns drafts.
func NewDispatcher(store Store, messenger Messenger, drafts *DraftStore, log *zap.Logger, opts Options) *Dispatcher {
	if opts.NameLookups < 1 {
		opts.NameLookups = 1
	}
	return &Dispatcher{
		store:     store,
		messenger: messenger,
		drafts:    drafts,
		log:       log,
		opts:      opts,
	}
}

// HandleUpdate processes one inbound update.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.Message != nil:
		return d.HandleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		return d.HandleCallback(ctx, update.CallbackQuery)
	}
	return nil
}

// HandleMessage handles commands and, in private chats, answers to the creation dialogue.
func (d *Dispatcher) HandleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message == nil || message.From == nil || message.Chat == nil || message.Text == "" {
		return nil
	}

	userID := message.From.ID
	chatID := message.Chat.ID
	private := message.Chat.IsPrivate()

	switch d.command(message) {
	case "create":
		return d.handleCreate(userID, chatID, private)
	case "list":
		return d.handleList(ctx, chatID, userID)
	case "cancel":
		return d.handleCancel(userID, chatID)
	case "myevents":
		return d.handleMyEvents(ctx, userID)
	case "help":
		return d.messenger.SendText(chatID, helpText)
	}

	if !private {
		return nil
	}
	if _, ok := d.drafts.Get(userID); !ok {
		return nil
	}
	return d.handleDraftInput(ctx, userID, chatID, message.Text)
}

// command returns the bare command name, or "" when the message is not one of ours.
func (d *Dispatcher) command(message *tgbotapi.Message) string {
	if !message.IsCommand() {
		return ""
	}
	if _, target, ok := strings.Cut(message.CommandWithAt(), "@"); ok && d.opts.BotUsername != "" &&
		!strings.EqualFold(target, d.opts.BotUsername) {
		return ""
	}
	return message.Command()
}

func (d *Dispatcher) handleCreate(userID, chatID int64, private bool) error {
	if private {
		return d.messenger.SendText(chatID, msgCreateInGroup)
	}

	err := d.messenger.SendText(userID, promptTitle)
	switch {
	case err == nil:
		d.drafts.Start(userID, chatID)
		d.log.Info("draft started", zap.Int64("user_id", userID), zap.Int64("chat_id", chatID))
		return nil
	case errors.Is(err, models.ErrForbidden):
		return d.messenger.SendText(chatID, startPrivateChatHelp(d.opts.BotUsername))
	default:
		return err
	}
}

func (d *Dispatcher) handleCancel(userID, chatID int64) error {
	if !d.drafts.Remove(userID) {
		return nil
	}
	d.log.Info("draft cancelled", zap.Int64("user_id", userID))
	return d.messenger.SendText(chatID, msgCancelled)
}

// handleDraftInput stores text as the answer to the draft's current field.
// The advanced draft is only kept once the next prompt was delivered.
func (d *Dispatcher) handleDraftInput(ctx context.Context, userID, chatID int64, text string) error {
	draft, ok := d.drafts.Get(userID)
	if !ok {
		return models.Wrap(models.KindMissingDraft, "draft input", models.ErrMissingDraft)
	}

	var prompt string
	switch draft.State {
	case models.StateAwaitingTitle:
		draft.Title = text
		draft.State = models.StateAwaitingDescription
		prompt = promptDescription
	case models.StateAwaitingDescription:
		draft.Description = text
		draft.State = models.StateAwaitingLocation
		prompt = promptLocation
	case models.StateAwaitingLocation:
		draft.Location = text
		draft.State = models.StateAwaitingTime
		prompt = promptTime
	case models.StateAwaitingTime:
		return d.completeDraft(ctx, userID, chatID, draft, text)
	default:
		return fmt.Errorf("draft for user %d in unknown state %s", userID, draft.State)
	}

	if err := d.messenger.SendText(chatID, prompt); err != nil {
		return err
	}
	d.drafts.Put(userID, draft)
	return nil
}

// completeDraft validates the date-time answer and commits the draft.
// On a storage failure the draft stays in StateAwaitingTime so the user can retry.
func (d *Dispatcher) completeDraft(ctx context.Context, userID, chatID int64, draft models.Draft, text string) error {
	when, err := utils.ParseEventTime(text)
	if err != nil {
		return d.messenger.SendText(chatID, msgInvalidTime)
	}
	draft.DateTime = text

	eventID, err := d.store.CreateEvent(ctx, userID, draft.OriginChatID, draft, when)
	if err != nil {
		if sendErr := d.messenger.SendText(chatID, msgCreateFailed); sendErr != nil {
			d.log.Warn("failed to report create failure", zap.Int64("user_id", userID), zap.Error(sendErr))
		}
		return err
	}
	d.drafts.Remove(userID)
	d.log.Info("event created", zap.Int64("event_id", eventID), zap.Int64("user_id", userID),
		zap.Int64("chat_id", draft.OriginChatID))

	event, err := d.loadEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if err := d.postEvent(draft.OriginChatID, event, userID, true); err != nil {
		return err
	}
	if err := d.postEvent(userID, event, userID, false); err != nil {
		return err
	}

	return d.messenger.SendText(chatID, msgCreated)
}

func (d *Dispatcher) handleList(ctx context.Context, chatID, viewerID int64) error {
	events, err := d.store.GetEventsByChat(ctx, chatID)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return d.messenger.SendText(chatID, msgNoEvents)
	}

	for _, event := range events {
		d.resolveNames(event)
		if err := d.postEvent(chatID, event, viewerID, true); err != nil {
			return err
		}
	}

	return nil
}

func (d *Dispatcher) handleMyEvents(ctx context.Context, userID int64) error {
	ids, err := d.store.GetEventIDsByCreator(ctx, userID)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return d.messenger.SendText(userID, msgNoMine)
	}

	for _, id := range ids {
		event, err := d.loadEvent(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := d.postEvent(userID, event, userID, false); err != nil {
			return err
		}
	}

	return nil
}

func (d *Dispatcher) postEvent(chatID int64, event *models.Event, viewerID int64, public bool) error {
	return d.messenger.SendEvent(chatID, event.FormatMessage(), event.Keyboard(viewerID, public))
}

// loadEvent fetches an event and fills in attendee display names.
func (d *Dispatcher) loadEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := d.store.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	d.resolveNames(event)
	return event, nil
}

// resolveNames looks up attendee names concurrently. Results are written by
// index, so list order is answer order. Failed lookups fall back to "User <id>".
func (d *Dispatcher) resolveNames(event *models.Event) {
	var g errgroup.Group
	g.SetLimit(d.opts.NameLookups)

	for i := range event.Attendees {
		a := &event.Attendees[i]
		g.Go(func() error {
			name, err := d.messenger.DisplayName(event.ChatID, a.UserID)
			if err != nil || name == "" {
				d.log.Warn("failed to fetch user name",
					zap.Int64("user_id", a.UserID), zap.Int64("chat_id", event.ChatID), zap.Error(err))
				name = fmt.Sprintf("User %d", a.UserID)
			}
			a.Name = name
			return nil
		})
	}

	_ = g.Wait()
}
