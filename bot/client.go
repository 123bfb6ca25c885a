package bot

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/awhatson15/rsvp-bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client sends messages through the Telegram Bot API.
type Client struct {
	api *tgbotapi.BotAPI
}

// NewClient wraps api.
func NewClient(api *tgbotapi.BotAPI) *Client {
	return &Client{api: api}
}

// SendText sends a plain text message.
func (c *Client) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := c.api.Send(msg)
	return classify("send message", err)
}

// SendEvent sends a MarkdownV2 event message with its keyboard.
func (c *Client) SendEvent(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.ReplyMarkup = keyboard
	_, err := c.api.Send(msg)
	return classify("send event", err)
}

// EditEvent replaces the text and keyboard of a posted event message.
func (c *Client) EditEvent(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	_, err := c.api.Send(edit)
	return classify("edit event", err)
}

// DeleteMessage removes a message. Telegram answers 400 when the message is
// already gone or too old to delete; that is not treated as a failure.
func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	_, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
		return nil
	}
	return classify("delete message", err)
}

// AnswerCallback acknowledges a button press.
func (c *Client) AnswerCallback(callbackID string) error {
	_, err := c.api.Request(tgbotapi.NewCallback(callbackID, ""))
	return classify("answer callback", err)
}

// DisplayName returns the member's full name as seen in chatID.
func (c *Client) DisplayName(chatID, userID int64) (string, error) {
	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", classify("get chat member", err)
	}
	if member.User == nil {
		return "", models.Wrap(models.KindTelegram, "get chat member", fmt.Errorf("no user in chat member %d", userID))
	}

	return fullName(member.User), nil
}

func fullName(u *tgbotapi.User) string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// classify maps Telegram API errors onto the sentinels the dispatcher checks.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusForbidden:
			err = fmt.Errorf("%w: %s", models.ErrForbidden, apiErr.Message)
		case apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "message is not modified"):
			err = fmt.Errorf("%w: %s", models.ErrNotModified, apiErr.Message)
		}
	}

	return models.Wrap(models.KindTelegram, op, err)
}
