package models

import (
	"fmt"
	"strings"

	"github.com/awhatson15/rsvp-bot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CallbackData builds the token carried by an event's inline buttons.
func CallbackData(action string, eventID int64) string {
	return fmt.Sprintf("%s_%d", action, eventID)
}

// Callback actions.
const (
	ActionAccepted = "accepted"
	ActionDeclined = "declined"
	ActionDeleted  = "deleted"
)

// FormatMessage renders the event as a MarkdownV2 message body.
func (e *Event) FormatMessage() string {
	var b strings.Builder

	fmt.Fprintf(&b, "*__%s__*\n%s\n\n⏰ %s\n📍 %s\n",
		utils.EscapeMarkdownV2(e.Title),
		utils.EscapeMarkdownV2(e.Description),
		utils.EscapeMarkdownV2(utils.FormatDisplayDate(e.EventDate)),
		utils.EscapeMarkdownV2(e.Location),
	)

	writeList(&b, "✅ Accepted", e.Accepted())
	writeList(&b, "❌ Declined", e.Declined())

	return b.String()
}

func writeList(b *strings.Builder, header string, attendees []Attendee) {
	if len(attendees) == 0 {
		return
	}
	b.WriteString("\n" + header + "\n")
	for _, a := range attendees {
		fmt.Fprintf(b, "• %s\n", utils.EscapeMarkdownV2(a.Name))
	}
}

// Keyboard builds the RSVP buttons. The delete button is only added in a
// private chat and only for the event's creator.
func (e *Event) Keyboard(viewerID int64, public bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Accept", CallbackData(ActionAccepted, e.ID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Decline", CallbackData(ActionDeclined, e.ID)),
		),
	}

	if !public && e.Creator == viewerID {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", CallbackData(ActionDeleted, e.ID)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
