package handlers

import "fmt"

const (
	msgCreateInGroup = "Please initiate event creation in a group chat. " +
		"Ask the group admin to invite me to the group chat."

	promptTitle       = "Please enter the Title of the event. To exit, type /cancel."
	promptDescription = "Please enter an Event description."
	promptLocation    = "Please enter the Location of the event."
	promptTime        = "Please enter the Date and Time of the event in the following format " +
		"YYYY-MM-DD HH:MM (e.g., 2025-08-15 19:00)"

	msgInvalidTime = "Sorry, that doesn't look like a valid date/time. " +
		"Please use the format YYYY-MM-DD HH:MM (e.g., 2025-08-15 19:00)."
	msgCreateFailed = "Sorry, the event could not be saved. " +
		"Please send the date and time again, or type /cancel."
	msgCreated   = "The Event has been created and posted to the group!"
	msgCancelled = "Event creation cancelled."
	msgDeleted   = "Event has been deleted."
	msgNoEvents  = "No events scheduled."
	msgNoMine    = "You have not created any events."

	helpText = `Available commands:
    /create - Start creating a new event
    /cancel - Cancel event creation in progress
    /list - Show all events in this chat
    /myevents - Show me all the events I've created
    /help - Show this help message

To create an event:
    1. Use /create in a group chat
    2. Bot will message you privately
    3. Follow the prompts to create the event
    4. Event will be posted in the group chat where you started`
)

// startPrivateChatHelp explains how to unblock private messages from the bot.
func startPrivateChatHelp(botUsername string) string {
	return fmt.Sprintf("To create an event, you need to start a private chat with me first.\n\n"+
		"1. Click here: @%s\n"+
		"2. Click 'Start' or send any message\n"+
		"3. Come back to this group and try /create again", botUsername)
}
