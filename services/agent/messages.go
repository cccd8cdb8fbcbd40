package agent

import (
	"fmt"
	"strings"

	"meetbook/models"
	"meetbook/services/contact"
	"meetbook/services/extract"
)

// WelcomeMessage opens every new conversation.
const WelcomeMessage = "Hello! I can help you book a meeting. What date and time would work best for you?"

const (
	msgWelcome          = WelcomeMessage
	msgAskDate          = "What date would you like to schedule the meeting?"
	msgAskDateTime      = "What date and time would work best for you?"
	msgCatalogDown      = "I couldn't reach the scheduling service just now. Please try again in a moment."
	msgNoSlots          = "No available slots found for your preferred date. Would you like to try a different date?"
	msgBadSelection     = "I couldn't understand your selection. Please choose a slot number (e.g., \"1\", \"2\") or try again."
	msgBooked           = "Your meeting has been successfully booked! You'll receive a confirmation email shortly."
	msgDeclined         = "No problem, I've cancelled this request. What date would work for you instead?"
	msgYesOrNo          = "Please answer yes or no: should I proceed with the booking?"
	msgAlreadyBooked    = "You already have a confirmed booking in this conversation. Reset the session to book another meeting."
	msgContactIssuesTop = "I found some issues with the information provided:"
)

// Fixed greeting vocabulary; checked before extraction so "hi" is never
// mis-parsed as a date.
var greetingPhrases = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
	"greetings", "hola", "salam",
}

// isGreeting reports whether the message is a greeting and nothing else.
func isGreeting(text string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = strings.Trim(cleaned, "!.?, ")
	for _, g := range greetingPhrases {
		if cleaned == g {
			return true
		}
	}
	return false
}

func msgUnparseableDate(phrase string) string {
	return fmt.Sprintf("I couldn't understand the date %q. You can say something like \"tomorrow\", \"next Tuesday\" or \"13 Oct\".", phrase)
}

func msgSlotFound(label string) string {
	return fmt.Sprintf("Great! I found a slot at %s on your preferred date.", label)
}

func msgSlotList(available []models.Slot, enumerated string) string {
	return fmt.Sprintf("Great! I found %d available slot(s) for your preferred date:\n\n%s\n\nPlease choose a slot by number (e.g., \"1\").", len(available), enumerated)
}

func msgSlotSelected(label string) string {
	return fmt.Sprintf("Perfect! You've selected the %s slot.", label)
}

func msgAskContact(slotLabel string) string {
	return fmt.Sprintf("You're booking the %s slot. To complete the booking, I need your name, email, and phone number.", slotLabel)
}

func msgContactIssues(errs []contact.FieldError) string {
	var sb strings.Builder
	sb.WriteString(msgContactIssuesTop)
	for _, reason := range contact.Reasons(errs) {
		sb.WriteString("\n- ")
		sb.WriteString(reason)
	}
	sb.WriteString("\n\nPlease provide the correct information.")
	return sb.String()
}

func msgConfirmSummary(sess *models.Session) string {
	slotLabel := ""
	if sess.SelectedSlot != nil {
		slotLabel = sess.SelectedSlot.Label
	}
	return fmt.Sprintf(
		"Let me confirm the details:\n- Date: %s\n- Time: %s\n- Name: %s\n- Email: %s\n- Phone: %s\n\nShould I proceed with the booking?",
		extract.LongDate(sess.DateNormalized), slotLabel,
		sess.Contact.Name, sess.Contact.Email, sess.Contact.Phone)
}

func msgBookingFailed(reason string) string {
	return fmt.Sprintf("There was an issue booking the meeting: %s. Please try again.", reason)
}
