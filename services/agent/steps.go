package agent

import (
	"context"
	"time"

	"meetbook/models"
	"meetbook/services/contact"
	"meetbook/services/extract"
	"meetbook/services/slots"
	"meetbook/utils"

	"go.uber.org/zap"
)

// stepAwaitRequirements collects a usable date preference (time and purpose are
// picked up opportunistically) and fetches availability for it. The step only
// advances once a slot list has been stored on the session.
func (s *DefaultAgentService) stepAwaitRequirements(ctx context.Context, t *turn, input string) bool {
	sess := t.sess

	if input == "" {
		t.say(msgWelcome)
		return true
	}
	if isGreeting(input) {
		t.say(msgWelcome)
		return true
	}

	res, err := s.Extractor.ExtractRequirements(ctx, input, sess.History)
	if err != nil {
		utils.GetLogger().Warn("Requirement extraction degraded",
			zap.String("sessionId", sess.SessionID), zap.Error(err))
	}
	if res.Fields.TimePhrase != "" {
		sess.TimePreference = res.Fields.TimePhrase
	}
	if res.Fields.Purpose != "" {
		sess.Purpose = res.Fields.Purpose
	}

	if res.Fields.DatePhrase != "" {
		parsed, err := extract.ParseDatePhrase(res.Fields.DatePhrase, time.Now())
		if err != nil {
			t.say(msgUnparseableDate(res.Fields.DatePhrase))
			return true
		}
		normalized := extract.NormalizeDate(parsed)
		if normalized != sess.DateNormalized {
			sess.DatePreference = res.Fields.DatePhrase
			sess.DateNormalized = normalized
			sess.AvailableSlots = nil
			sess.SelectedSlot = nil
		}
	}

	if sess.DateNormalized == "" {
		if sess.TimePreference != "" {
			t.say(msgAskDate)
		} else {
			t.say(msgAskDateTime)
		}
		return true
	}

	t.status("Checking availability for " + extract.LongDate(sess.DateNormalized))
	available, err := s.Catalog.Available(ctx, sess.DateNormalized)
	if err != nil {
		// Date preference is kept so the user can simply retry.
		utils.GetLogger().Error("Availability lookup failed",
			zap.String("sessionId", sess.SessionID),
			zap.String("date", sess.DateNormalized), zap.Error(err))
		t.say(msgCatalogDown)
		return true
	}

	sess.AvailableSlots = available
	sess.NextStep = models.StepSlotsFetched
	return false
}

// stepSlotsFetched is an auto-transition step: it presents the fetched slots
// (or the no-slots message) and decides whether a stated time preference
// already pins one of them down.
func (s *DefaultAgentService) stepSlotsFetched(ctx context.Context, t *turn) bool {
	sess := t.sess

	if len(sess.AvailableSlots) == 0 {
		// Keep the time preference; only the date needs re-asking.
		sess.DatePreference = ""
		sess.DateNormalized = ""
		sess.AvailableSlots = nil
		sess.NextStep = models.StepAwaitRequirements
		t.say(msgNoSlots)
		return true
	}

	if sess.TimePreference != "" {
		if r := slots.MatchByTime(sess.TimePreference, sess.AvailableSlots); r.Outcome == slots.MatchSelected {
			sess.SelectedSlot = r.Slot
			sess.NextStep = models.StepAwaitContactInfo
			t.say(msgSlotFound(r.Slot.Label))
			return false
		}
	}

	sess.NextStep = models.StepAwaitSlotSelection
	t.say(msgSlotList(sess.AvailableSlots, slots.Enumerate(sess.AvailableSlots)))
	return true
}

// stepAwaitSlotSelection reconciles the user's reply against the stored slot
// list. Nothing here ever fabricates a slot; an unrecognized reply re-presents
// the list.
func (s *DefaultAgentService) stepAwaitSlotSelection(t *turn, input string) bool {
	sess := t.sess

	if input == "" {
		t.say(msgSlotList(sess.AvailableSlots, slots.Enumerate(sess.AvailableSlots)))
		return true
	}

	r := slots.Match(input, sess.AvailableSlots)
	switch r.Outcome {
	case slots.MatchSelected:
		sess.SelectedSlot = r.Slot
		sess.NextStep = models.StepAwaitContactInfo
		t.say(msgSlotSelected(r.Slot.Label))
		return false
	case slots.MatchInvalidIndex:
		t.say(r.Message)
		return true
	default:
		t.say(msgBadSelection + "\n\n" + slots.Enumerate(sess.AvailableSlots))
		return true
	}
}

// stepAwaitContactInfo accumulates name, email and phone across as many turns
// as the user needs. Fields that already validated are never overwritten by a
// later extraction; invalid values are cleared so they can be re-supplied.
func (s *DefaultAgentService) stepAwaitContactInfo(ctx context.Context, t *turn, input string) bool {
	sess := t.sess

	if input == "" {
		label := ""
		if sess.SelectedSlot != nil {
			label = sess.SelectedSlot.Label
		}
		t.say(msgAskContact(label))
		return true
	}

	res, err := s.Extractor.ExtractContact(ctx, input, sess.Contact, sess.History)
	if err != nil {
		utils.GetLogger().Warn("Contact extraction degraded",
			zap.String("sessionId", sess.SessionID), zap.Error(err))
	}
	if sess.Contact.Name == "" && res.Fields.Name != "" {
		sess.Contact.Name = res.Fields.Name
	}
	if sess.Contact.Email == "" && res.Fields.Email != "" {
		sess.Contact.Email = res.Fields.Email
	}
	if sess.Contact.Phone == "" && res.Fields.Phone != "" {
		sess.Contact.Phone = res.Fields.Phone
	}

	errs := contact.Validate(sess.Contact)
	if len(errs) > 0 {
		// Invalid (non-missing) values are dropped so the next message can
		// replace them; missing ones were empty already.
		for _, fe := range errs {
			switch fe.Field {
			case "name":
				sess.Contact.Name = ""
			case "email":
				sess.Contact.Email = ""
			case "phone":
				sess.Contact.Phone = ""
			}
		}
		t.say(msgContactIssues(errs))
		return true
	}

	sess.NextStep = models.StepAwaitConfirmation
	return false
}

// stepAwaitConfirmation shows the booking summary on entry and then reads the
// user's yes/no. Affirmative commits through the executor; negative resets the
// whole booking; anything else re-asks.
func (s *DefaultAgentService) stepAwaitConfirmation(ctx context.Context, t *turn, input string) bool {
	sess := t.sess

	if input == "" {
		t.say(msgConfirmSummary(sess))
		return true
	}

	switch s.Extractor.Confirmation(ctx, input) {
	case extract.IntentAffirmative:
		if sess.SelectedSlot == nil {
			sess.ResetBooking()
			t.say(msgWelcome)
			return true
		}
		t.status("Booking your meeting...")
		result := s.Executor.Book(ctx, models.BookingRequest{
			Date:    sess.DateNormalized,
			Slot:    *sess.SelectedSlot,
			Contact: sess.Contact,
			Notes:   sess.Purpose,
		})
		if result.Success {
			sess.BookingConfirmed = true
			sess.NextStep = models.StepBooked
			utils.GetLogger().Info("Booking committed",
				zap.String("sessionId", sess.SessionID),
				zap.String("backend", result.Backend),
				zap.String("bookingId", result.BookingID))
			t.say(msgBooked)
			return true
		}
		// Stay on confirmation so the user can retry with another "yes".
		t.say(msgBookingFailed(result.Error))
		return true

	case extract.IntentNegative:
		sess.ResetBooking()
		t.say(msgDeclined)
		return true

	default:
		t.say(msgYesOrNo)
		return true
	}
}

// stepBooked is terminal for the booking flow.
func (s *DefaultAgentService) stepBooked(t *turn) bool {
	t.say(msgAlreadyBooked)
	return true
}
