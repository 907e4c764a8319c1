package conversation

import (
	"context"
	"fmt"
	"strings"

	"scoutai/models"
	"scoutai/services/notification"
)

// handleAskUpdateDetails is the accumulation loop of the update flow.
// Changes are staged into NewDate/NewGuests until the user says done;
// nothing touches the ledger here.
func (s *DefaultConversationService) handleAskUpdateDetails(ctx context.Context, session *models.Session, input string) (string, bool) {
	draft := &session.Draft
	vb := draft.VerifiedBooking
	if vb == nil {
		session.ResetDraft()
		return "Something went wrong with verification. Please try again.", true
	}

	lower := strings.ToLower(input)
	if containsAny(lower, doneKeywords) {
		session.State = models.StateConfirmUpdate
		newDate := draft.NewDate
		if newDate == "" {
			newDate = vb.BookingDate
		}
		newGuests := draft.NewGuests
		if newGuests == 0 {
			newGuests = vb.GuestCount
		}
		return fmt.Sprintf(
			"**Final Confirmation:**\n\nUpdating Booking **#%d**\nDate: %s -> **%s**\nGuests: %d -> **%d**\n\nType **'CONFIRM'** to update.",
			vb.ID, vb.BookingDate, newDate, vb.GuestCount, newGuests,
		), true
	}

	extracted := s.Extractor.Extract(ctx, input, "Update Request")
	updatesFound := false
	if extracted.Date != "" {
		draft.NewDate = extracted.Date
		updatesFound = true
	}
	// A bare number with no date in the text is a guest-count change.
	if n, ok := scanInt(input); ok && extracted.Date == "" {
		draft.NewGuests = n
		updatesFound = true
	} else if extracted.Guests > 0 {
		draft.NewGuests = extracted.Guests
		updatesFound = true
	}

	if !updatesFound && containsAny(lower, dateAskKeywords) {
		locKey := strings.TrimSpace(strings.SplitN(vb.ServiceType, "|", 2)[0])
		rows, err := s.Engine.Rows(locKey, "")
		if err == nil && len(rows) > 0 {
			session.SelectionRows = rows
			session.State = models.StateWaitingForUpdateSelection
			return "Sure! Here are the available dates. \n\n**Please select a new date from the table:**", true
		}
	}

	if updatesFound {
		currDate := draft.NewDate
		if currDate == "" {
			currDate = "Unchanged"
		}
		currGuests := "Unchanged"
		if draft.NewGuests > 0 {
			currGuests = fmt.Sprintf("%d", draft.NewGuests)
		}
		return fmt.Sprintf("Got it. New Draft: **%s** with **%s guests**. \n\nAny other changes, or type 'Done'?", currDate, currGuests), true
	}

	return "I didn't catch a change. Please say 'Change guests to 5' or ask 'Show available dates'.", true
}

// handleWaitingForUpdateSelection consumes the update-row sentinel. The
// UI layer has already staged the picked date into NewDate.
func (s *DefaultConversationService) handleWaitingForUpdateSelection(session *models.Session, input string) (string, bool) {
	if !strings.Contains(input, models.EventUpdateSelected) {
		return "Please click a row in the table to select your new date.", true
	}
	session.State = models.StateAskUpdateDetails
	return fmt.Sprintf("Selected new date: **%s**. \n\nAny other changes? (Type 'Done' to finish).", session.Draft.NewDate), true
}

// handleConfirmUpdate commits the staged values. The update notice is
// best-effort after the write: a failed email does not undo the change.
func (s *DefaultConversationService) handleConfirmUpdate(ctx context.Context, session *models.Session, input string) (string, bool) {
	draft := &session.Draft
	vb := draft.VerifiedBooking
	if vb == nil {
		session.ResetDraft()
		return "Something went wrong with verification. Please try again.", true
	}

	lower := strings.ToLower(input)
	if !strings.Contains(lower, "confirm") && !strings.Contains(lower, "yes") {
		session.ResetDraft()
		return "Update Cancelled. Keeping original details.", true
	}

	finalDate := draft.NewDate
	if finalDate == "" {
		finalDate = vb.BookingDate
	}
	finalGuests := draft.NewGuests
	if finalGuests == 0 {
		finalGuests = vb.GuestCount
	}

	if err := s.Ledger.UpdateBooking(ctx, vb.ID, finalDate, finalGuests, 0); err != nil {
		return "Database Error. Update failed.", true
	}

	s.Notifier.SendUpdateEmail(vb.Email, vb.Name, vb.ID,
		notification.ChangeSummary{Date: vb.BookingDate, Guests: vb.GuestCount},
		notification.ChangeSummary{Date: finalDate, Guests: finalGuests},
	)

	bookingID := vb.ID
	session.ResetDraft()
	return fmt.Sprintf("**Update Complete!** Booking #%d is now set for %s with %d guests. Email sent.", bookingID, finalDate, finalGuests), true
}
