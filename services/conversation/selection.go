package conversation

import (
	"context"
	"fmt"
	"strings"

	"scoutai/models"
	"scoutai/utils"

	"go.uber.org/zap"
)

// handleWaitingForSelection consumes the table-row sentinel. The UI layer
// has already staged the chosen module key and raw date into the draft;
// this step hydrates the display fields from the catalog.
func (s *DefaultConversationService) handleWaitingForSelection(session *models.Session, input string) (string, bool) {
	if !strings.Contains(input, models.EventSelectionConfirm) {
		return "Please select a row from the table and click Confirm.", true
	}

	draft := &session.Draft
	loc, err := s.Catalog.Location(draft.Location)
	if err != nil {
		session.ResetDraft()
		return "Something went wrong with that selection. Where do you want to go?", true
	}
	pkg, err := loc.Package(draft.ModuleKey)
	if err != nil {
		session.ResetDraft()
		return "Something went wrong with that selection. Where do you want to go?", true
	}

	draft.ModuleName = pkg.Name
	draft.Itinerary = pkg.Itinerary
	draft.Policy = loc.PolicySummary
	draft.Food = loc.FoodSummary

	session.State = models.StateVerifySelection
	return fmt.Sprintf("You selected **%s** on **%s**.\n\nIs this correct?", pkg.Name, draft.Date), true
}

// handleVerifySelection re-confirms the chosen row before collecting
// guest details.
func (s *DefaultConversationService) handleVerifySelection(session *models.Session, input string) (string, bool) {
	lower := strings.ToLower(input)
	if strings.Contains(lower, "yes") || strings.Contains(lower, "correct") {
		session.State = models.StateCheckGuests
		return "Great! **How many guests** are joining?", true
	}
	session.ResetDraft()
	return "No problem. Let's start over. Where do you want to go?", true
}

// handleCheckGuests parses the guest count (direct digit scan first,
// extractor fallback second) and gates on availability. Invalid input
// never advances the state.
func (s *DefaultConversationService) handleCheckGuests(ctx context.Context, session *models.Session, input string) (string, bool) {
	draft := &session.Draft

	guests, found := scanInt(input)
	if !found {
		if ex := s.Extractor.Extract(ctx, input, "Guests"); ex.Guests != 0 {
			guests, found = ex.Guests, true
		}
	}
	if !found {
		return "Please enter a number (e.g., 2).", true
	}
	if guests < 1 {
		return "Please enter at least 1 guest.", true
	}

	ok, msg := s.Engine.Check(draft.Location, draft.ModuleKey, draft.Date, guests)
	if !ok {
		return "Error: " + msg, true
	}

	draft.Guests = guests
	session.State = models.StateGetDetails
	return "Perfect! Slots reserved. Now, what is your **Full Name**?", true
}

// handleGetDetails collects name, email, and phone, strictly in that
// order, validating each before acceptance. Once the phone is accepted
// the same turn computes the total and presents the final summary.
func (s *DefaultConversationService) handleGetDetails(session *models.Session, input string) (string, bool) {
	draft := &session.Draft

	if draft.Name == "" {
		if !validName(input) {
			return "Please enter a valid **Full Name**.", true
		}
		draft.Name = titleCase(input)
		return "Thanks! What is your **Email ID**?", true
	}

	if draft.Email == "" {
		trimmed := strings.TrimSpace(input)
		if !validEmail(trimmed) {
			return "That doesn't look like a valid email. Please try again (e.g., name@example.com).", true
		}
		draft.Email = strings.ToLower(trimmed)
		return "And your **Phone Number**?", true
	}

	if draft.Phone == "" {
		digits := normalizePhone(input)
		if len(digits) != 10 {
			return fmt.Sprintf("Invalid number. Please enter exactly **10 digits** (You entered %d).", len(digits)), true
		}
		draft.Phone = digits
	}

	// All details collected: price out the trip and ask for confirmation.
	loc, err := s.Catalog.Location(draft.Location)
	if err != nil {
		session.ResetDraft()
		return "Something went wrong with your selection. Where do you want to go?", true
	}
	pkg, err := loc.Package(draft.ModuleKey)
	if err != nil {
		session.ResetDraft()
		return "Something went wrong with your selection. Where do you want to go?", true
	}

	draft.TotalCost = pkg.Price * float64(draft.Guests) * float64(draft.Nights)
	session.State = models.StateConfirm
	return fmt.Sprintf(
		"**Please Confirm Final Details:**\n%s | %s\n%s\n%d Guests | **Total: INR %.0f**\n\n%s | %s\n%s\n\nType **YES** to generate ticket.",
		titleCase(draft.Location), draft.Date, draft.ModuleName,
		draft.Guests, draft.TotalCost,
		draft.Name, draft.Phone, draft.Email,
	), true
}

// handleConfirm commits the booking. Order is a correctness requirement:
// the ledger record is created first so the confirmation email can carry
// the real id, and if the email then fails the record is deleted again
// (compensating rollback) so the ledger and the notification never
// disagree about the booking's existence.
func (s *DefaultConversationService) handleConfirm(ctx context.Context, session *models.Session, input string) (string, bool) {
	draft := &session.Draft

	if !affirmative(input) {
		session.ResetDraft()
		return "Booking Cancelled.", true
	}

	bookingID, err := s.Ledger.CreateBooking(ctx,
		draft.Name, draft.Email, draft.Phone,
		draft.Location, draft.ModuleName,
		draft.Date, draft.Nights, draft.Guests, draft.TotalCost,
	)
	if err != nil {
		session.ResetDraft()
		return "Database Error. Please try again.", true
	}

	if !s.Notifier.SendConfirmationEmail(draft.Email, draft.Name, bookingID, *draft) {
		// Compensating rollback: without the email the user holds no
		// proof of booking, so the record must not survive.
		if delErr := s.Ledger.DeleteBooking(ctx, bookingID); delErr != nil {
			utils.GetLogger().Error("failed to roll back booking after email failure",
				zap.Int64("bookingID", bookingID), zap.Error(delErr))
		}
		session.ResetDraft()
		return "Failed. Email could not be sent. Booking cancelled.", true
	}

	if s.Reminders != nil {
		if remErr := s.Reminders.ScheduleReminder(bookingID, draft.Date); remErr != nil {
			utils.GetLogger().Warn("failed to schedule trip reminder",
				zap.Int64("bookingID", bookingID), zap.Error(remErr))
		}
	}

	session.ResetDraft()
	return fmt.Sprintf("**Success!** Booking ID: #%d. Check your email!", bookingID), true
}
