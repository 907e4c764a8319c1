package conversation

import (
	"context"
	"fmt"
	"strings"

	"scoutai/models"
)

// handleWaitingForInvoice waits for the verified-document sentinel. The
// upload handler has already run verification and stashed the matched
// record in the draft; this step only branches on the staged intent.
func (s *DefaultConversationService) handleWaitingForInvoice(session *models.Session, input string) (string, bool) {
	if !strings.Contains(input, models.EventInvoiceVerified) {
		return "Please upload the PDF in the sidebar to continue.", true
	}

	vb := session.Draft.VerifiedBooking
	if vb == nil {
		session.ResetDraft()
		return "Something went wrong with verification. Please try again.", true
	}

	msg := fmt.Sprintf(
		"**Verification Successful!**\n\nFound Booking #%d\nName: %s\nDate: %s\nType: %s\n\n",
		vb.ID, vb.Name, vb.BookingDate, vb.ServiceType,
	)

	if session.Draft.Intent == models.IntentUpdate {
		session.State = models.StateAskUpdateDetails
		return msg + "What would you like to change? (e.g., 'Change date to 2025-12-25' or 'Change guests to 4')", true
	}

	session.State = models.StateConfirmCancel
	return msg + "Based on our policy, you are eligible for cancellation.\n**Are you sure you want to cancel this trip? (Yes/No)**", true
}

// handleConfirmCancel executes the cancellation. The notice is sent
// before the ledger mutation: if the email cannot go out, the record
// stays and the user can retry, so the ledger and the customer's inbox
// never disagree about whether the booking exists.
func (s *DefaultConversationService) handleConfirmCancel(ctx context.Context, session *models.Session, input string) (string, bool) {
	vb := session.Draft.VerifiedBooking
	if vb == nil {
		session.ResetDraft()
		return "Something went wrong with verification. Please try again.", true
	}

	switch {
	case affirmative(input):
		if !s.Notifier.SendCancellationEmail(vb.Email, vb.Name, vb.ID) {
			return "Error. Could not send cancellation email. Database NOT updated. Please try again.", true
		}
		if err := s.Ledger.DeleteBooking(ctx, vb.ID); err != nil {
			return "Error. Could not remove the booking. Please try again.", true
		}
		bookingID := vb.ID
		session.ResetDraft()
		return fmt.Sprintf("**Cancelled.** Booking #%d has been removed. A confirmation email has been sent.", bookingID), true
	case negative(input):
		session.ResetDraft()
		return "Cancellation aborted. Your booking remains active.", true
	default:
		return "Type **YES** to confirm cancellation.", true
	}
}
