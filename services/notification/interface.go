// Package notification sends templated booking emails. Senders report a
// plain success boolean: the conversation core treats a false return as
// the failure branch of its ordering rules and nothing here may panic or
// block indefinitely.
package notification

import "scoutai/models"

// ChangeSummary carries one side of an old-vs-new update comparison.
type ChangeSummary struct {
	Date   string
	Guests int
}

// NotificationService defines the outbound booking notices.
type NotificationService interface {
	SendConfirmationEmail(toEmail, name string, bookingID int64, draft models.BookingDraft) bool
	SendCancellationEmail(toEmail, name string, bookingID int64) bool
	SendUpdateEmail(toEmail, name string, bookingID int64, oldDetails, newDetails ChangeSummary) bool
	SendReminderEmail(toEmail, name string, booking models.Booking) bool
}
