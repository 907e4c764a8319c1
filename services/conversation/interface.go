// Package conversation implements the booking dialogue state machine: a
// deterministic controller that interprets one input per turn against the
// session's current step, mutates the booking draft, calls collaborators
// in a fixed order, and produces the next user-facing message.
package conversation

import (
	"context"

	ledgerRepo "scoutai/database/repository/ledger"
	"scoutai/models"
	"scoutai/services/availability"
	"scoutai/services/catalog"
	"scoutai/services/extractor"
	"scoutai/services/notification"
)

// ReminderScheduler enqueues post-commit trip reminders. Scheduling is
// best-effort and never participates in the booking's ordering rules.
type ReminderScheduler interface {
	ScheduleReminder(bookingID int64, startDate string) error
}

// ConversationService is the dialogue controller.
type ConversationService interface {
	// Process runs exactly one transition for the session. The returned
	// bool reports whether the input was claimed by the booking flow;
	// unclaimed input falls through to the knowledge answerer.
	Process(ctx context.Context, session *models.Session, input string) (string, bool)
}

// DefaultConversationService is the production implementation.
type DefaultConversationService struct {
	Catalog   *catalog.Store
	Engine    *availability.Engine
	Extractor extractor.Extractor
	Ledger    ledgerRepo.LedgerRepository
	Notifier  notification.NotificationService
	Reminders ReminderScheduler // optional
}
