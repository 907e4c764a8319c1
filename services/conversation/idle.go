package conversation

import (
	"context"
	"fmt"

	"scoutai/models"
)

// handleIdle classifies a fresh input. Update and cancel both route
// through invoice verification; booking intent tries to resolve a
// location and package from the input, falling back to the transcript,
// and offers an availability table. Anything else is left for the
// knowledge answerer.
func (s *DefaultConversationService) handleIdle(ctx context.Context, session *models.Session, input string) (string, bool) {
	switch classifyIntent(input) {
	case intentUpdate:
		session.Draft.Intent = models.IntentUpdate
		session.State = models.StateWaitingForInvoice
		return "To update your booking, I first need to verify it.\n\nPlease upload your booking PDF (invoice).", true

	case intentCancel:
		session.Draft.Intent = models.IntentCancel
		session.State = models.StateWaitingForInvoice
		return "To cancel, I need to verify your booking.\n\nPlease upload your booking PDF.", true

	case intentBook:
		return s.startBooking(ctx, session, input)

	default:
		return "", false
	}
}

// startBooking resolves location and package hints and either presents an
// availability table or asks for a date.
func (s *DefaultConversationService) startBooking(ctx context.Context, session *models.Session, input string) (string, bool) {
	draft := &session.Draft

	// Direct extraction from the current turn wins over history.
	serviceHint := ""
	explicit := s.Extractor.Extract(ctx, input, "Booking Intent")
	if explicit.Location != "" {
		draft.Location = explicit.Location
		serviceHint = explicit.ServiceType
		if explicit.Date != "" {
			draft.Date = explicit.Date
		}
		if explicit.Guests >= 1 {
			draft.Guests = explicit.Guests
		}
	}

	// The current turn is not yet in the transcript; check it before
	// falling back to history.
	if draft.Location == "" {
		if key := s.Catalog.MatchLocation(input); key != "" {
			draft.Location = key
		}
	}
	if draft.Location == "" {
		if found := s.Catalog.ScanHistory(session.Transcript); found.Location != "" {
			draft.Location = found.Location
			serviceHint = found.ServiceType
		}
	}

	locKey := s.Catalog.MatchLocation(draft.Location)
	if locKey == "" {
		// No usable location signal. Let the knowledge answerer respond.
		return "", false
	}
	draft.Location = locKey

	// Package hint: combine the current input with any service type the
	// extractor or history scan produced.
	moduleKey := s.Catalog.MatchPackage(locKey, input+" "+serviceHint)
	if moduleKey != "" {
		draft.ModuleKey = moduleKey
	}

	rows, err := s.Engine.Rows(locKey, moduleKey)
	if err == nil && len(rows) > 0 {
		session.SelectionRows = rows
		session.State = models.StateWaitingForSelection

		if moduleKey != "" {
			loc, _ := s.Catalog.Location(locKey)
			pkg, _ := loc.Package(moduleKey)
			return fmt.Sprintf("Here are the available slots for **%s** in %s:\n\n**Click a row to confirm:**", pkg.Name, titleCase(locKey)), true
		}
		return fmt.Sprintf("I found several options for **%s**.\n\n**Please select a package from the table:**", titleCase(locKey)), true
	}

	session.State = models.StateCheckDate
	return fmt.Sprintf("When do you want to visit %s?", titleCase(locKey)), true
}
