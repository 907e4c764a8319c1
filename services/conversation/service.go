package conversation

import (
	"context"

	"scoutai/models"
	"scoutai/utils"

	"go.uber.org/zap"
)

// Process dispatches one input against the session's current state. It
// always leaves the session in a defined state; collaborator failures
// resolve to user-facing messages, never to errors.
func (s *DefaultConversationService) Process(ctx context.Context, session *models.Session, input string) (string, bool) {
	logger := utils.GetLogger()
	logger.Debug("conversation turn",
		zap.String("sessionID", session.SessionID),
		zap.String("state", string(session.State)),
	)

	switch session.State {
	case models.StateIdle:
		return s.handleIdle(ctx, session, input)
	case models.StateWaitingForInvoice:
		return s.handleWaitingForInvoice(session, input)
	case models.StateConfirmCancel:
		return s.handleConfirmCancel(ctx, session, input)
	case models.StateWaitingForSelection:
		return s.handleWaitingForSelection(session, input)
	case models.StateVerifySelection:
		return s.handleVerifySelection(session, input)
	case models.StateCheckGuests:
		return s.handleCheckGuests(ctx, session, input)
	case models.StateGetDetails:
		return s.handleGetDetails(session, input)
	case models.StateConfirm:
		return s.handleConfirm(ctx, session, input)
	case models.StateAskUpdateDetails:
		return s.handleAskUpdateDetails(ctx, session, input)
	case models.StateWaitingForUpdateSelection:
		return s.handleWaitingForUpdateSelection(session, input)
	case models.StateConfirmUpdate:
		return s.handleConfirmUpdate(ctx, session, input)
	default:
		// CHECK_DATE has no transitions of its own: anything typed there
		// falls through to the knowledge answerer, same as unclaimed
		// input in IDLE.
		return "", false
	}
}
