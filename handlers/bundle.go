package handlers

import (
	ledgerRepo "scoutai/database/repository/ledger"
	"scoutai/services/admin"
	"scoutai/services/conversation"
	"scoutai/services/knowledge"
	"scoutai/services/verification"
)

// HandlerBundle groups all endpoint handlers with their collaborators.
type HandlerBundle struct {
	Sessions     conversation.SessionStore
	Conversation conversation.ConversationService
	Knowledge    *knowledge.Answerer
	Verifier     verification.Verifier
	Ledger       ledgerRepo.LedgerRepository
	AdminService admin.AdminService
}
