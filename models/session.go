package models

// ConversationState is the step tag of the booking dialogue. Exactly one
// value is active per session; the state machine owns all transitions.
type ConversationState string

const (
	StateIdle                      ConversationState = "IDLE"
	StateWaitingForInvoice         ConversationState = "WAITING_FOR_INVOICE"
	StateConfirmCancel             ConversationState = "CONFIRM_CANCEL"
	StateWaitingForSelection       ConversationState = "WAITING_FOR_SELECTION"
	StateVerifySelection           ConversationState = "VERIFY_SELECTION"
	StateCheckDate                 ConversationState = "CHECK_DATE"
	StateCheckGuests               ConversationState = "CHECK_GUESTS"
	StateGetDetails                ConversationState = "GET_DETAILS"
	StateConfirm                   ConversationState = "CONFIRM"
	StateAskUpdateDetails          ConversationState = "ASK_UPDATE_DETAILS"
	StateWaitingForUpdateSelection ConversationState = "WAITING_FOR_UPDATE_SELECTION"
	StateConfirmUpdate             ConversationState = "CONFIRM_UPDATE"
)

// Sentinel events fed into the state machine by the UI layer instead of
// user-typed text, signalling completion of an out-of-band action.
const (
	EventInvoiceVerified  = "INVOICE_VERIFIED"
	EventSelectionConfirm = "CONFIRMED_SELECTION"
	EventUpdateSelected   = "UPDATE_SELECTED"
)

// Transcript message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds everything the conversation owns for one chat: the step
// tag, the booking draft, the ordered transcript, and the availability
// rows last offered for table selection. It is stored as a single value
// and never shared across sessions.
type Session struct {
	SessionID     string            `json:"session_id"`
	State         ConversationState `json:"state"`
	Draft         BookingDraft      `json:"draft"`
	Transcript    []Message         `json:"transcript,omitempty"`
	SelectionRows []AvailabilityRow `json:"selection_rows,omitempty"`
}

// NewSession returns an idle session with a zeroed draft.
func NewSession(sessionID string) *Session {
	return &Session{
		SessionID: sessionID,
		State:     StateIdle,
		Draft:     NewBookingDraft(),
	}
}

// ResetDraft clears the draft and returns the session to IDLE.
func (s *Session) ResetDraft() {
	s.State = StateIdle
	s.Draft = NewBookingDraft()
	s.SelectionRows = nil
}

// Append records one transcript turn.
func (s *Session) Append(role, content string) {
	s.Transcript = append(s.Transcript, Message{Role: role, Content: content})
}
