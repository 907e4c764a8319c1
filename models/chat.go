package models

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"` // empty starts a new session
	Text      string `json:"text"`       // user's typed message
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	SessionID string            `json:"session_id"`
	Reply     string            `json:"reply"`
	State     ConversationState `json:"state"`
	Rows      []AvailabilityRow `json:"rows,omitempty"` // present when a table selection is expected
}

// SelectionRequest confirms a row from the availability table.
type SelectionRequest struct {
	SessionID string `json:"session_id"`
	RowIndex  int    `json:"row_index"`
}

// ExtractedDetails is the best-effort structured output of the entity
// extractor. A zero value signals total extraction failure; nothing in it
// is trusted without validation.
type ExtractedDetails struct {
	Location    string `json:"location"`
	Date        string `json:"date"` // "YYYY-MM-DD"
	Guests      int    `json:"guests"`
	ServiceType string `json:"service_type"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// ReminderPayload is the asynq task body for trip reminder emails.
type ReminderPayload struct {
	BookingID int64  `json:"booking_id"`
	FireDate  string `json:"fire_date"`
}
