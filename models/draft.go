package models

// Draft intents staged while waiting for invoice verification.
const (
	IntentUpdate = "update"
	IntentCancel = "cancel"
)

// BookingDraft is the in-progress, not-yet-committed booking data for one
// chat session. The zero value of every field means "not collected yet":
// valid guest counts are >= 1 and valid strings are non-empty, so no field
// needs a separate presence flag.
type BookingDraft struct {
	Location   string  `json:"location,omitempty"`
	ModuleKey  string  `json:"module_key,omitempty"`
	ModuleName string  `json:"module_name,omitempty"`
	Date       string  `json:"date,omitempty"`
	Nights     int     `json:"nights"`
	Guests     int     `json:"guests,omitempty"`
	TotalCost  float64 `json:"total_cost,omitempty"`
	Itinerary  string  `json:"itinerary,omitempty"`
	Policy     string  `json:"policy,omitempty"`
	Food       string  `json:"food,omitempty"`
	Name       string  `json:"name,omitempty"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`

	// Transient fields for the update/cancel flows.
	Intent          string           `json:"intent,omitempty"`
	VerifiedBooking *VerifiedBooking `json:"verified_booking,omitempty"`
	NewDate         string           `json:"new_date,omitempty"`
	NewGuests       int              `json:"new_guests,omitempty"`
}

// NewBookingDraft returns a zeroed draft with the default one-night stay.
func NewBookingDraft() BookingDraft {
	return BookingDraft{Nights: 1}
}
