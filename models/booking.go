package models

import "time"

// Booking status values as stored in the ledger.
const (
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Booking represents a confirmed booking record in the ledger.
type Booking struct {
	ID          int64     `bson:"id" json:"id"`                     // Sequential booking identifier (printed as #id on invoices)
	CustomerID  string    `bson:"customer_id" json:"customer_id"`   // Owning customer
	ServiceType string    `bson:"service_type" json:"service_type"` // "location | module" composite, kept for invoice compatibility
	Location    string    `bson:"location" json:"location"`         // Catalog location key
	ModuleName  string    `bson:"module_name" json:"module_name"`   // Display name of the booked package
	BookingDate string    `bson:"booking_date" json:"booking_date"` // "YYYY-MM-DD to YYYY-MM-DD" range string
	GuestCount  int       `bson:"guest_count" json:"guest_count"`
	TotalCost   float64   `bson:"total_cost" json:"total_cost"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Customer is the persisted contact record a booking belongs to.
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// VerifiedBooking joins a booking with its customer's contact fields.
// It is the snapshot the conversation keeps after invoice verification
// and the shape the admin views render.
type VerifiedBooking struct {
	Booking `bson:",inline"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
}
