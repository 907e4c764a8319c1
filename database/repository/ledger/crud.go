package ledgerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scoutai/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nextBookingID atomically increments the booking counter. Invoices print
// ids as "#N", so they must stay small sequential integers.
func (r *mongoLedgerRepo) nextBookingID(ctx context.Context) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"id": "bookings"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate booking id: %w", err)
	}
	return doc.Seq, nil
}

// endDate computes the checkout date from the start date and nights stayed.
// An unparseable start date falls back to itself, matching the invoice text.
func endDate(startDate string, nights int) string {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return startDate
	}
	return start.AddDate(0, 0, nights).Format("2006-01-02")
}

// CreateBooking inserts a booking, reusing an existing customer record when
// one with the same email exists, and returns the new booking id.
func (r *mongoLedgerRepo) CreateBooking(ctx context.Context, name, email, phone, location, module, startDate string, nights, guests int, totalCost float64) (int64, error) {
	var customer models.Customer
	err := r.customers.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		customer = models.Customer{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			Phone:     phone,
			CreatedAt: time.Now(),
		}
		if _, err := r.customers.InsertOne(ctx, customer); err != nil {
			return 0, fmt.Errorf("failed to create customer: %w", err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("failed to look up customer: %w", err)
	}

	id, err := r.nextBookingID(ctx)
	if err != nil {
		return 0, err
	}

	booking := models.Booking{
		ID:          id,
		CustomerID:  customer.ID,
		ServiceType: fmt.Sprintf("%s | %s", location, module),
		Location:    location,
		ModuleName:  module,
		BookingDate: fmt.Sprintf("%s to %s", startDate, endDate(startDate, nights)),
		GuestCount:  guests,
		TotalCost:   totalCost,
		Status:      models.StatusConfirmed,
		CreatedAt:   time.Now(),
	}
	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		return 0, fmt.Errorf("failed to insert booking: %w", err)
	}
	return id, nil
}

// DeleteBooking removes a booking record by id.
func (r *mongoLedgerRepo) DeleteBooking(ctx context.Context, id int64) error {
	res, err := r.bookings.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errors.New("booking not found")
	}
	return nil
}

// UpdateBooking rewrites the booking date and guest count. The total is
// only touched when a recalculated value is supplied.
func (r *mongoLedgerRepo) UpdateBooking(ctx context.Context, id int64, newDate string, newGuests int, newTotal float64) error {
	update := bson.M{
		"booking_date": newDate,
		"guest_count":  newGuests,
	}
	if newTotal > 0 {
		update["total_cost"] = newTotal
	}
	res, err := r.bookings.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return errors.New("booking not found")
	}
	return nil
}

// UpdateStatus sets the booking lifecycle status (admin action).
func (r *mongoLedgerRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.bookings.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update booking %d status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return errors.New("booking not found")
	}
	return nil
}
