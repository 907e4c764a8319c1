package ledgerRepo

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"scoutai/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// joinCustomer fills the contact fields of a verified booking view.
func (r *mongoLedgerRepo) joinCustomer(ctx context.Context, booking models.Booking) (*models.VerifiedBooking, error) {
	view := models.VerifiedBooking{Booking: booking}
	var customer models.Customer
	err := r.customers.FindOne(ctx, bson.M{"id": booking.CustomerID}).Decode(&customer)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to look up customer %s: %w", booking.CustomerID, err)
	}
	if err == nil {
		view.Name = customer.Name
		view.Email = customer.Email
		view.Phone = customer.Phone
	}
	return &view, nil
}

// GetByID returns a booking joined with its customer contact fields.
func (r *mongoLedgerRepo) GetByID(ctx context.Context, id int64) (*models.VerifiedBooking, error) {
	var booking models.Booking
	if err := r.bookings.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, err
	}
	return r.joinCustomer(ctx, booking)
}

// GetByEmail fetches all bookings belonging to the customer with the given email.
func (r *mongoLedgerRepo) GetByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	var customer models.Customer
	if err := r.customers.FindOne(ctx, bson.M{"email": email}).Decode(&customer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	cursor, err := r.bookings.Find(ctx, bson.M{"customer_id": customer.ID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListBookings returns joined booking views, newest first, narrowed by the
// filter. The text search is applied after the join since it may match the
// customer name.
func (r *mongoLedgerRepo) ListBookings(ctx context.Context, filter BookingFilter) ([]models.VerifiedBooking, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Location != "" {
		query["location"] = filter.Location
	}

	cursor, err := r.bookings.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}

	views := make([]models.VerifiedBooking, 0, len(bookings))
	term := strings.ToLower(filter.Search)
	for _, b := range bookings {
		view, err := r.joinCustomer(ctx, b)
		if err != nil {
			return nil, err
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(view.Name), term) &&
			!strings.Contains(strconv.FormatInt(b.ID, 10), term) {
			continue
		}
		views = append(views, *view)
	}

	// Newest first.
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

// ListCustomers returns every customer record.
func (r *mongoLedgerRepo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	cursor, err := r.customers.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
