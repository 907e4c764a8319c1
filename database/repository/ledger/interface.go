package ledgerRepo

import (
	"context"

	"scoutai/config"
	"scoutai/database"
	"scoutai/models"
	"scoutai/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BookingFilter narrows admin booking queries. Empty fields match everything.
type BookingFilter struct {
	Status   string // exact status match
	Location string // exact catalog location key
	Search   string // case-insensitive substring of customer name, or booking id
}

// LedgerRepository is the authoritative store of bookings and customers.
type LedgerRepository interface {
	CreateBooking(ctx context.Context, name, email, phone, location, module, startDate string, nights, guests int, totalCost float64) (int64, error)
	DeleteBooking(ctx context.Context, id int64) error
	UpdateBooking(ctx context.Context, id int64, newDate string, newGuests int, newTotal float64) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	GetByID(ctx context.Context, id int64) (*models.VerifiedBooking, error)
	GetByEmail(ctx context.Context, email string) ([]models.Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]models.VerifiedBooking, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

type mongoLedgerRepo struct {
	bookings  *mongo.Collection
	customers *mongo.Collection
	counters  *mongo.Collection
}

// NewMongoLedgerRepo returns a new LedgerRepository instance using MongoDB.
func NewMongoLedgerRepo() LedgerRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoLedgerRepo{
		bookings:  db.Collection("bookings"),
		customers: db.Collection("customers"),
		counters:  db.Collection("counters"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("ledger index creation failed", zap.Error(err))
	}
	return repo
}
