// Package admin exposes the reporting and management views behind the
// dashboard endpoints: joined booking rows with filters, business
// metrics, and status mutations.
package admin

import (
	"context"

	ledgerRepo "scoutai/database/repository/ledger"
	"scoutai/models"
)

// Metrics is the dashboard headline row. Revenue excludes cancelled
// bookings.
type Metrics struct {
	TotalBookings  int     `json:"total_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCustomers int     `json:"total_customers"`
}

// DestinationRevenue is one bar of the revenue-by-destination chart.
type DestinationRevenue struct {
	Destination string  `json:"destination"`
	Revenue     float64 `json:"revenue"`
}

// PackagePopularity is one bar of the bookings-per-package chart.
type PackagePopularity struct {
	ModuleName string `json:"module_name"`
	Bookings   int    `json:"bookings"`
}

// AdminService defines the dashboard operations.
type AdminService interface {
	ListBookings(ctx context.Context, filter ledgerRepo.BookingFilter) ([]models.VerifiedBooking, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetMetrics(ctx context.Context) (Metrics, error)
	RevenueByDestination(ctx context.Context) ([]DestinationRevenue, error)
	PackagePopularity(ctx context.Context) ([]PackagePopularity, error)
	UpdateBookingStatus(ctx context.Context, bookingID int64, status string) error
	ExportBookingsCSV(ctx context.Context, filter ledgerRepo.BookingFilter) ([]byte, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Ledger ledgerRepo.LedgerRepository
}

func NewAdminService(ledger ledgerRepo.LedgerRepository) *DefaultAdminService {
	return &DefaultAdminService{Ledger: ledger}
}
