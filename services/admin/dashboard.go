package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	ledgerRepo "scoutai/database/repository/ledger"
	"scoutai/models"
)

// ListBookings returns joined booking rows, newest first, narrowed by the
// filter.
func (a *DefaultAdminService) ListBookings(ctx context.Context, filter ledgerRepo.BookingFilter) ([]models.VerifiedBooking, error) {
	return a.Ledger.ListBookings(ctx, filter)
}

func (a *DefaultAdminService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return a.Ledger.ListCustomers(ctx)
}

// GetMetrics computes the headline numbers. Cancelled bookings still
// count toward the booking total but never toward revenue.
func (a *DefaultAdminService) GetMetrics(ctx context.Context) (Metrics, error) {
	bookings, err := a.Ledger.ListBookings(ctx, ledgerRepo.BookingFilter{})
	if err != nil {
		return Metrics{}, err
	}
	customers, err := a.Ledger.ListCustomers(ctx)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		TotalBookings:  len(bookings),
		TotalCustomers: len(customers),
	}
	for _, b := range bookings {
		if b.Status != models.StatusCancelled {
			m.TotalRevenue += b.TotalCost
		}
	}
	return m, nil
}

// RevenueByDestination aggregates non-cancelled revenue per location,
// highest earner first.
func (a *DefaultAdminService) RevenueByDestination(ctx context.Context) ([]DestinationRevenue, error) {
	bookings, err := a.Ledger.ListBookings(ctx, ledgerRepo.BookingFilter{})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, b := range bookings {
		if b.Status == models.StatusCancelled {
			continue
		}
		totals[b.Location] += b.TotalCost
	}

	out := make([]DestinationRevenue, 0, len(totals))
	for loc, rev := range totals {
		out = append(out, DestinationRevenue{Destination: loc, Revenue: rev})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out, nil
}

// PackagePopularity counts non-cancelled bookings per package, most
// booked first.
func (a *DefaultAdminService) PackagePopularity(ctx context.Context) ([]PackagePopularity, error) {
	bookings, err := a.Ledger.ListBookings(ctx, ledgerRepo.BookingFilter{})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, b := range bookings {
		if b.Status == models.StatusCancelled {
			continue
		}
		counts[b.ModuleName]++
	}

	out := make([]PackagePopularity, 0, len(counts))
	for name, n := range counts {
		out = append(out, PackagePopularity{ModuleName: name, Bookings: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bookings > out[j].Bookings })
	return out, nil
}

// UpdateBookingStatus moves a booking between Confirmed, Completed and
// Cancelled.
func (a *DefaultAdminService) UpdateBookingStatus(ctx context.Context, bookingID int64, status string) error {
	switch status {
	case models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled:
	default:
		return fmt.Errorf("invalid status %q", status)
	}
	return a.Ledger.UpdateStatus(ctx, bookingID, status)
}

// ExportBookingsCSV renders the filtered booking view as a CSV download.
func (a *DefaultAdminService) ExportBookingsCSV(ctx context.Context, filter ledgerRepo.BookingFilter) ([]byte, error) {
	bookings, err := a.Ledger.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Booking_ID", "Customer", "Email", "Destination", "Module", "Date", "Guests", "Cost", "Status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, b := range bookings {
		record := []string{
			fmt.Sprintf("%d", b.ID),
			b.Name,
			b.Email,
			b.Location,
			b.ModuleName,
			b.BookingDate,
			fmt.Sprintf("%d", b.GuestCount),
			fmt.Sprintf("%.2f", b.TotalCost),
			b.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
