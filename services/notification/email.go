package notification

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"scoutai/config"
	"scoutai/models"
	"scoutai/utils"

	"go.uber.org/zap"
)

// SMTPNotificationService is the production mailer. When no SMTP username
// is configured it runs in simulation mode: every send logs and succeeds,
// which keeps local development flows (and their rollback ordering) intact.
type SMTPNotificationService struct{}

func NewSMTPNotificationService() *SMTPNotificationService {
	return &SMTPNotificationService{}
}

func (s *SMTPNotificationService) simulated(kind, toEmail string) bool {
	if config.AppConfig.SMTPUsername != "" {
		return false
	}
	utils.GetLogger().Info("email simulated (no SMTP credentials)",
		zap.String("kind", kind), zap.String("to", toEmail))
	return true
}

// send delivers one message over SMTP with a plain and an HTML part.
func (s *SMTPNotificationService) send(toEmail, subject, plainBody, htmlBody string) bool {
	logger := utils.GetLogger()
	cfg := config.AppConfig

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
	from := fmt.Sprintf("%s <%s>", cfg.SMTPFromName, cfg.SMTPUsername)

	const boundary = "----=_SCOUT_EMAIL_BOUNDARY"

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", toEmail)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	if htmlBody == "" {
		sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
		sb.WriteString(plainBody)
	} else {
		fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		fmt.Fprintf(&sb, "--%s\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n", boundary, plainBody)
		fmt.Fprintf(&sb, "--%s\r\nContent-Type: text/html; charset=\"utf-8\"\r\n\r\n%s\r\n", boundary, htmlBody)
		fmt.Fprintf(&sb, "--%s--\r\n", boundary)
	}

	if err := smtp.SendMail(addr, auth, cfg.SMTPUsername, []string{toEmail}, []byte(sb.String())); err != nil {
		logger.Error("email send failed", zap.String("to", toEmail), zap.Error(err))
		return false
	}
	return true
}

// SendConfirmationEmail delivers the rich booking confirmation with the
// full trip breakdown.
func (s *SMTPNotificationService) SendConfirmationEmail(toEmail, name string, bookingID int64, draft models.BookingDraft) bool {
	if s.simulated("confirmation", toEmail) {
		return true
	}

	end := draft.Date
	if start, err := time.Parse("2006-01-02", draft.Date); err == nil {
		end = start.AddDate(0, 0, draft.Nights).Format("2006-01-02")
	}

	subject := fmt.Sprintf("Booking Confirmed! (ID: #%d) - Scout AI", bookingID)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour trip to %s is booked.\nBooking ID: #%d\nPackage: %s\nDates: %s to %s (%d nights)\nGuests: %d\nTotal Paid: INR %.0f\n\nRegards,\nScout AI Team\n",
		name, draft.Location, bookingID, draft.ModuleName, draft.Date, end, draft.Nights, draft.Guests, draft.TotalCost,
	)
	html := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
  <div style="padding: 20px; background-color: #f9f9f9;">
    <h2 style="color: #1B4D3E;">Camping Trip Confirmed!</h2>
    <p>Hi <strong>%s</strong>, your trip to <strong>%s</strong> is booked.</p>
    <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
      <tr><td><strong>Booking ID</strong></td><td>#%d</td></tr>
      <tr><td><strong>Package</strong></td><td>%s</td></tr>
      <tr><td><strong>Dates</strong></td><td>%s to %s (%d Nights)</td></tr>
      <tr><td><strong>Guests</strong></td><td>%d</td></tr>
      <tr><td><strong>Total Paid</strong></td><td><strong>INR %.0f</strong></td></tr>
    </table>
    <p><strong>Itinerary:</strong> %s</p>
    <p><strong>Food:</strong> %s</p>
    <p style="color: #666; font-size: 12px;">Policy: %s</p>
  </div>
</body>
</html>`,
		name, draft.Location, bookingID, draft.ModuleName, draft.Date, end,
		draft.Nights, draft.Guests, draft.TotalCost, draft.Itinerary, draft.Food, draft.Policy,
	)

	return s.send(toEmail, subject, plain, html)
}

// SendCancellationEmail delivers the plain-text cancellation notice.
func (s *SMTPNotificationService) SendCancellationEmail(toEmail, name string, bookingID int64) bool {
	if s.simulated("cancellation", toEmail) {
		return true
	}

	subject := fmt.Sprintf("Cancellation Confirmed: Booking #%d", bookingID)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour booking #%d has been successfully cancelled as per your request.\n\nRegards,\nScout AI Team\n",
		name, bookingID,
	)
	return s.send(toEmail, subject, plain, "")
}

// SendUpdateEmail delivers the old-vs-new modification summary.
func (s *SMTPNotificationService) SendUpdateEmail(toEmail, name string, bookingID int64, oldDetails, newDetails ChangeSummary) bool {
	if s.simulated("update", toEmail) {
		return true
	}

	subject := fmt.Sprintf("Booking Updated: #%d - Scout AI", bookingID)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour booking #%d has been modified.\nDate: %s -> %s\nGuests: %d -> %d\n\nRegards,\nScout AI Team\n",
		name, bookingID, oldDetails.Date, newDetails.Date, oldDetails.Guests, newDetails.Guests,
	)
	html := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
  <div style="padding: 20px; background-color: #f4f4f4;">
    <h2 style="color: #1B4D3E;">Booking Updated Successfully</h2>
    <p>Hi <strong>%s</strong>,</p>
    <p>Your booking <strong>#%d</strong> has been modified as requested.</p>
    <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
      <tr style="background-color: #f2f2f2;"><th style="padding: 10px;">Item</th><th>Old</th><th>New</th></tr>
      <tr><td>Date</td><td>%s</td><td><strong>%s</strong></td></tr>
      <tr><td>Guests</td><td>%d</td><td><strong>%d</strong></td></tr>
    </table>
  </div>
</body>
</html>`,
		name, bookingID, oldDetails.Date, newDetails.Date, oldDetails.Guests, newDetails.Guests,
	)
	return s.send(toEmail, subject, plain, html)
}

// SendReminderEmail delivers the pre-trip reminder enqueued after a
// confirmed booking.
func (s *SMTPNotificationService) SendReminderEmail(toEmail, name string, booking models.Booking) bool {
	if s.simulated("reminder", toEmail) {
		return true
	}

	subject := fmt.Sprintf("Your trip is almost here! (Booking #%d)", booking.ID)
	plain := fmt.Sprintf(
		"Hi %s,\n\nJust a reminder: your %s trip (%s) starts soon.\nBooking #%d for %d guests.\nSee you there!\n\nScout AI Team\n",
		name, booking.Location, booking.BookingDate, booking.ID, booking.GuestCount,
	)
	return s.send(toEmail, subject, plain, "")
}
