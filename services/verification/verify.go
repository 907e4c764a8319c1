// Package verification proves booking ownership from an uploaded invoice
// PDF. It fails closed: no reference, an unknown reference, or an already
// cancelled booking all reject the document.
package verification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"

	ledgerRepo "scoutai/database/repository/ledger"
	"scoutai/models"
	"scoutai/utils"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// bookingIDPattern matches the reference printed on Scout AI invoices,
// e.g. "Booking ID: #42".
var bookingIDPattern = regexp.MustCompile(`(?i)Booking ID\D+#(\d+)`)

// Verifier cross-checks uploaded invoices against the ledger.
type Verifier interface {
	VerifyInvoice(ctx context.Context, document []byte) (bool, *models.VerifiedBooking, string)
}

// DefaultVerifier is the production implementation.
type DefaultVerifier struct {
	Ledger ledgerRepo.LedgerRepository
}

func NewDefaultVerifier(ledger ledgerRepo.LedgerRepository) *DefaultVerifier {
	return &DefaultVerifier{Ledger: ledger}
}

// VerifyInvoice extracts the embedded booking reference from the PDF and
// returns the matched ledger record. The message is always user-facing.
func (v *DefaultVerifier) VerifyInvoice(ctx context.Context, document []byte) (bool, *models.VerifiedBooking, string) {
	logger := utils.GetLogger()

	text, err := extractText(document)
	if err != nil {
		logger.Debug("invoice text extraction failed", zap.Error(err))
		return false, nil, "I couldn't read that PDF. Please upload a valid booking invoice."
	}

	return v.verifyText(ctx, text)
}

// verifyText applies the reference lookup rules to already-extracted
// invoice text.
func (v *DefaultVerifier) verifyText(ctx context.Context, text string) (bool, *models.VerifiedBooking, string) {
	match := bookingIDPattern.FindStringSubmatch(text)
	if match == nil {
		return false, nil, "Could not find a valid 'Booking ID: #...' in this document."
	}
	bookingID, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return false, nil, "Could not find a valid 'Booking ID: #...' in this document."
	}

	record, err := v.Ledger.GetByID(ctx, bookingID)
	if err != nil {
		return false, nil, fmt.Sprintf("Booking ID #%d not found.", bookingID)
	}
	if record.Status == models.StatusCancelled {
		return false, nil, fmt.Sprintf("Booking #%d is already cancelled.", bookingID)
	}

	return true, record, fmt.Sprintf("Verified Invoice for Booking #%d.", bookingID)
}

// extractText pulls the plain text out of every page of the PDF.
func extractText(document []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}
