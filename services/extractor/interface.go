// Package extractor turns free text into best-effort structured booking
// fields. The extractor is unreliable by contract: callers validate every
// field before use, and total failure surfaces as a zero Details value,
// never as an error the conversation has to handle.
package extractor

import (
	"context"

	"scoutai/models"
)

// Extractor is the free-text to structured-fields oracle.
type Extractor interface {
	Extract(ctx context.Context, text, contextHint string) models.ExtractedDetails
}
