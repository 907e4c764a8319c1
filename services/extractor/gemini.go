package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"scoutai/models"
	"scoutai/services/catalog"
	"scoutai/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiExtractor asks Gemini for a strict-JSON entity extraction.
type GeminiExtractor struct {
	model   *genai.GenerativeModel
	catalog *catalog.Store
}

func NewGeminiExtractor(apiKey string, store *catalog.Store) (*GeminiExtractor, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiExtractor{model: model, catalog: store}, nil
}

// Extract prompts the model for booking entities. Any failure along the
// way (network, malformed output) returns the zero value: extraction
// misses are recovered by the caller, never surfaced.
func (g *GeminiExtractor) Extract(ctx context.Context, text, contextHint string) models.ExtractedDetails {
	logger := utils.GetLogger()

	prompt := fmt.Sprintf(`Extract booking entities from: %q. Context: %s.
Today: %s.
Valid Locations: %s.
Return only JSON with keys: location, date (YYYY-MM-DD), guests (int), service_type, name, email, phone.
Omit keys you cannot determine.`,
		text, contextHint,
		time.Now().Format("2006-01-02"),
		strings.Join(g.catalog.Keys(), ", "),
	)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		logger.Debug("entity extraction call failed", zap.Error(err))
		return models.ExtractedDetails{}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return models.ExtractedDetails{}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	return parseDetails(sb.String())
}

// parseDetails strips markdown code fences and decodes the model output.
// Guests may arrive as a number or a numeric string; both are accepted.
func parseDetails(raw string) models.ExtractedDetails {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var loose struct {
		Location    string          `json:"location"`
		Date        string          `json:"date"`
		Guests      json.RawMessage `json:"guests"`
		ServiceType string          `json:"service_type"`
		Name        string          `json:"name"`
		Email       string          `json:"email"`
		Phone       string          `json:"phone"`
	}
	if err := json.Unmarshal([]byte(cleaned), &loose); err != nil {
		return models.ExtractedDetails{}
	}

	details := models.ExtractedDetails{
		Location:    loose.Location,
		Date:        loose.Date,
		ServiceType: loose.ServiceType,
		Name:        loose.Name,
		Email:       loose.Email,
		Phone:       loose.Phone,
	}
	if len(loose.Guests) > 0 {
		var n int
		if err := json.Unmarshal(loose.Guests, &n); err == nil {
			details.Guests = n
		} else {
			var s string
			if err := json.Unmarshal(loose.Guests, &s); err == nil {
				fmt.Sscanf(s, "%d", &details.Guests)
			}
		}
	}
	return details
}
