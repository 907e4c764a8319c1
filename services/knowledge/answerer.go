package knowledge

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"scoutai/models"
	"scoutai/utils"
)

const fallbackReply = "I'm having trouble thinking right now."

// Answerer turns unclaimed chat input into grounded answers. Follow-up
// questions are first rewritten into standalone form against the recent
// transcript, then the rewritten query drives retrieval.
type Answerer struct {
	index *Index
	model *genai.GenerativeModel
}

func NewAnswerer(apiKey string, index *Index) (*Answerer, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &Answerer{index: index, model: model}, nil
}

// Index exposes the underlying document index so the upload handler can
// add user documents at runtime.
func (a *Answerer) Index() *Index {
	return a.index
}

// Answer responds to a question using retrieved document context and the
// recent transcript.
func (a *Answerer) Answer(ctx context.Context, question string, history []models.Message) string {
	if a.index.Len() == 0 {
		return "I don't have a knowledge base yet."
	}

	searchQuery := a.rewriteQuery(ctx, question, history)
	chunks := a.index.Search(searchQuery, topK)

	var contextText strings.Builder
	for i, c := range chunks {
		if i > 0 {
			contextText.WriteString("\n\n")
		}
		contextText.WriteString(c.Text)
	}

	prompt := fmt.Sprintf(`You are Scout AI, a camping trip assistant. Answer based on the CONTEXT below.

CONTEXT:
%s

RULES:
1. Answer naturally.
2. If context mentions "Module B: Cloud Farm" and the user asks about "Glamping", connect them.
3. Be honest about policies (No alcohol in forests).

%sUser Question: %s`,
		contextText.String(), historyText(history, 5), question)

	reply, err := a.generate(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("knowledge answer failed", zap.Error(err))
		return fallbackReply
	}
	return reply
}

// rewriteQuery asks the model to replace pronouns in the question with
// the concrete subject from recent history. Any failure keeps the
// original question; rewriting is an accuracy aid, never a gate.
func (a *Answerer) rewriteQuery(ctx context.Context, question string, history []models.Message) string {
	if len(history) == 0 {
		return question
	}

	prompt := fmt.Sprintf(`You are a Query Refiner.
Rewrite the User's last question to be STANDALONE, replacing pronouns (it, that, there) with the specific Location or Activity mentioned in the history.

%sUser Question: %s

Output ONLY the rewritten question. Do not answer it.`,
		historyText(history, 3), question)

	rewritten, err := a.generate(ctx, prompt)
	if err != nil || strings.TrimSpace(rewritten) == "" {
		return question
	}
	return strings.TrimSpace(rewritten)
}

func (a *Answerer) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func historyText(history []models.Message, last int) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > last {
		history = history[len(history)-last:]
	}
	var sb strings.Builder
	sb.WriteString("Chat History:\n")
	for _, msg := range history {
		role := "Bot"
		if msg.Role == models.RoleUser {
			role = "User"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", role, msg.Content))
	}
	sb.WriteString("\n")
	return sb.String()
}
