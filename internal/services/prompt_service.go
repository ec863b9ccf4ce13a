package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/logging"
	"sermon-art-backend/internal/openai"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/prompt"
)

var ErrInvalidInput = errors.New("invalid input")

type ChatClient interface {
	ChatJSON(ctx context.Context, messages []openai.Message, out any) error
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// CreditLedger is the authoritative credit store.
type CreditLedger interface {
	GetOrCreateCredits(ctx context.Context, userID uuid.UUID) (*credits.Balance, error)
	ConsumeCredit(ctx context.Context, userID uuid.UUID) (*credits.Balance, error)
}

type PromptServiceOptions struct {
	Chat    ChatClient
	Catalog *presets.Catalog
	Ledger  CreditLedger
	Gate    *credits.Gate
	Logger  *slog.Logger
}

type PromptService struct {
	chat    ChatClient
	catalog *presets.Catalog
	ledger  CreditLedger
	gate    *credits.Gate
	logger  *slog.Logger
}

type PromptResult struct {
	FullPrompt string
	Summary    string
	PromptData *prompt.PromptData
}

type ImageResult struct {
	URL     string
	Balance *credits.Balance
}

func NewPromptService(opts PromptServiceOptions) *PromptService {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = presets.Default()
	}
	return &PromptService{
		chat:    opts.Chat,
		catalog: catalog,
		ledger:  opts.Ledger,
		gate:    opts.Gate,
		logger:  logging.OrDiscard(opts.Logger),
	}
}

const generateSystemPrompt = `You write prompts for an image model that creates sermon artwork.
Respond with a JSON object with these fields:
"fullPrompt": a detailed image prompt, no text or lettering in the image.
"summary": one or two sentences describing the image, where every editable detail is wrapped in curly braces, e.g. "A {lighthouse} at {dawn}".
"elements": an array with one entry per braced detail: {"type": short category such as subject, setting, lighting, palette or mood, "value": the exact braced text, "suggestions": three alternative values}.`

const convertSystemPrompt = `You write prompts for an image model that creates sermon artwork.
The user gives a short description of an image. Expand it into a detailed image prompt with no text or lettering in the image.
Respond with a JSON object with a single field "fullPrompt".`

type generatedPrompt struct {
	FullPrompt string `json:"fullPrompt"`
	Summary    string `json:"summary"`
	Elements   []struct {
		Type        string   `json:"type"`
		Value       string   `json:"value"`
		Suggestions []string `json:"suggestions"`
	} `json:"elements"`
}

// Generate asks the chat model for a prompt built from a sermon title and
// topic, guided by the preset's materialized template when one is given.
func (s *PromptService) Generate(ctx context.Context, title, topic, presetID string) (*PromptResult, error) {
	title = strings.TrimSpace(title)
	topic = strings.TrimSpace(topic)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	user := fmt.Sprintf("Sermon title: %s\nSermon topic: %s", title, topic)
	style, err := s.styleGuide(presetID, prompt.Sermon{Title: title, Topic: topic})
	if err != nil {
		return nil, err
	}
	if style != "" {
		user += "\nStyle template (JSON): " + style
	}

	var out generatedPrompt
	err = s.chat.ChatJSON(ctx, []openai.Message{
		{Role: "system", Content: generateSystemPrompt},
		{Role: "user", Content: user},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prompt: %w", err)
	}
	if strings.TrimSpace(out.FullPrompt) == "" {
		return nil, errors.New("failed to generate prompt: empty fullPrompt")
	}

	result := &PromptResult{FullPrompt: out.FullPrompt, Summary: out.Summary}

	elements := make([]prompt.Element, 0, len(out.Elements))
	for _, e := range out.Elements {
		elements = append(elements, prompt.Element{Type: e.Type, Value: e.Value, Suggestions: e.Suggestions})
	}
	pd, err := prompt.NewPromptData(elements, out.Summary, out.FullPrompt)
	if err != nil {
		s.logger.Warn("Generated summary is not editable", "error", err)
		return result, nil
	}
	result.PromptData = pd
	return result, nil
}

// Convert expands an edited summary back into a full prompt.
func (s *PromptService) Convert(ctx context.Context, summary, presetID string) (string, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("%w: summary is required", ErrInvalidInput)
	}

	user := "Description: " + summary
	if presetID != "" {
		p, err := s.catalog.Get(presetID)
		if err != nil {
			return "", err
		}
		user += "\nStyle: " + p.Title + ". " + p.Description
	}

	var out struct {
		FullPrompt string `json:"fullPrompt"`
	}
	err := s.chat.ChatJSON(ctx, []openai.Message{
		{Role: "system", Content: convertSystemPrompt},
		{Role: "user", Content: user},
	}, &out)
	if err != nil {
		return "", fmt.Errorf("failed to convert prompt: %w", err)
	}
	if strings.TrimSpace(out.FullPrompt) == "" {
		return "", errors.New("failed to convert prompt: empty fullPrompt")
	}
	return out.FullPrompt, nil
}

// GenerateImage checks the stored balance, generates the image and only then
// consumes one credit. The refreshed balance is pushed into the gate.
func (s *PromptService) GenerateImage(ctx context.Context, userID uuid.UUID, promptText, presetID string) (*ImageResult, error) {
	promptText = strings.TrimSpace(promptText)
	if promptText == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	if presetID != "" {
		p, err := s.catalog.Get(presetID)
		if err != nil {
			return nil, err
		}
		promptText += "\n\nStyle: " + p.Title + ". " + p.Description
	}

	balance, err := s.ledger.GetOrCreateCredits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check credits: %w", err)
	}
	s.apply(balance)
	if balance.CreditsRemaining <= 0 {
		return nil, credits.ErrNoCredits
	}

	url, err := s.chat.GenerateImage(ctx, promptText)
	if err != nil {
		return nil, err
	}

	// The balance check above is advisory. Concurrent requests at one credit
	// can both pass it; the losing decrement finds zero, the image is still
	// returned and the balance is reported as zero.
	after, err := s.ledger.ConsumeCredit(ctx, userID)
	switch {
	case errors.Is(err, credits.ErrNoCredits):
		s.logger.Warn("Balance reached zero before decrement", "user_id", userID.String())
		after = &credits.Balance{UserID: userID, NextResetAt: balance.NextResetAt}
	case err != nil:
		s.logger.Error("Failed to consume credit", "user_id", userID.String(), "error", err)
		after = balance
	}
	s.apply(after)

	return &ImageResult{URL: url, Balance: after}, nil
}

func (s *PromptService) styleGuide(presetID string, sermon prompt.Sermon) (string, error) {
	if presetID == "" {
		return "", nil
	}
	p, err := s.catalog.Get(presetID)
	if err != nil {
		return "", err
	}
	return prompt.MaterializePreset(p, sermon)
}

func (s *PromptService) apply(b *credits.Balance) {
	if s.gate != nil && b != nil {
		s.gate.Apply(*b)
	}
}
