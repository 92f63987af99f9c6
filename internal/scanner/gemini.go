package scanner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"spendwise/internal/core"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

const scanPrompt = `You are reading a photo of a shopping bill or receipt.
Respond with a single JSON object and nothing else:
{"amount": <total amount as a number>, "category": "<one of: Food, Transport, Utilities, Shopping, Entertainment, Health, Other>", "description": "<merchant or short purchase summary>", "date": "<purchase date as YYYY-MM-DD, empty if unreadable>"}`

var ErrEmptyResponse = errors.New("empty scanner response")

// Gemini is a thin adapter over the Gemini vision API. All the
// extraction logic lives on the other side of the call; this type only
// ships the image and parses the JSON that comes back.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing API key")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) ScanBill(ctx context.Context, image []byte, mimeType string) (core.PartialExpense, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx,
		genai.ImageData(imageSubtype(mimeType), image),
		genai.Text(scanPrompt),
	)
	if err != nil {
		return core.PartialExpense{}, fmt.Errorf("generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return core.PartialExpense{}, ErrEmptyResponse
	}

	partial, err := parseScanResult(text)
	if err != nil {
		return core.PartialExpense{}, fmt.Errorf("parse scan result: %w", err)
	}

	slog.DebugContext(ctx, "Bill scanned",
		"amount_cents", partial.Amount.Cents,
		"category", partial.Category)
	return partial, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// imageSubtype maps a MIME type like "image/png" to the bare subtype the
// API expects. Unrecognized input defaults to jpeg.
func imageSubtype(mimeType string) string {
	if sub, ok := strings.CutPrefix(mimeType, "image/"); ok && sub != "" {
		return sub
	}
	return "jpeg"
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

// parseScanResult turns the model's JSON answer into a partial expense.
// Models tend to wrap JSON in markdown fences, so those are stripped
// first. Amount and date degrade the same way the manual form does:
// unusable values become zero and "today" respectively.
func parseScanResult(text string) (core.PartialExpense, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Date        string  `json:"date"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return core.PartialExpense{}, err
	}

	partial := core.PartialExpense{
		Amount:      core.MoneyFromFloat(raw.Amount),
		Category:    strings.TrimSpace(raw.Category),
		Description: strings.TrimSpace(raw.Description),
	}
	if t, err := time.Parse("2006-01-02", raw.Date); err == nil {
		partial.Date = core.Date{Time: t}
	}
	return partial, nil
}
