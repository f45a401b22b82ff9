package scanning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const receiptScanPrompt = `Analyze this restaurant receipt image and extract its structure.
Respond with ONLY a JSON object, no markdown, in this exact shape:
{
  "receiptName": "merchant or receipt title",
  "translatedReceiptName": "English translation if the title is not English, else omit",
  "date": "date as printed, YYYY-MM-DD if possible",
  "orders": [
    {"name": "line item name", "translatedName": "English translation if needed", "quantity": 1, "price": 0.00}
  ],
  "total": 0.00,
  "tax": 0,
  "discount": 0,
  "tip": 0
}
"price" is the UNIT price of one item. "tax", "discount" and "tip" are PERCENT values
between 0 and 100; use 0 when not printed on the receipt.`

// Ensure Gemini implements Scanner
var _ Scanner = (*Gemini)(nil)

// Gemini implements Scanner using Google Gemini.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini-backed scanner.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// ScanReceipt sends the image to the model and parses the structured
// response.
func (g *Gemini) ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*ParsedReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// genai.ImageData expects just the format suffix ("png"), not the
	// full MIME type ("image/png").
	format := "png"
	if strings.HasPrefix(contentType, "image/") {
		format = strings.TrimPrefix(contentType, "image/")
	}

	parts := []genai.Part{
		genai.ImageData(format, imageData),
		genai.Text(receiptScanPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	data, err := parseReceiptJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing receipt data: %w", err)
	}
	return data, nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
