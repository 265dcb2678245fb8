package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reelpipe/internal/core/domain"
)

// promptTemplate is the recipe extraction prompt. Placeholders: detected
// language, transcription, caption.
const promptTemplate = `You are a recipe extraction assistant. Your task is to analyze Instagram reel transcriptions and captions to extract structured recipe information.

DETECTED LANGUAGE: %s
NOTE: If the detected language is not English, focus on extracting any English recipe content that may be present in the caption, as the transcription may be translated.

INPUT DATA:
- TRANSCRIPTION: [Audio transcription from the reel - may be translated to English]
- CAPTION: [Original text caption from the Instagram post]

INSTRUCTIONS:
1. Read both the transcription and caption carefully
2. IGNORE promotional content, app recommendations, content hooks, and irrelevant information
3. Extract ONLY cooking-related information
4. If ingredients/instructions appear in both transcription and caption, combine and deduplicate them
5. Prioritize the caption for accurate ingredient quantities and instructions when available
6. Output a clean JSON object with the following structure

OUTPUT FORMAT (JSON only, no markdown):
{
  "recipe_name": "Name of the dish",
  "servings": "Number of servings or portions",
  "prep_time": "Preparation time (e.g., '15 minutes')",
  "cook_time": "Cooking time (e.g., '30 minutes')",
  "total_time": "Total time (e.g., '45 minutes')",
  "ingredients": [
    {
      "item": "ingredient name",
      "quantity": "amount",
      "unit": "measurement unit",
      "notes": "any preparation notes (optional)"
    }
  ],
  "instructions": [
    {
      "step": 1,
      "instruction": "Detailed step description"
    }
  ],
  "tags": ["tag1", "tag2"],
  "cuisine": "Type of cuisine",
  "difficulty": "easy/medium/hard"
}

TRANSCRIPTION:
%s

CAPTION:
%s

Extract the recipe information now:`

// Extractor implements ports.RecipeExtractor against an Ollama-style
// generate endpoint. The timeout must cover cold-start inference, so it
// is far longer than any other call in the pipeline.
type Extractor struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewExtractor creates a new Extractor.
func NewExtractor(baseURL, model string, timeout time.Duration) *Extractor {
	return &Extractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Extract builds the extraction prompt from the transcription record and
// asks the model for structured recipe data.
func (e *Extractor) Extract(ctx context.Context, rec *domain.TranscriptionRecord) (*domain.RecipeData, error) {
	transcription := rec.Output.Transcription
	caption := rec.Output.Caption
	if transcription == "" && caption == "" {
		return nil, errors.New("no transcription or caption data found")
	}

	language := rec.LanguageDetection.Language
	if language == "" {
		language = "en"
	}
	prompt := fmt.Sprintf(promptTemplate, language, transcription, caption)

	payload, _ := json.Marshal(map[string]any{
		"model":  e.model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm request failed: status %d", resp.StatusCode)
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode llm response: %w", err)
	}
	if out.Response == "" {
		return nil, errors.New("llm returned empty response")
	}

	var recipe domain.RecipeData
	if err := json.Unmarshal([]byte(out.Response), &recipe); err != nil {
		return nil, fmt.Errorf("llm returned invalid JSON: %w", err)
	}
	if recipe.Ingredients == nil {
		return nil, errors.New("llm response missing required ingredients array")
	}
	return &recipe, nil
}
