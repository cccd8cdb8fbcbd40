package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"meetbook/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiNLU is the Gemini-backed implementation of NLUService.
type GeminiNLU struct {
	model *genai.GenerativeModel
}

func NewGeminiNLU(apiKey string) (*GeminiNLU, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-2.5-flash")
	return &GeminiNLU{model: model}, nil
}

const extractPrompt = `You are an expert at extracting meeting booking facts from conversation.
Analyze the user's message (and recent conversation) and extract any of:
- date_preference: the preferred date phrase, if mentioned
- time_preference: the preferred time phrase, if mentioned
- meeting_purpose: the purpose or notes for the meeting, if mentioned
- name: the user's full name, if mentioned
- email: the user's email address, if mentioned
- phone: the user's phone number, if mentioned

Fields already known (do not re-extract these): %s
Return ONLY a JSON object with the keys above. Omit keys that are not present.

Recent conversation:
%s
User message: %s`

// ExtractFields asks Gemini for the fields the deterministic pass left empty.
func (g *GeminiNLU) ExtractFields(ctx context.Context, text string, known Fields, history []models.Turn) (Fields, error) {
	knownJSON, _ := json.Marshal(known)
	prompt := fmt.Sprintf(extractPrompt, knownJSON, renderHistory(history, 3), text)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return Fields{}, err
	}

	var fields Fields
	if err := json.Unmarshal([]byte(stripFences(raw)), &fields); err != nil {
		return Fields{}, fmt.Errorf("unparseable NLU response: %w", err)
	}
	return fields, nil
}

// ClassifyConfirmation asks Gemini whether text answers yes or no. Anything
// else comes back as unrelated.
func (g *GeminiNLU) ClassifyConfirmation(ctx context.Context, text string) (ConfirmIntent, error) {
	prompt := fmt.Sprintf(
		"The user was asked to confirm a meeting booking with yes or no.\n"+
			"Classify this reply as exactly one word: affirmative, negative, or unrelated.\n"+
			"Reply: %s", text)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return IntentUnrelated, err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "affirmative":
		return IntentAffirmative, nil
	case "negative":
		return IntentNegative, nil
	}
	return IntentUnrelated, nil
}

func (g *GeminiNLU) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
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

// stripFences removes markdown code fences Gemini wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func renderHistory(history []models.Turn, last int) string {
	if len(history) > last {
		history = history[len(history)-last:]
	}
	var sb strings.Builder
	for _, t := range history {
		sb.WriteString(t.Role)
		sb.WriteString(": ")
		sb.WriteString(t.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
