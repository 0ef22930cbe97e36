package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// LLMClient is the remote model boundary: one system message, one user
// message, one JSON object back.
type LLMClient interface {
	Complete(ctx context.Context, systemMessage, userMessage string) (map[string]any, error)
}

type geminiService struct {
	client          *genai.Client
	modelName       string
	temperature     float32
	maxOutputTokens int32
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (LLMClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &geminiService{
		client:          client,
		modelName:       modelName,
		temperature:     0.2,
		maxOutputTokens: 2000,
	}, nil
}

// Complete implements LLMClient.
func (g *geminiService) Complete(ctx context.Context, systemMessage, userMessage string) (map[string]any, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemMessage, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   g.maxOutputTokens,
		ResponseMIMEType:  "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(userMessage), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return nil, errors.New("no response generated (nil response)")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("no text content in response")
	}

	log.WithField("model", g.modelName).
		WithField("chars", len(text)).
		Debug("📊 Gemini response received")

	return decodeJSONObject(text)
}

// decodeJSONObject parses model output into a generic object. Numbers are kept
// as json.Number so integer literals can be told apart from floats.
func decodeJSONObject(text string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(extractJSON(text)))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if obj == nil {
		return nil, errors.New("response is not a JSON object")
	}

	return obj, nil
}

// extractJSON strips markdown fences and anything outside the outermost object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
