package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const visionTimeout = 60 * time.Second

// The system prompt defining the bot's persona for CodeKivy, including the
// screenshot analysis rules used on the image path.
const visionSystemPrompt = `You are "KivyBot," the official assistant for CodeKivy, a Python-focused EdTech platform.
Your persona is friendly, encouraging, and knowledgeable, like a helpful tutor.
Your main goal is to help users learn Python and related programming concepts.

RULES:
1.  **Focus on Python:** Always prioritize Python-related questions.
2.  **Be Concise:** Keep answers short and easy to read for a chat window. Use code snippets for examples.
3.  **Be Encouraging:** Use positive language (e.g., "Great question!", "That's a common concept!").
4.  **Handle Off-Topic Questions:** Briefly answer and steer back: "My main job is helping you with Python. Do you have any coding questions?"
5.  **Greet Users:** If the user says "hi," introduce yourself as KivyBot.
6.  **Handle Screenshots:** If you are given a screenshot, you MUST analyze it based on the user's prompt.
    - If it's a screenshot of code, analyze the code for errors, explain what it does, or suggest improvements.
    - If it's a screenshot of the website, answer the user's question about it.`

// VisionService is the adapter for the Gemini vision-capable model. Chat
// always returns a displayable string; provider failures are normalized
// into apology messages rather than surfaced as errors.
type VisionService struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

// NewVisionService builds the Gemini client. An empty apiKey is allowed:
// the service then answers with a static "not configured" message and
// never touches the network.
func NewVisionService(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*VisionService, error) {
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY not set, vision chat disabled")
		return &VisionService{logger: logger}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(visionSystemPrompt)},
	}

	return &VisionService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Chat sends the message, with an optional inline JPEG, to the vision model.
func (s *VisionService) Chat(ctx context.Context, message string, image []byte) string {
	if s.model == nil {
		return "Sorry, Gemini API key is not configured."
	}

	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	parts := []genai.Part{genai.Text(message)}
	if len(image) > 0 {
		parts = append(parts, genai.ImageData("jpeg", image))
	}

	resp, err := s.model.GenerateContent(ctx, parts...)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			s.logger.Warn("gemini request failed",
				zap.Int("status", apiErr.Code), zap.Error(err))
			if apiErr.Code == http.StatusBadRequest {
				return "Sorry, there seems to be an issue with the API configuration. (Error 400)"
			}
			return fmt.Sprintf("Sorry, I'm having trouble connecting to the AI (HTTP error: %d).", apiErr.Code)
		}
		s.logger.Warn("gemini request failed", zap.Error(err))
		return "Sorry, something went wrong on my end."
	}

	var content string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	if content == "" {
		return "Sorry, I couldn't generate a response right now."
	}
	return content
}

func (s *VisionService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
