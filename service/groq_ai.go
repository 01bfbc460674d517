package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	fastChatTimeout  = 15 * time.Second
	voiceChatTimeout = 10 * time.Second

	chatMaxTokens     = 300
	documentMaxTokens = 500
	voiceMaxTokens    = 150
)

const chatSystemPrompt = `You are "KivyBot," the official assistant for CodeKivy, a Python-focused EdTech platform.
Your persona is friendly, encouraging, and knowledgeable, like a helpful tutor.

RULES:
1. **Focus on Python:** Always prioritize Python-related questions.
2. **Be Concise:** Keep answers clear and well-structured. Use code snippets when helpful.
3. **Be Encouraging:** Use positive language (e.g., "Great question!", "That's a common concept!").
4. **Handle Off-Topic Questions:** Briefly answer and steer back to Python.
5. **Code Examples:** Use code blocks for code examples.`

const documentSystemPrompt = `You are "KivyBot," a document analysis expert for CodeKivy.

DOCUMENT ANALYSIS RULES:
1. **Be Accurate:** Base your answers ONLY on the document content provided.
2. **Be Fast:** Give direct, concise answers without unnecessary elaboration.
3. **Be Specific:** Quote relevant sections when answering questions.
4. **Admit Uncertainty:** If the document doesn't contain the answer, say so clearly.
5. **Structure Answers:** Use bullet points and clear formatting for readability.
6. **Code in Documents:** If the document contains code, explain it clearly.

If the user asks something not in the document, politely say: "I couldn't find that information in the uploaded document."`

const voiceSystemPrompt = `You are "KivyBot," a Python tutor for CodeKivy.

VOICE MODE RULES:
1. Keep responses SHORT (2-3 sentences max) for voice clarity
2. Be conversational and natural
3. Use simple words, avoid jargon
4. Be encouraging and friendly

Focus on Python learning. Keep it brief and clear for voice.`

// FastChatService is the adapter for Groq's OpenAI-compatible chat API.
// Like the vision adapter it never returns an error: every failure mode is
// normalized into a displayable string.
type FastChatService struct {
	client     *openai.Client
	model      string
	configured bool
	logger     *zap.Logger
}

// NewFastChatService points the OpenAI client at the Groq endpoint. An
// empty apiKey short-circuits every call with a static message.
func NewFastChatService(endpoint, apiKey, model string, logger *zap.Logger) *FastChatService {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = endpoint

	if apiKey == "" {
		logger.Warn("GROQ_API_KEY not set, fast chat disabled")
	}
	return &FastChatService{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		configured: apiKey != "",
		logger:     logger,
	}
}

// Chat answers a user message, optionally grounded in document context.
// Document-grounded calls run at a lower temperature and a higher token
// budget, favoring fidelity over creativity.
func (s *FastChatService) Chat(ctx context.Context, message, documentContext string) string {
	if !s.configured {
		return "Sorry, Groq API key is not configured."
	}

	systemPrompt := chatSystemPrompt
	userMessage := message
	maxTokens := chatMaxTokens
	if documentContext != "" {
		systemPrompt = documentSystemPrompt
		userMessage = fmt.Sprintf("Document Content:\n%s\n\nUser Question: %s\n\nPlease answer based ONLY on the document content above.",
			documentContext, message)
		maxTokens = documentMaxTokens
	}

	return s.complete(ctx, completionParams{
		timeout:      fastChatTimeout,
		systemPrompt: systemPrompt,
		userMessage:  userMessage,
		maxTokens:    maxTokens,
		temperature:  0.3,
		topP:         0.9,
		fallback:     "Sorry, something went wrong on my end.",
	})
}

// VoiceChat is the voice-tuned variant: a shorter prompt, a tighter token
// budget and a tighter timeout.
func (s *FastChatService) VoiceChat(ctx context.Context, message string) string {
	if !s.configured {
		return "Sorry, Groq API key is not configured."
	}

	return s.complete(ctx, completionParams{
		timeout:      voiceChatTimeout,
		systemPrompt: voiceSystemPrompt,
		userMessage:  message,
		maxTokens:    voiceMaxTokens,
		temperature:  0.7,
		topP:         1,
		fallback:     "Sorry, something went wrong.",
	})
}

type completionParams struct {
	timeout      time.Duration
	systemPrompt string
	userMessage  string
	maxTokens    int
	temperature  float32
	topP         float32
	fallback     string
}

func (s *FastChatService) complete(ctx context.Context, p completionParams) string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: p.userMessage},
		},
		Temperature: p.temperature,
		TopP:        p.topP,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			s.logger.Warn("groq request failed",
				zap.Int("status", apiErr.HTTPStatusCode), zap.Error(err))
			switch apiErr.HTTPStatusCode {
			case http.StatusUnauthorized:
				return "Sorry, there's an issue with the API key."
			case http.StatusTooManyRequests:
				return "Sorry, too many requests. Please wait a moment and try again."
			default:
				return fmt.Sprintf("Sorry, I'm having trouble connecting (Error: %d).", apiErr.HTTPStatusCode)
			}
		}
		s.logger.Warn("groq request failed", zap.Error(err))
		return p.fallback
	}

	if len(resp.Choices) == 0 {
		return "Sorry, I couldn't generate a response right now."
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
