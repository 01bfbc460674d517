package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/codekivy/kivybot-be/types"
	"github.com/codekivy/kivybot-be/utils"
)

const (
	// Preview summary budget used only for the upload acknowledgment log.
	previewSummaryChars = 3000

	// Documents longer than the threshold are summarized down to the budget
	// before being sent as provider context.
	documentContextThreshold = 8000
	documentContextBudget    = 6000
)

// VisionChat answers a message with an optional inline image. Always
// returns a displayable string.
type VisionChat interface {
	Chat(ctx context.Context, message string, image []byte) string
}

// FastChat answers chat messages, optionally grounded in document context,
// plus a voice-tuned short-form variant. Always returns displayable strings.
type FastChat interface {
	Chat(ctx context.Context, message, documentContext string) string
	VoiceChat(ctx context.Context, message string) string
}

// Speech transcribes audio and synthesizes speech. Failures are
// *types.SpeechError values.
type Speech interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Speak(ctx context.Context, text string) ([]byte, error)
}

// routeState names the chat dispatch states. classifyChat picks the first
// matching state in declaration order: an image always wins, a document
// upload beats document Q&A, and everything else is plain chat.
type routeState int

const (
	routeImage routeState = iota
	routeDocumentUpload
	routeDocumentQuery
	routeChat
)

func (s routeState) String() string {
	switch s {
	case routeImage:
		return "image"
	case routeDocumentUpload:
		return "document_upload"
	case routeDocumentQuery:
		return "document_query"
	default:
		return "chat"
	}
}

func classifyChat(req *types.ChatRequest, hasActiveDocument bool) routeState {
	switch {
	case req.Image != "":
		return routeImage
	case req.Document != nil && req.Mode == types.ModeDocument:
		return routeDocumentUpload
	case req.Mode == types.ModeDocument && hasActiveDocument:
		return routeDocumentQuery
	default:
		return routeChat
	}
}

// Router dispatches inbound requests to the document store, the summarizer
// and exactly one provider adapter, and owns the outermost fault boundary:
// no request ever surfaces a raw fault to the transport layer.
type Router struct {
	store    *DocumentStore
	vision   VisionChat
	fastChat FastChat
	speech   Speech
	logger   *zap.Logger
}

func NewRouter(store *DocumentStore, vision VisionChat, fastChat FastChat, speech Speech, logger *zap.Logger) *Router {
	return &Router{
		store:    store,
		vision:   vision,
		fastChat: fastChat,
		speech:   speech,
		logger:   logger,
	}
}

// HandleChat processes a chat request through the priority state machine.
func (r *Router) HandleChat(ctx context.Context, req *types.ChatRequest) (resp *types.ChatResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("chat request panicked", zap.Any("cause", rec))
			resp = &types.ChatResponse{
				Response: "Sorry, something went wrong. Please try again.",
				Mode:     types.ModeError,
			}
		}
	}()

	req.Normalize()
	_, hasDoc := r.store.GetActiveDocument(req.SessionID)
	state := classifyChat(req, hasDoc)

	r.logger.Info("chat request",
		zap.String("session_id", req.SessionID),
		zap.String("state", state.String()))

	switch state {
	case routeImage:
		return r.handleImage(ctx, req)
	case routeDocumentUpload:
		return r.handleDocumentUpload(ctx, req)
	case routeDocumentQuery:
		return r.handleDocumentQuery(ctx, req)
	default:
		return &types.ChatResponse{
			Response: r.fastChat.Chat(ctx, req.Message, ""),
			Mode:     types.ModeChat,
		}
	}
}

func (r *Router) handleImage(ctx context.Context, req *types.ChatRequest) *types.ChatResponse {
	image, err := utils.DecodeBase64Payload(req.Image)
	if err != nil {
		r.logger.Warn("invalid image payload", zap.Error(err))
		return &types.ChatResponse{
			Response: "Sorry, something went wrong. Please try again.",
			Mode:     types.ModeError,
		}
	}
	return &types.ChatResponse{
		Response: r.vision.Chat(ctx, req.Message, image),
		Mode:     types.ModeImage,
	}
}

func (r *Router) handleDocumentUpload(_ context.Context, req *types.ChatRequest) *types.ChatResponse {
	raw, err := utils.DecodeBase64Payload(req.Document.Data)
	if err != nil {
		return &types.ChatResponse{
			Response: "[Error: Failed to process document - invalid base64 payload]",
			Mode:     types.ModeError,
		}
	}

	text, err := r.store.Resolve(req.Document.Name, req.Document.Type, raw)
	if err != nil {
		var exErr *types.ExtractionError
		if errors.As(err, &exErr) {
			return &types.ChatResponse{
				Response: exErr.UserMessage(),
				Mode:     types.ModeError,
			}
		}
		r.logger.Error("document processing failed", zap.Error(err))
		return &types.ChatResponse{
			Response: "[Error: Failed to process document]",
			Mode:     types.ModeError,
		}
	}

	r.store.SetActiveDocument(req.SessionID, text)

	preview := Summarize(text, previewSummaryChars)
	r.logger.Info("document loaded",
		zap.String("session_id", req.SessionID),
		zap.String("name", req.Document.Name),
		zap.Int("chars", len(text)),
		zap.Int("preview_chars", len(preview)))

	ack := fmt.Sprintf("Document loaded successfully!\n\nFile: %s\nSize: %d characters\n\nAsk me anything about this document!",
		req.Document.Name, len(text))

	return &types.ChatResponse{
		Response:       ack,
		Mode:           types.ModeDocument,
		DocumentLoaded: true,
	}
}

func (r *Router) handleDocumentQuery(ctx context.Context, req *types.ChatRequest) *types.ChatResponse {
	text, _ := r.store.GetActiveDocument(req.SessionID)

	documentContext := text
	if len(text) > documentContextThreshold {
		documentContext = Summarize(text, documentContextBudget)
	}

	return &types.ChatResponse{
		Response: r.fastChat.Chat(ctx, req.Message, documentContext),
		Mode:     types.ModeDocument,
	}
}

// HandleVoice runs the strictly sequential STT -> fast-chat -> TTS
// pipeline. On failure the returned error message is the complete
// user-facing diagnostic and the response is nil.
func (r *Router) HandleVoice(ctx context.Context, audio []byte) (resp *types.VoiceResponse, errMsg string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("voice request panicked", zap.Any("cause", rec))
			resp = nil
			errMsg = "Sorry, something went wrong. Please try again."
		}
	}()

	r.logger.Info("voice request", zap.Int("audio_bytes", len(audio)))

	transcript, err := r.speech.Transcribe(ctx, audio)
	if err != nil {
		var spErr *types.SpeechError
		if errors.As(err, &spErr) {
			r.logger.Warn("transcription failed", zap.String("kind", string(spErr.Kind)))
			return nil, spErr.UserMessage()
		}
		return nil, "Sorry, something went wrong. Please try again."
	}

	textResponse := r.fastChat.VoiceChat(ctx, transcript)

	audioResponse, err := r.speech.Speak(ctx, textResponse)
	if err != nil || len(audioResponse) == 0 {
		r.logger.Warn("speech synthesis failed", zap.Error(err))
		return nil, "TTS generation failed"
	}

	return &types.VoiceResponse{
		Transcript:    transcript,
		TextResponse:  textResponse,
		AudioResponse: base64.StdEncoding.EncodeToString(audioResponse),
	}, ""
}
