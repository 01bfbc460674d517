package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/codekivy/kivybot-be/types"
)

const (
	speechTimeout = 20 * time.Second

	// nova-2 with formatting features off for lower latency.
	deepgramListenURL = "https://api.deepgram.com/v1/listen?model=nova-2&smart_format=false&punctuate=false&language=en"

	// aura-luna-en at 16kHz linear16 for low-latency synthesis.
	deepgramSpeakURL = "https://api.deepgram.com/v1/speak?model=aura-luna-en&encoding=linear16&sample_rate=16000&container=wav"
)

// SpeechService is the adapter for Deepgram's STT and TTS endpoints. Both
// operations fail with a *types.SpeechError; a missing credential
// short-circuits without any network call.
type SpeechService struct {
	apiKey     string
	listenURL  string
	speakURL   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSpeechService(apiKey string, logger *zap.Logger) *SpeechService {
	if apiKey == "" {
		logger.Warn("DEEPGRAM_API_KEY not set, voice disabled")
	}
	return &SpeechService{
		apiKey:     apiKey,
		listenURL:  deepgramListenURL,
		speakURL:   deepgramSpeakURL,
		httpClient: &http.Client{Timeout: speechTimeout},
		logger:     logger,
	}
}

// Transcribe converts raw audio bytes into a transcript.
func (s *SpeechService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if s.apiKey == "" {
		return "", &types.SpeechError{
			Kind:    types.SpeechNotConfigured,
			Message: "API key not configured",
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.listenURL, bytes.NewReader(audio))
	if err != nil {
		return "", &types.SpeechError{Kind: types.SpeechUpstream, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Token "+s.apiKey)
	req.Header.Set("Content-Type", "audio/webm")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("deepgram transcription failed", zap.Error(err))
		return "", &types.SpeechError{Kind: types.SpeechUpstream, Message: "Transcription service unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("deepgram transcription rejected", zap.Int("status", resp.StatusCode))
		return "", &types.SpeechError{
			Kind:    types.SpeechUpstream,
			Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	var result struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &types.SpeechError{Kind: types.SpeechUpstream, Message: "Invalid transcription response"}
	}

	var transcript string
	if len(result.Results.Channels) > 0 && len(result.Results.Channels[0].Alternatives) > 0 {
		transcript = result.Results.Channels[0].Alternatives[0].Transcript
	}
	if strings.TrimSpace(transcript) == "" {
		return "", &types.SpeechError{Kind: types.SpeechNoSpeech, Message: "No speech detected"}
	}

	return transcript, nil
}

// Speak converts text into WAV audio bytes.
func (s *SpeechService) Speak(ctx context.Context, text string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, &types.SpeechError{
			Kind:    types.SpeechNotConfigured,
			Message: "API key not configured",
		}
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, &types.SpeechError{Kind: types.SpeechUpstream, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.speakURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &types.SpeechError{Kind: types.SpeechUpstream, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Token "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("deepgram synthesis failed", zap.Error(err))
		return nil, &types.SpeechError{Kind: types.SpeechUpstream, Message: "Speech service unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("deepgram synthesis rejected", zap.Int("status", resp.StatusCode))
		return nil, &types.SpeechError{
			Kind:    types.SpeechUpstream,
			Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.SpeechError{Kind: types.SpeechUpstream, Message: "Failed to read audio response"}
	}
	if len(audio) == 0 {
		return nil, &types.SpeechError{Kind: types.SpeechNoAudio, Message: "No audio generated"}
	}

	return audio, nil
}
