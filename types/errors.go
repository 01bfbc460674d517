package types

import "fmt"

// ExtractionErrorKind classifies document extraction failures.
type ExtractionErrorKind string

const (
	ExtractionUnsupported ExtractionErrorKind = "unsupported_format"
	ExtractionCorrupt     ExtractionErrorKind = "corrupt_file"
	ExtractionEmpty       ExtractionErrorKind = "empty_document"
)

// ExtractionError is returned by the extractor as a value so callers can
// surface the diagnostic text to the user instead of failing the request.
type ExtractionError struct {
	Kind    ExtractionErrorKind
	Message string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract: %s: %s", e.Kind, e.Message)
}

// UserMessage is the diagnostic shown to end users, carrying the historical
// "[Error: ...]" marker so clients can tell it apart from a normal answer.
func (e *ExtractionError) UserMessage() string {
	return fmt.Sprintf("[Error: %s]", e.Message)
}

// SpeechErrorKind classifies speech provider failures.
type SpeechErrorKind string

const (
	SpeechNotConfigured SpeechErrorKind = "not_configured"
	SpeechNoSpeech      SpeechErrorKind = "no_speech"
	SpeechNoAudio       SpeechErrorKind = "no_audio"
	SpeechUpstream      SpeechErrorKind = "upstream"
)

// SpeechError is returned by the STT/TTS adapters for every failure mode,
// including a missing credential (which never reaches the network).
type SpeechError struct {
	Kind    SpeechErrorKind
	Message string
}

func (e *SpeechError) Error() string {
	return fmt.Sprintf("speech: %s: %s", e.Kind, e.Message)
}

func (e *SpeechError) UserMessage() string {
	return fmt.Sprintf("[Error: %s]", e.Message)
}
