package types

type ChatResponse struct {
	Response       string `json:"response"`
	Mode           string `json:"mode"`
	DocumentLoaded bool   `json:"document_loaded,omitempty"`
}

type VoiceResponse struct {
	Transcript    string `json:"transcript"`
	TextResponse  string `json:"text_response"`
	AudioResponse string `json:"audio_response_b64"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ClearDocumentResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

type DocumentStatusResponse struct {
	HasDocument    bool   `json:"has_document"`
	DocumentLength int    `json:"document_length"`
	SessionID      string `json:"session_id"`
}
