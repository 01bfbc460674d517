package types

const (
	ModeChat     = "chat"
	ModeDocument = "document"
	ModeImage    = "image"
	ModeError    = "error"
)

// DefaultSessionID is used whenever a caller does not supply a session id.
const DefaultSessionID = "default"

// DocumentPayload is an uploaded document as it arrives on the wire. Data
// is base64, optionally carrying a data-URI prefix ("data:...;base64,").
type DocumentPayload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
	Size int64  `json:"size"`
}

type ChatRequest struct {
	Message   string           `json:"message"`
	Image     string           `json:"image,omitempty"`
	Document  *DocumentPayload `json:"document,omitempty"`
	Mode      string           `json:"mode,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
}

// Normalize fills in the documented defaults for optional fields.
func (r *ChatRequest) Normalize() {
	if r.Mode == "" {
		r.Mode = ModeChat
	}
	if r.SessionID == "" {
		r.SessionID = DefaultSessionID
	}
}

type ClearDocumentRequest struct {
	SessionID string `json:"session_id,omitempty"`
}
