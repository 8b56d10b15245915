package ws

import "encoding/json"

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeSubmitAnswer = "submit_answer"
	TypeSkipQuestion = "skip_question"
	TypeFinishQuiz   = "finish_quiz"
	TypeRestartQuiz  = "restart_quiz"
	TypePing         = "ping"

	// Server -> Client
	TypeSessionStarted = "session_started"
	TypeViewUpdate     = "view_update"
	TypeNotice         = "notice"
	TypeRecap          = "recap"
	TypeCatalogUpdated = "catalog_updated"
	TypeError          = "error"
	TypePong           = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a typed message. A nil payload is omitted.
func NewMessage(msgType string, payload any) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = raw
	return msg, nil
}

// Client Messages (incoming)

type SubmitAnswerPayload struct {
	Choice string `json:"choice"`
}

// Server Messages (outgoing)

type SessionStartedPayload struct {
	SessionID   string `json:"session_id"`
	RecordCount int    `json:"record_count"`
}

type ViewUpdatePayload struct {
	Question  string   `json:"question"`
	Count     string   `json:"count"`
	Choices   []string `json:"choices"`
	Feedback  string   `json:"feedback"`
	Tone      string   `json:"tone"`
	Score     string   `json:"score"`
	Remaining string   `json:"remaining"`
	Disabled  bool     `json:"disabled"`
}

type NoticePayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type RecapPayload struct {
	Score   int            `json:"score"`
	Total   int            `json:"total"`
	Percent string         `json:"percent"`
	Missed  []MissedEntry  `json:"missed"`
	Skipped []SkippedEntry `json:"skipped"`
	Text    string         `json:"text"`
}

type MissedEntry struct {
	Street  string `json:"street"`
	Correct string `json:"correct"`
	Chosen  string `json:"chosen"`
}

type SkippedEntry struct {
	Street    string `json:"street"`
	Districts string `json:"districts"`
}

type CatalogUpdatedPayload struct {
	Source      string `json:"source"`
	RecordCount int    `json:"record_count"`
	UniqueSets  int    `json:"unique_sets"`
	LoadedAt    string `json:"loaded_at"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
