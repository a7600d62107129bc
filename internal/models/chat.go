package models

// Message roles accepted by the upstream chat-completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in the conversation sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryItem is a prior turn as the frontend sends it. The frontend
// labels assistant turns "bot"; every other role counts as a user turn.
type HistoryItem struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ToMessage maps a history item to the upstream message format.
func (h HistoryItem) ToMessage() Message {
	role := RoleUser
	if h.Role == "bot" {
		role = RoleAssistant
	}
	return Message{Role: role, Content: h.Text}
}

// PromptRequest is the payload for /ask/, /generate/ and /chat/.
// MaxTokens is a pointer so an omitted field falls back to the
// per-endpoint default. SessionID is only honored by /chat/.
type PromptRequest struct {
	Prompt    string        `json:"prompt"`
	MaxTokens *int          `json:"max_tokens,omitempty"`
	History   []HistoryItem `json:"history,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
}

// ReplyResponse is the success body. SessionID is set on /chat/ so the
// client can continue the same conversation.
type ReplyResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id,omitempty"`
}

// ErrorResponse mirrors the `detail` envelope the Neuratek frontend
// already parses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
