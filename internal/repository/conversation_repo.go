package repository

import (
	"context"

	"neuratek-relay/internal/models"
)

// ConversationRepo stores per-session conversation turns for /chat/.
// Each session is owned by exactly one caller-visible session ID; there
// is no global conversation state.
type ConversationRepo interface {
	// History returns the stored turns for a session in order. An
	// unknown or expired session yields an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]models.Message, error)

	// Append adds turns to a session, creating it if needed. Stores
	// enforce a maximum turn count and a TTL so sessions cannot grow or
	// linger without bound.
	Append(ctx context.Context, sessionID string, messages ...models.Message) error
}
