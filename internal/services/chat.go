package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"neuratek-relay/internal/models"
	"neuratek-relay/internal/repository"
)

// Persona preambles prepended as the system message. The chat persona
// additionally instructs the model not to disclose its provider.
const (
	relayPersona = "Eres un asistente virtual llamado Neuratek."

	chatPersona = "Eres un asistente virtual llamado Neuratek. " +
		"Nunca reveles información sobre tu origen, relación o conexión con OpenAI, ChatGPT, u otros desarrolladores. " +
		"Si te preguntan sobre tu origen, responde: 'Soy un asistente virtual independiente llamado Neuratek, " +
		"diseñado para ayudarte en una amplia variedad de temas.'"
)

// Variant bundles the knobs that historically differed between the
// deployed endpoints: preamble text, token budget and temperature.
type Variant struct {
	Persona          string
	DefaultMaxTokens int
	Temperature      float64
}

// NewRelayVariant configures the stateless /ask/ and /generate/ path.
func NewRelayVariant(defaultMaxTokens int) Variant {
	return Variant{
		Persona:          relayPersona,
		DefaultMaxTokens: defaultMaxTokens,
		Temperature:      0.7,
	}
}

// NewChatVariant configures the session-backed /chat/ path.
func NewChatVariant(defaultMaxTokens int) Variant {
	return Variant{
		Persona:          chatPersona,
		DefaultMaxTokens: defaultMaxTokens,
		Temperature:      0.8,
	}
}

// ChatService assembles conversations and relays them to the upstream
// completion API. Stateless requests carry their own history; /chat/
// sessions are kept in the conversation repository.
type ChatService struct {
	client   CompletionClient
	sessions repository.ConversationRepo
}

func NewChatService(client CompletionClient, sessions repository.ConversationRepo) *ChatService {
	return &ChatService{
		client:   client,
		sessions: sessions,
	}
}

// Generate handles a stateless relay request: validate the supplied
// history, build the message sequence and call upstream once.
func (s *ChatService) Generate(ctx context.Context, req models.PromptRequest, v Variant) (string, error) {
	// Strict history contract: every item needs both role and text.
	// Malformed items never reach the upstream API.
	for _, item := range req.History {
		if item.Role == "" || item.Text == "" {
			return "", &ValidationError{Message: "El historial de mensajes tiene un formato incorrecto."}
		}
	}

	messages := BuildMessages(v.Persona, req.History, req.Prompt)

	return s.client.Complete(ctx, messages, maxTokensOrDefault(req.MaxTokens, v.DefaultMaxTokens), v.Temperature)
}

// Chat handles a session-backed request. An empty session ID starts a
// new session; the issued ID is returned so the client can continue it.
func (s *ChatService) Chat(ctx context.Context, req models.PromptRequest, v Variant) (reply, sessionID string, err error) {
	sessionID = req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return "", "", fmt.Errorf("loading session history: %w", err)
	}

	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: v.Persona})
	messages = append(messages, history...)
	messages = append(messages, models.Message{Role: models.RoleUser, Content: req.Prompt})

	reply, err = s.client.Complete(ctx, messages, maxTokensOrDefault(req.MaxTokens, v.DefaultMaxTokens), v.Temperature)
	if err != nil {
		return "", "", err
	}

	// The reply already went out on success, so a bookkeeping failure
	// only costs this session one remembered turn.
	if err := s.sessions.Append(ctx, sessionID,
		models.Message{Role: models.RoleUser, Content: req.Prompt},
		models.Message{Role: models.RoleAssistant, Content: reply},
	); err != nil {
		log.Printf("failed to append turns to session %s: %v", sessionID, err)
	}

	return reply, sessionID, nil
}

// BuildMessages produces the upstream message sequence: persona system
// message, mapped history in order, then the current prompt as the
// final user message.
func BuildMessages(persona string, history []models.HistoryItem, prompt string) []models.Message {
	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: persona})
	for _, item := range history {
		messages = append(messages, item.ToMessage())
	}
	return append(messages, models.Message{Role: models.RoleUser, Content: prompt})
}

func maxTokensOrDefault(requested *int, defaultVal int) int {
	if requested == nil || *requested <= 0 {
		return defaultVal
	}
	return *requested
}
