package handlers

import (
	"encoding/json"
	"net/http"

	"neuratek-relay/internal/models"
	"neuratek-relay/internal/services"
)

type ChatHandler struct {
	chatService  *services.ChatService
	relayVariant services.Variant
	chatVariant  services.Variant
}

func NewChatHandler(chatService *services.ChatService, relayVariant, chatVariant services.Variant) *ChatHandler {
	return &ChatHandler{
		chatService:  chatService,
		relayVariant: relayVariant,
		chatVariant:  chatVariant,
	}
}

// Ask is the endpoint the current frontend calls. It predates history
// support, so it forwards with an empty history and default settings.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detailResp("El cuerpo de la solicitud es inválido."))
		return
	}

	req.History = nil
	req.MaxTokens = nil
	h.generate(w, r, req)
}

// Generate accepts the full contract: prompt, optional history and an
// optional max_tokens override.
func (h *ChatHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detailResp("El cuerpo de la solicitud es inválido."))
		return
	}

	h.generate(w, r, req)
}

func (h *ChatHandler) generate(w http.ResponseWriter, r *http.Request, req models.PromptRequest) {
	reply, err := h.chatService.Generate(r.Context(), req, h.relayVariant)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ReplyResponse{Response: reply})
}

// Chat keeps the conversation server-side, keyed by session_id. A
// request without one starts a fresh session and returns its ID.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detailResp("El cuerpo de la solicitud es inválido."))
		return
	}

	reply, sessionID, err := h.chatService.Chat(r.Context(), req, h.chatVariant)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ReplyResponse{Response: reply, SessionID: sessionID})
}
