package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"neuratek-relay/internal/middleware"
	"neuratek-relay/internal/models"
	"neuratek-relay/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func detailResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Detail: message}
}

// handleServiceError maps service errors to HTTP statuses. The detail
// text deliberately embeds the upstream failure description; the
// frontend shows it to the user as-is.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, detailResp(e.Message))
	case *services.ConfigError:
		log.Printf("completion request %s failed, credential missing: %v", requestID, e)
		writeJSON(w, http.StatusInternalServerError, detailResp("Error interno del servidor: "+e.Message))
	case *services.UpstreamError:
		log.Printf("completion request %s failed upstream: %v", requestID, e)
		writeJSON(w, http.StatusInternalServerError, detailResp("Error interno del servidor: "+e.Error()))
	default:
		log.Printf("completion request %s failed: %v", requestID, err)
		writeJSON(w, http.StatusInternalServerError, detailResp("Error interno del servidor: "+err.Error()))
	}
}
