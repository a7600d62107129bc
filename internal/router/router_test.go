package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"neuratek-relay/internal/handlers"
	"neuratek-relay/internal/models"
	"neuratek-relay/internal/repository"
	"neuratek-relay/internal/services"
)

type okClient struct{}

func (okClient) Complete(ctx context.Context, messages []models.Message, maxTokens int, temperature float64) (string, error) {
	return "respuesta", nil
}

func newTestRouter(origins []string) http.Handler {
	svc := services.NewChatService(okClient{}, repository.NewMemoryConversationRepo(time.Minute, 40))
	h := handlers.NewChatHandler(svc, services.NewRelayVariant(300), services.NewChatVariant(1000))
	return New(h, origins)
}

func TestRoutes(t *testing.T) {
	r := newTestRouter([]string{"*"})

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
	}{
		{"index", http.MethodGet, "/", "", http.StatusOK},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ask", http.MethodPost, "/ask", `{"prompt":"hola"}`, http.StatusOK},
		{"ask with trailing slash", http.MethodPost, "/ask/", `{"prompt":"hola"}`, http.StatusOK},
		{"generate", http.MethodPost, "/generate", `{"prompt":"hola"}`, http.StatusOK},
		{"generate with trailing slash", http.MethodPost, "/generate/", `{"prompt":"hola"}`, http.StatusOK},
		{"chat", http.MethodPost, "/chat", `{"prompt":"hola"}`, http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tc.expected {
				t.Errorf("Expected status %d, got %d: %s", tc.expected, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter([]string{"https://neuratek.cl"})

	req := httptest.NewRequest(http.MethodOptions, "/ask", nil)
	req.Header.Set("Origin", "https://neuratek.cl")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://neuratek.cl" {
		t.Errorf("Expected allowed origin echoed back, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("Expected preflight max age 86400, got %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	r := newTestRouter([]string{"https://neuratek.cl"})

	req := httptest.NewRequest(http.MethodOptions, "/ask", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no allow-origin header for disallowed origin, got %q", got)
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter([]string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID response header")
	}
}
