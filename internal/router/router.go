package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"neuratek-relay/internal/handlers"
	"neuratek-relay/internal/middleware"
)

func New(chatHandler *handlers.ChatHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Global middleware. StripSlashes keeps the historical trailing-slash
	// paths (/ask/, /generate/) working.
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.RequestID)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           86400, // cache preflight responses for 24h
	})
	r.Use(c.Handler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"API de Neuratek en funcionamiento. Usa POST /ask/ para conversar."}`))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/ask", chatHandler.Ask)
	r.Post("/generate", chatHandler.Generate)
	r.Post("/chat", chatHandler.Chat)

	return r
}
