package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neuratek-relay/internal/config"
	"neuratek-relay/internal/database"
	"neuratek-relay/internal/handlers"
	"neuratek-relay/internal/repository"
	"neuratek-relay/internal/router"
	"neuratek-relay/internal/services"
)

func main() {
	log.Println("🚀 Starting Neuratek Relay...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Session Store ────
	var sessions repository.ConversationRepo
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer client.Close()
		sessions = repository.NewRedisConversationRepo(client, cfg.SessionTTL, cfg.SessionMaxTurns)
		log.Println("✓ Redis session store connected")
	} else {
		sessions = repository.NewMemoryConversationRepo(cfg.SessionTTL, cfg.SessionMaxTurns)
		log.Println("✓ In-memory session store initialized")
	}

	// ──── Step 3: Initialize Upstream Client & Service ────
	azureClient := services.NewAzureOpenAIClient(cfg.AzureEndpoint, cfg.AzureKey, cfg.AzureAPIVersion, cfg.DeploymentName)
	chatService := services.NewChatService(azureClient, sessions)
	log.Printf("✓ Azure OpenAI client initialized (deployment %s)", cfg.DeploymentName)

	// ──── Step 4: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(
		chatService,
		services.NewRelayVariant(cfg.MaxTokensDefault),
		services.NewChatVariant(cfg.ChatMaxTokensDefault),
	)

	r := router.New(chatHandler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Neuratek Relay ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
