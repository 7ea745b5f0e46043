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

	"slidechat-backend/internal/config"
	"slidechat-backend/internal/handlers"
	"slidechat-backend/internal/preview"
	"slidechat-backend/internal/router"
	"slidechat-backend/internal/services"
	"slidechat-backend/internal/session"
)

func main() {
	log.Println("🚀 Starting SlideChat Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	// A missing key is not fatal: the server boots and generation requests
	// are answered with the configuration error instead.
	var generation *services.GenerationService
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠ GEMINI_API_KEY not set; generation requests will be rejected")
	} else {
		gemini, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature, cfg.GeminiConcurrentReqs)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)

		// ──── Step 3: Initialize Preview Renderer (optional) ────
		var renderer services.PreviewRenderer
		if cfg.PreviewEnabled {
			pr, err := preview.NewRenderer(time.Duration(cfg.PreviewTimeoutSeconds) * time.Second)
			if err != nil {
				log.Printf("⚠ Slide previews disabled: %v", err)
			} else {
				defer pr.Close()
				renderer = pr
				log.Println("✓ Preview renderer started (headless Chrome)")
			}
		}

		generation = services.NewGenerationService(gemini, renderer)
	}

	// ──── Step 4: Initialize Sessions and Handlers ────
	var sessions *session.Manager
	var chatHandler *handlers.ChatHandler
	if generation != nil {
		sessions = session.NewManager(generation)
		chatHandler = handlers.NewChatHandler(generation)
	} else {
		sessions = session.NewManager(nil)
		chatHandler = handlers.NewChatHandler(nil)
	}
	sessionHandler := handlers.NewSessionHandler(sessions)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(chatHandler, sessionHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation round trips are slow
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

	log.Printf("✓ SlideChat Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
