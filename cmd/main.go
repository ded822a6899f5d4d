package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"backend_architect/api"
	"backend_architect/config"
	"backend_architect/internal/ai"
	handlers "backend_architect/internal/api"
	"backend_architect/internal/render"
	"backend_architect/internal/session"
	"backend_architect/internal/types"
)

func main() {
	// --- Load .env file ---
	// Must run before viper reads the environment.
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// --- Dependency Initialization ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	generator, err := ai.New(cfg)
	if err != nil {
		log.Fatalf("Cannot create generator: %v", err)
	}

	defaultFramework, err := types.ParseFramework(cfg.DefaultFramework)
	if err != nil {
		log.Printf("WARN: %v, falling back to %s", err, types.DefaultFramework)
		defaultFramework = types.DefaultFramework
	}

	policy := session.Policy{
		ClearResultOnError:          cfg.ClearResultOnError,
		RegenerateOnFrameworkChange: cfg.RegenerateOnFrameworkChange,
	}
	sessions, err := session.NewManager(cfg.SessionCacheSize, generator, policy, cfg.DefaultPrompt, defaultFramework)
	if err != nil {
		log.Fatalf("Cannot create session manager: %v", err)
	}

	tmpl, err := render.Templates()
	if err != nil {
		log.Fatalf("Cannot parse page templates: %v", err)
	}

	apiHandler := handlers.NewAPIHandler(ctx, sessions, generator, render.Options{CopyAck: cfg.CopyAckDuration()})

	// --- Start API Server ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, tmpl, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Generation is asynchronous, so requests stay short.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting Backend Architect on %s (provider %s)\n", cfg.ServerAddress, cfg.LLMProvider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	// Abandon in-flight generations; their results would never be rendered.
	log.Println("Cancelling in-flight generations...")
	cancel()

	log.Println("Shutting down API server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
