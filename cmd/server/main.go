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

	"bertmill/hyrox-app/internal/api"
	"bertmill/hyrox-app/internal/config"
	"bertmill/hyrox-app/internal/llm"
	"bertmill/hyrox-app/internal/plan"
	"bertmill/hyrox-app/internal/repository/mongo"
	"bertmill/hyrox-app/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Hyrox Training App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	if cfg.OpenAI.APIKey == "" {
		log.Println("WARN: No OpenAI API key configured; chat requests will fail until one is set.")
	}

	// --- Training Plan ---
	startDate := plan.DefaultStartDate
	if cfg.Plan.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", cfg.Plan.StartDate)
		if err != nil {
			log.Fatalf("FATAL: Invalid plan start date %q: %v", cfg.Plan.StartDate, err)
		}
		startDate = parsed
	}
	weeks := plan.FullPlan(startDate)
	var sessionIDs []string
	for _, week := range weeks {
		for _, session := range week.Sessions {
			sessionIDs = append(sessionIDs, session.ID)
		}
	}
	log.Printf("Training plan generated: %d weeks, %d sessions.", len(weeks), len(sessionIDs))

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureCompletionIndexes(ctx, appDB.Collection("completed_sessions"))
		mongo.EnsureNoteIndexes(ctx, appDB.Collection("session_notes"))
		mongo.EnsureFeedbackIndexes(ctx, appDB.Collection("feedback"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	completionRepo := mongo.NewMongoCompletionRepository(appDB)
	noteRepo := mongo.NewMongoNoteRepository(appDB)
	feedbackRepo := mongo.NewMongoFeedbackRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Admin.Email)
	sessionService := service.NewSessionService(completionRepo, noteRepo, sessionIDs)
	feedbackService := service.NewFeedbackService(feedbackRepo)
	coachService := service.NewCoachService(llm.NewOpenAIClient(llm.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	}))

	// --- Start Completion Change Feed ---
	// Feeds the session service's push channel from the Mongo change stream.
	feedCtx, cancelFeed := context.WithCancel(context.Background())
	defer cancelFeed()
	go func() {
		if err := sessionService.Run(feedCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("ERROR: Completion change feed stopped: %v", err)
		}
	}()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	planHandler := api.NewPlanHandler(plan.DefaultAthlete, weeks)
	api.SetupRoutes(router, cfg.JWT.Secret, authService, sessionService, feedbackService, coachService, planHandler)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
		// No WriteTimeout: the chat relay and SSE push channel hold
		// connections open for as long as the upstream streams.
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancelFeed()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
