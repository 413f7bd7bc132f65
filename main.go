package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"voice-connector/internal/config"
	"voice-connector/internal/domain/entities"
	Iservices "voice-connector/internal/domain/interfaces/services"
	"voice-connector/internal/infra/handlers"
	"voice-connector/internal/infra/logger"
	"voice-connector/internal/infra/provider"
	"voice-connector/internal/infra/repository"
	"voice-connector/internal/infra/routes"
	"voice-connector/internal/infra/services"
	"voice-connector/internal/middleware"
	client "voice-connector/internal/pkg"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	cfg := config.Load()

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	httpClient := &http.Client{}

	var agentConfigSvc Iservices.IAgentConfigService = services.NewAgentConfigService(cfg, log, httpClient)
	var transcriptSvc Iservices.ITranscriptService = services.NewTranscriptService(cfg, log, httpClient)

	var archiveSvc Iservices.IArchiveService
	if cfg.ArchiveEnabled {
		mongoClient := client.MongoClient(cfg.MongoURI)
		callRecordsDB := mongoClient.Database("VoiceCalls")
		callRecordRepo := repository.NewMongoRepository[entities.CallRecord](callRecordsDB)
		archiveSvc = services.NewArchiveService(callRecordRepo, log)
	}

	newModelSession := func() provider.IModelSession {
		return provider.NewRealtimeProvider(cfg, log)
	}

	mediaStreamHandler := handlers.NewMediaStreamHandler(log, agentConfigSvc, transcriptSvc, archiveSvc, newModelSession)

	routes := routes.NewRoutes(router, mediaStreamHandler)
	routes.Init()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Voice server is running on port %s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
