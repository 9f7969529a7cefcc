package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trialsize/adapters/api"
	"trialsize/internal/config"
	"trialsize/internal/container"
	"trialsize/internal/server"
	"trialsize/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	logger := appContainer.Logger

	uiApp, err := ui.NewApp(ui.Config{Port: appConfig.Server.UIPort}, appContainer.Calculator, logger)
	if err != nil {
		log.Fatalf("Failed to create UI app: %v", err)
	}

	apiServer, err := api.NewServer(api.Config{
		Port:    appConfig.Server.APIPort,
		GinMode: appConfig.Server.GinMode,
	}, appContainer.Calculator, logger)
	if err != nil {
		log.Fatalf("Failed to create API server: %v", err)
	}
	if appContainer.Scenarios != nil {
		apiServer.WithScenarioSource(appConfig.Data.ScenarioFile, appContainer.Scenarios)
		logger.Info("Serving scenario workbook %s at /api/v1/scenarios", appConfig.Data.ScenarioFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting trialsize: UI on http://localhost:%s, API on http://localhost:%s (critical values: %s)",
		appConfig.Server.UIPort, appConfig.Server.APIPort, appContainer.CriticalSource.Name())

	servers := []*http.Server{uiApp.Server(), apiServer.HTTPServer()}
	if err := server.Run(ctx, logger, appConfig.Server.ShutdownTimeout, servers...); err != nil {
		logger.Error("Server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
