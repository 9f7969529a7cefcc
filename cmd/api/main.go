package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trialsize/adapters/api"
	"trialsize/internal/config"
	"trialsize/internal/container"
	"trialsize/internal/server"
)

func main() {
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	srv, err := api.NewServer(api.Config{
		Port:    appConfig.Server.APIPort,
		GinMode: appConfig.Server.GinMode,
	}, appContainer.Calculator, appContainer.Logger)
	if err != nil {
		log.Fatal("Failed to create API server:", err)
	}
	srv.WithScenarioSource(appConfig.Data.ScenarioFile, appContainer.Scenarios)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer.Logger.Info("Starting trialsize API on http://localhost:%s", appConfig.Server.APIPort)
	if err := server.Run(ctx, appContainer.Logger, appConfig.Server.ShutdownTimeout, srv.HTTPServer()); err != nil {
		log.Fatal(err)
	}
}
