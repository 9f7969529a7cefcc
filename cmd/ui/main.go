package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trialsize/internal/config"
	"trialsize/internal/container"
	"trialsize/internal/server"
	"trialsize/ui"
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

	app, err := ui.NewApp(ui.Config{Port: appConfig.Server.UIPort}, appContainer.Calculator, appContainer.Logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer.Logger.Info("Starting trialsize UI on http://localhost:%s", appConfig.Server.UIPort)
	if err := server.Run(ctx, appContainer.Logger, appConfig.Server.ShutdownTimeout, app.Server()); err != nil {
		log.Fatal(err)
	}
}
