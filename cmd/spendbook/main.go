package main

import (
	"fmt"
	"os"

	"spendbook/internal/app"
	"spendbook/internal/config"
	"spendbook/internal/database"
	"spendbook/internal/logger"
	"spendbook/internal/services"
	"spendbook/internal/tui"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to open the expense store: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := dbManager.SeedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	db := dbManager.DB()
	terminal := tui.New(os.Stdin, os.Stdout)
	controller := app.NewController(
		app.NewSession(),
		terminal,
		services.NewUserDirectory(db),
		services.NewCategoryDirectory(db),
		services.NewExpenseLedger(db),
		appConfig.ExportDir,
	)
	terminal.Bind(controller)

	log.Infow("starting expense tracker", "driver", appConfig.DBDriver, "export_dir", appConfig.ExportDir)
	return terminal.Run()
}
