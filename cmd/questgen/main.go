package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexanderramin/questgen/internal/cli"
	"github.com/alexanderramin/questgen/internal/config"
	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/db"
	"github.com/alexanderramin/questgen/internal/repository"
	"github.com/alexanderramin/questgen/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	registry := prometheus.NewRegistry()
	metrics := service.NewMetricsObserver(registry)

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{Metrics: registry}

	// Detect interactive terminal for pick/explore and the import spinner.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Bootstrap = func(cfg config.Config) error {
		level, err := config.ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		observers := []service.UseCaseObserver{metrics}
		if cfg.LogUseCases {
			observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
		}
		observer := service.MultiUseCaseObserver(observers...)

		// Open the document store
		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		uow := db.NewSQLiteUnitOfWork(database)
		imports := repository.NewSQLiteDatasetImportRepo(database)

		var src dataset.Source = dataset.DirSource{Dir: cfg.DatasetDir}
		if cfg.UseDB {
			src = repository.NewSQLiteDatasetDocumentRepo(database)
		}

		quests, err := service.NewQuestService(src, service.QuestServiceOptions{
			CacheSize: cfg.CacheSize,
			Logger:    logger,
		}, observer)
		if err != nil {
			return err
		}

		app.Quests = quests
		app.Datasets = service.NewDatasetService(uow, imports, observer)
		return nil
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
