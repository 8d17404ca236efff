package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cocode/playvault/internal/importer"
	"github.com/cocode/playvault/internal/repositories"
	"github.com/cocode/playvault/internal/shared"
	"github.com/cocode/playvault/internal/storage"
	"github.com/cocode/playvault/internal/store"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.ApplyLogLevel(logger, config.Log.Level)

	playlistStore, err := store.NewPlaylistStore(config.Library.Path)
	if err != nil {
		logger.Fatalf("failed to open library: %v", err)
	}

	resolver := storage.NewFileResolver()
	importService := importer.NewService(resolver, playlistStore, importer.ParseMode(config.Import.Mode), logger)
	repo := repositories.NewPlaylistRepository(playlistStore, importService, resolver, logger)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Store:    playlistStore,
		Resolver: resolver,
		Repo:     repo,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "playvault",
		Usage:    "Manage a local vault of imported media playlists",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write a starter config and initialize the history database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// openHistory opens the history database and ensures its schema exists.
func (r *Runner) openHistory() (*repositories.HistoryRepository, func(), error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return repositories.NewHistoryRepository(db), func() { db.Close() }, nil
}
