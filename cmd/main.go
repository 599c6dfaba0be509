package main

import (
	"context"
	"errors"
	"os"

	"github.com/leonardonapoless/PAMS/internal/services"
	"github.com/leonardonapoless/PAMS/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.CatalogService
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		svc, err := services.NewSpotifyService(
			config.Credentials.Spotify.ClientID,
			config.Credentials.Spotify.ClientSecret,
			config.Search.Limit,
		)
		if err != nil {
			logger.Warn("failed to initialize Spotify client", "error", err)
		} else {
			catalog = svc
		}
	}

	links := services.NewSonglinkService(config.Credentials.Songlink.BaseURL, nil)
	credits := services.NewMusicBrainzService(config.Credentials.MusicBrainz.UserAgent, config.Credentials.MusicBrainz.RateLimit, nil)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Links:   links,
		Credits: credits,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "pams",
		Usage:    "Search songs, rank results, and enrich them with credits & cross-platform links",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config and result cache database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
	}
}
