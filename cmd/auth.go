package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/leonardonapoless/PAMS/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthStatus verifies the configured Spotify credentials by issuing a
// minimal catalog search with the client-credentials grant.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		r.writePlain("✗ Spotify credentials not configured\n")
		r.writePlain("Add client_id and client_secret to config.toml and retry.\n")
		return fmt.Errorf("%w: spotify client_id and client_secret", shared.ErrMissingCredentials)
	}

	r.logger.Info("checking catalog credentials", "catalog", r.catalog.Name())

	if _, err := r.catalog.SearchTracks(ctx, "test"); err != nil {
		if errors.Is(err, shared.ErrAuthFailed) {
			r.writePlain("✗ Authentication failed\n")
			return err
		}
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("✓ Authenticated with %s\n", r.catalog.Name())
	return nil
}

// authCommand handles credential checks
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Credential management",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Verify the configured Spotify credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}
