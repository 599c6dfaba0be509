package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// CacheList prints a summary of every cached query.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	queries, err := repo.ListQueries()
	if err != nil {
		return fmt.Errorf("failed to list cached queries: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(queries, cmd.Bool("pretty"))
	}

	if len(queries) == 0 {
		return r.writePlain("No cached queries.\n")
	}

	for _, q := range queries {
		r.writePlain("%s (%d results, cached %s)\n", q.Query, q.Results, q.CachedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// CacheShow replays the cached results for one query.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	db, repo, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := repo.GetByQuery(query)
	if err != nil {
		return fmt.Errorf("failed to read cached results: %w", err)
	}

	if len(results) == 0 {
		return r.writePlain("No cached results for %q.\n", query)
	}

	format := cmd.String("format")
	if cmd.Bool("json") {
		format = "json"
	}
	return r.render(query, results, format, cmd.Bool("pretty"), "")
}

// CacheClear removes cached results, either for one query or entirely.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	if query := cmd.String("query"); query != "" {
		if err := repo.DeleteQuery(query); err != nil {
			return err
		}
		r.logger.Info("cache entry removed", "query", query)
		return r.writePlain("✓ Removed cached results for %q\n", query)
	}

	if err := repo.Clear(); err != nil {
		return err
	}
	r.logger.Info("result cache cleared")
	return r.writePlain("✓ Result cache cleared\n")
}

// cacheCommand handles the local result cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and manage locally cached search results",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached queries",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "show",
				Usage: "Print the cached results for a query",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json, csv, markdown",
						Value:   "text",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.CacheShow,
			},
			{
				Name:  "clear",
				Usage: "Remove cached results",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "query",
						Usage: "Remove only this query's results",
					},
				},
				Action: r.CacheClear,
			},
		},
	}
}
