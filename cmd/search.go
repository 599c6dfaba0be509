package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/leonardonapoless/PAMS/internal/formatter"
	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/search"
	"github.com/leonardonapoless/PAMS/internal/shared"
	"github.com/urfave/cli/v3"
)

// searchTimeout bounds one CLI search end to end, enrichment included.
const searchTimeout = 60 * time.Second

// Search runs one query to completion and renders the ranked, enriched
// results in the requested format.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	format := cmd.String("format")
	if cmd.Bool("json") {
		format = "json"
	}

	if cmd.Bool("no-enrich") {
		return r.searchBare(ctx, cmd, query, format)
	}

	var cache search.ResultCacher
	if db, repo, err := r.openCache(); err != nil {
		r.logger.Warn("result cache unavailable", "err", err)
	} else {
		defer db.Close()
		cache = repo
	}

	updates := make(chan search.Update, 64)
	orch, err := r.newOrchestrator(updates, cache)
	if err != nil {
		return err
	}

	r.logger.Info("searching", "query", query)
	orch.SubmitQuery(query)

	timeout := time.After(searchTimeout)
	for {
		select {
		case update := <-updates:
			if !update.Status.Terminal() {
				continue
			}
			switch update.Status {
			case search.StatusFailed:
				return fmt.Errorf("%w: %s", shared.ErrAPIRequest, update.Message)
			case search.StatusEmpty:
				return r.writePlain("%s\n", update.Message)
			}
			return r.render(query, update.Results, format, cmd.Bool("pretty"), cmd.String("output"))
		case <-timeout:
			return fmt.Errorf("%w: search timed out", shared.ErrServiceUnavailable)
		}
	}
}

// searchBare skips enrichment entirely: catalog search and ranking only.
func (r *Runner) searchBare(ctx context.Context, cmd *cli.Command, query, format string) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog service not initialized (check Spotify credentials)", shared.ErrMissingCredentials)
	}

	candidates, err := r.catalog.SearchTracks(ctx, query)
	if err != nil {
		return fmt.Errorf("catalog search failed: %w", err)
	}

	ranked := r.ranker.Rank(candidates, query)
	if len(ranked) == 0 {
		return r.writePlain("no results found for %q\n", query)
	}

	results := make([]models.SearchResult, 0, len(ranked))
	for _, track := range ranked {
		results = append(results, search.BareResult(track))
	}

	return r.render(query, results, format, cmd.Bool("pretty"), cmd.String("output"))
}

// render writes results in the requested format to the output file, or the
// Runner's writer when no file is given.
func (r *Runner) render(query string, results []models.SearchResult, format string, pretty bool, outputPath string) error {
	var data []byte
	var err error

	switch format {
	case "json":
		data, err = formatter.ToJSON(results, pretty)
	case "csv":
		data, err = formatter.ExportToCSV(results)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(query, results)
	case "text", "":
		data, err = formatter.ExportToText(query, results)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return r.writePlain("✓ Results written to %s\n", outputPath)
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// searchCommand handles one-shot searches from the command line
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search for a song and print ranked, enriched results",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, csv, markdown",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON (shorthand for --format json)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "no-enrich",
				Usage: "Skip credits, links, and full-record lookups",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write rendered results to a file",
			},
		},
		Action: r.Search,
	}
}
