package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/leonardonapoless/PAMS/internal/ranking"
	"github.com/leonardonapoless/PAMS/internal/repositories"
	"github.com/leonardonapoless/PAMS/internal/search"
	"github.com/leonardonapoless/PAMS/internal/services"
	"github.com/leonardonapoless/PAMS/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.CatalogService
	links      services.LinkResolver
	credits    services.CreditsService
	ranker     *ranking.Ranker
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.CatalogService
	Links      services.LinkResolver
	Credits    services.CreditsService
	Ranker     *ranking.Ranker
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Ranker == nil {
		opts.Ranker = ranking.NewRanker()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		links:      opts.Links,
		credits:    opts.Credits,
		ranker:     opts.Ranker,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the Runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, searchCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// newOrchestrator wires the Runner's services into a search orchestrator
// publishing to the given channel.
func (r *Runner) newOrchestrator(updates chan<- search.Update, cache search.ResultCacher) (*search.Orchestrator, error) {
	if r.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized (check Spotify credentials)", shared.ErrMissingCredentials)
	}

	return search.NewOrchestrator(search.OrchestratorOpts{
		Catalog: r.catalog,
		Links:   r.links,
		Credits: r.credits,
		Ranker:  r.ranker,
		Logger:  r.logger,
		Updates: updates,
		Cache:   cache,
	}), nil
}

// openCache opens the result cache database and ensures the schema exists.
// The caller owns the returned handle.
func (r *Runner) openCache() (*sql.DB, *repositories.ResultRepository, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open result cache: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, repositories.NewResultRepository(db), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
