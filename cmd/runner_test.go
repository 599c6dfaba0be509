package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/shared"
	tu "github.com/leonardonapoless/PAMS/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner builds a Runner with mocked services, a buffer for output,
// and a throwaway database path.
func newTestRunner(t *testing.T, catalog *tu.MockCatalog) (*Runner, *bytes.Buffer) {
	t.Helper()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "pams-test.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Links:   &tu.MockLinks{},
		Credits: &tu.MockCredits{},
		Logger:  shared.NewLogger(&bytes.Buffer{}),
		Output:  output,
	})
	return runner, output
}

func runApp(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "pams",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"pams"}, args...))
}

func helloCatalog(trackCalls *int32) *tu.MockCatalog {
	return &tu.MockCatalog{
		SearchFunc: func(ctx context.Context, term string) ([]models.Track, error) {
			return []models.Track{
				{ID: "c1", Title: "hello", Artist: "Artist One", Album: "Album", ISRC: "I1", TrackURL: "https://example.com/c1"},
			}, nil
		},
		TrackFunc: func(ctx context.Context, id string) (*models.Track, error) {
			if trackCalls != nil {
				atomic.AddInt32(trackCalls, 1)
			}
			return &models.Track{ID: id, DurationMS: 180000}, nil
		},
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := &tu.MockCatalog{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    catalog,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil ranker uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Ranker: nil})
			if runner.ranker == nil {
				t.Error("expected default ranker to be set")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("returns error on write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected write error")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("count: %d\n", 3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "count: 3\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("renders enriched results as JSON", func(t *testing.T) {
		runner, output := newTestRunner(t, helloCatalog(nil))

		if err := runApp(t, runner, "search", "--json", "hello"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `"id": "c1"`) {
			t.Errorf("expected result id in JSON, got %s", result)
		}
		if !strings.Contains(result, `"duration": "3:00"`) {
			t.Errorf("expected duration from full record, got %s", result)
		}
		if !strings.Contains(result, `"songwriter": "n/a"`) {
			t.Errorf("expected unavailable marker, got %s", result)
		}
	})

	t.Run("no-enrich skips supplementary lookups", func(t *testing.T) {
		var trackCalls int32
		runner, output := newTestRunner(t, helloCatalog(&trackCalls))

		if err := runApp(t, runner, "search", "--no-enrich", "--format", "csv", "hello"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if atomic.LoadInt32(&trackCalls) != 0 {
			t.Errorf("expected no full-record fetches, got %d", trackCalls)
		}
		result := output.String()
		if !strings.Contains(result, "ID,Title,Artist") {
			t.Errorf("expected CSV headers, got %s", result)
		}
		if !strings.Contains(result, "c1,hello,Artist One") {
			t.Errorf("expected CSV row, got %s", result)
		}
	})

	t.Run("writes rendered results to a file", func(t *testing.T) {
		runner, output := newTestRunner(t, helloCatalog(nil))
		path := filepath.Join(t.TempDir(), "results.md")

		if err := runApp(t, runner, "search", "--format", "markdown", "--output", path, "hello"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		tu.AssertFileExists(t, path)
		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, `# Results for "hello"`) {
			t.Errorf("expected markdown heading, got %s", content)
		}
		if !strings.Contains(output.String(), "✓ Results written to") {
			t.Errorf("expected confirmation message, got %s", output.String())
		}
	})

	t.Run("missing query returns error", func(t *testing.T) {
		runner, _ := newTestRunner(t, helloCatalog(nil))

		err := runApp(t, runner, "search", "   ")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected missing argument error, got %v", err)
		}
	})

	t.Run("unknown format returns error", func(t *testing.T) {
		runner, _ := newTestRunner(t, helloCatalog(nil))

		err := runApp(t, runner, "search", "--format", "yaml", "hello")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected invalid flag error, got %v", err)
		}
	})

	t.Run("without catalog returns credentials error", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Database.Path = filepath.Join(t.TempDir(), "pams-test.db")
		runner := NewRunner(RunnerOpts{
			Config: config,
			Logger: shared.NewLogger(&bytes.Buffer{}),
			Output: &bytes.Buffer{},
		})

		err := runApp(t, runner, "search", "hello")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected missing credentials error, got %v", err)
		}
	})

	t.Run("catalog failure surfaces as error", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			SearchFunc: func(ctx context.Context, term string) ([]models.Track, error) {
				return nil, shared.ErrAPIRequest
			},
		}
		runner, _ := newTestRunner(t, catalog)

		if err := runApp(t, runner, "search", "hello"); err == nil {
			t.Error("expected error when catalog fails")
		}
	})

	t.Run("no results prints message", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCatalog{})

		if err := runApp(t, runner, "search", "hello"); err != nil {
			t.Fatalf("expected no error for empty result, got %v", err)
		}
		if !strings.Contains(output.String(), `no results found for "hello"`) {
			t.Errorf("expected empty message, got %s", output.String())
		}
	})
}

func TestCacheCommands(t *testing.T) {
	t.Run("list on empty cache", func(t *testing.T) {
		runner, output := newTestRunner(t, helloCatalog(nil))

		if err := runApp(t, runner, "cache", "list"); err != nil {
			t.Fatalf("cache list failed: %v", err)
		}
		if !strings.Contains(output.String(), "No cached queries.") {
			t.Errorf("expected empty-cache message, got %s", output.String())
		}
	})

	t.Run("search populates cache, show replays it", func(t *testing.T) {
		runner, output := newTestRunner(t, helloCatalog(nil))

		if err := runApp(t, runner, "search", "hello"); err != nil {
			t.Fatalf("search failed: %v", err)
		}
		output.Reset()

		if err := runApp(t, runner, "cache", "list"); err != nil {
			t.Fatalf("cache list failed: %v", err)
		}
		if !strings.Contains(output.String(), "hello (1 results") {
			t.Errorf("expected cached query summary, got %s", output.String())
		}
		output.Reset()

		if err := runApp(t, runner, "cache", "show", "hello"); err != nil {
			t.Fatalf("cache show failed: %v", err)
		}
		if !strings.Contains(output.String(), "1. Artist One - hello") {
			t.Errorf("expected cached result rendering, got %s", output.String())
		}
	})

	t.Run("clear removes cached results", func(t *testing.T) {
		runner, output := newTestRunner(t, helloCatalog(nil))

		if err := runApp(t, runner, "search", "hello"); err != nil {
			t.Fatalf("search failed: %v", err)
		}
		output.Reset()

		if err := runApp(t, runner, "cache", "clear"); err != nil {
			t.Fatalf("cache clear failed: %v", err)
		}
		output.Reset()

		if err := runApp(t, runner, "cache", "show", "hello"); err != nil {
			t.Fatalf("cache show failed: %v", err)
		}
		if !strings.Contains(output.String(), `No cached results for "hello".`) {
			t.Errorf("expected cleared cache, got %s", output.String())
		}
	})
}

func TestAuthStatus(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		runner, output := newTestRunner(t, helloCatalog(nil))

		if err := runApp(t, runner, "auth", "status"); err != nil {
			t.Fatalf("auth status failed: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Authenticated with mock") {
			t.Errorf("expected success message, got %s", output.String())
		}
	})

	t.Run("auth failure", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			SearchFunc: func(ctx context.Context, term string) ([]models.Track, error) {
				return nil, shared.ErrAuthFailed
			},
		}
		runner, output := newTestRunner(t, catalog)

		err := runApp(t, runner, "auth", "status")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected auth failure, got %v", err)
		}
		if !strings.Contains(output.String(), "✗ Authentication failed") {
			t.Errorf("expected failure message, got %s", output.String())
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Config: shared.DefaultConfig(),
			Logger: shared.NewLogger(&bytes.Buffer{}),
			Output: &bytes.Buffer{},
		})

		err := runApp(t, runner, "auth", "status")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected missing credentials error, got %v", err)
		}
	})
}

func TestSetupCommand(t *testing.T) {
	t.Run("initializes database from existing config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		dbPath := filepath.Join(dir, "pams.db")

		conf := fmt.Sprintf("[database]\npath = %q\nmax_open_conns = 2\nmax_idle_conns = 1\n", dbPath)
		if err := os.WriteFile(configPath, []byte(conf), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner, _ := newTestRunner(t, helloCatalog(nil))

		if err := runApp(t, runner, "setup", "--config", configPath); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, dbPath)
	})
}
