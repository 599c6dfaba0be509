package repositories

import (
	"database/sql"
	"testing"

	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleResults() []models.SearchResult {
	return []models.SearchResult{
		{
			ID:          "c1",
			Title:       "Shake It Out",
			Artist:      "Florence + The Machine",
			Album:       "Ceremonials",
			ReleaseDate: "2011-10-28",
			Songwriter:  "Florence Welch",
			Producer:    "Paul Epworth",
			Genre:       "art pop",
			Duration:    "4:37",
			Label:       "Island",
			Copyright:   "© 2011 Island Records",
			ISRC:        "GBUM71107229",
			Links: models.PlatformLinks{
				Spotify: &models.PlatformLink{WebURL: "https://open.spotify.com/track/c1"},
			},
		},
		{
			ID:         "c2",
			Title:      "Shake It Out - Acoustic",
			Artist:     "Florence + The Machine",
			Album:      models.NotAvailable,
			Songwriter: models.NotAvailable,
			Producer:   models.NotAvailable,
			Genre:      models.NotAvailable,
			Duration:   models.NotAvailable,
			Label:      models.NotAvailable,
			Copyright:  models.NotAvailable,
		},
	}
}

func TestResultRepository(t *testing.T) {
	t.Run("Cache And Retrieve In Order", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewResultRepository(db)
		if err := repo.CacheResults("shake it out", sampleResults()); err != nil {
			t.Fatalf("failed to cache results: %v", err)
		}

		cached, err := repo.GetByQuery("shake it out")
		if err != nil {
			t.Fatalf("failed to retrieve cached results: %v", err)
		}

		if len(cached) != 2 {
			t.Fatalf("expected 2 cached results, got %d", len(cached))
		}
		if cached[0].ID != "c1" || cached[1].ID != "c2" {
			t.Errorf("expected rank order [c1 c2], got [%s %s]", cached[0].ID, cached[1].ID)
		}
		if cached[0].Songwriter != "Florence Welch" {
			t.Errorf("expected songwriter preserved, got %q", cached[0].Songwriter)
		}
		if cached[0].Links.Spotify == nil || cached[0].Links.Spotify.WebURL != "https://open.spotify.com/track/c1" {
			t.Errorf("expected links round-tripped, got %+v", cached[0].Links)
		}
		if cached[1].Links.Spotify != nil {
			t.Errorf("expected empty links for second result, got %+v", cached[1].Links)
		}
	})

	t.Run("Recaching Replaces Previous Rows", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewResultRepository(db)
		if err := repo.CacheResults("shake it out", sampleResults()); err != nil {
			t.Fatalf("failed to cache results: %v", err)
		}
		if err := repo.CacheResults("shake it out", sampleResults()[:1]); err != nil {
			t.Fatalf("failed to recache results: %v", err)
		}

		cached, err := repo.GetByQuery("shake it out")
		if err != nil {
			t.Fatalf("failed to retrieve cached results: %v", err)
		}
		if len(cached) != 1 {
			t.Errorf("expected recache to replace rows, got %d results", len(cached))
		}
	})

	t.Run("Unknown Query Returns Empty", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewResultRepository(db)
		cached, err := repo.GetByQuery("never cached")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cached) != 0 {
			t.Errorf("expected no results, got %d", len(cached))
		}
	})

	t.Run("List Queries", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewResultRepository(db)
		if err := repo.CacheResults("shake it out", sampleResults()); err != nil {
			t.Fatalf("failed to cache results: %v", err)
		}
		if err := repo.CacheResults("helter skelter", sampleResults()[:1]); err != nil {
			t.Fatalf("failed to cache results: %v", err)
		}

		queries, err := repo.ListQueries()
		if err != nil {
			t.Fatalf("failed to list queries: %v", err)
		}
		if len(queries) != 2 {
			t.Fatalf("expected 2 cached queries, got %d", len(queries))
		}

		counts := map[string]int{}
		for _, q := range queries {
			counts[q.Query] = q.Results
		}
		if counts["shake it out"] != 2 || counts["helter skelter"] != 1 {
			t.Errorf("unexpected result counts: %v", counts)
		}
	})

	t.Run("Delete Query", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewResultRepository(db)
		if err := repo.CacheResults("shake it out", sampleResults()); err != nil {
			t.Fatalf("failed to cache results: %v", err)
		}

		if err := repo.DeleteQuery("shake it out"); err != nil {
			t.Fatalf("failed to delete query: %v", err)
		}

		cached, err := repo.GetByQuery("shake it out")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cached) != 0 {
			t.Errorf("expected query deleted, got %d results", len(cached))
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewResultRepository(db)
		if err := repo.CacheResults("shake it out", sampleResults()); err != nil {
			t.Fatalf("failed to cache results: %v", err)
		}
		if err := repo.CacheResults("helter skelter", sampleResults()[:1]); err != nil {
			t.Fatalf("failed to cache results: %v", err)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear cache: %v", err)
		}

		queries, err := repo.ListQueries()
		if err != nil {
			t.Fatalf("failed to list queries: %v", err)
		}
		if len(queries) != 0 {
			t.Errorf("expected empty cache, got %d queries", len(queries))
		}
	})
}
