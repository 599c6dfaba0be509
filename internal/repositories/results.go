package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/shared"
)

// ResultRepository persists published result sets keyed by query.
type ResultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new ResultRepository with the given database connection
func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// CachedQuery summarizes one cached result set.
type CachedQuery struct {
	Query    string
	Results  int
	CachedAt time.Time
}

// CacheResults replaces the cached rows for a query with the given ordered
// result list. The whole replacement runs in one transaction.
func (r *ResultRepository) CacheResults(query string, results []models.SearchResult) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cached_results WHERE query = ?", query); err != nil {
		return fmt.Errorf("failed to clear previous results: %w", err)
	}

	stmt := `
		INSERT INTO cached_results (id, query, position, track_id, title, artist, album, release_date,
			songwriter, producer, genre, duration, label, copyright, artwork_url, isrc, links_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for position, result := range results {
		links, err := json.Marshal(result.Links)
		if err != nil {
			return fmt.Errorf("failed to encode links: %w", err)
		}

		_, err = tx.Exec(stmt,
			shared.GenerateID(),
			query,
			position,
			result.ID,
			result.Title,
			result.Artist,
			result.Album,
			result.ReleaseDate,
			result.Songwriter,
			result.Producer,
			result.Genre,
			result.Duration,
			result.Label,
			result.Copyright,
			result.ArtworkURL,
			result.ISRC,
			string(links),
		)
		if err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result cache: %w", err)
	}

	return nil
}

// GetByQuery retrieves the cached results for a query in rank order.
// Returns an empty slice when the query has never been cached.
func (r *ResultRepository) GetByQuery(query string) ([]models.SearchResult, error) {
	stmt := `
		SELECT track_id, title, artist, album, release_date, songwriter, producer,
			genre, duration, label, copyright, artwork_url, isrc, links_json
		FROM cached_results
		WHERE query = ?
		ORDER BY position
	`

	rows, err := r.db.Query(stmt, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached results: %w", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var result models.SearchResult
		var links string

		err := rows.Scan(
			&result.ID,
			&result.Title,
			&result.Artist,
			&result.Album,
			&result.ReleaseDate,
			&result.Songwriter,
			&result.Producer,
			&result.Genre,
			&result.Duration,
			&result.Label,
			&result.Copyright,
			&result.ArtworkURL,
			&result.ISRC,
			&links,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached result: %w", err)
		}

		if err := json.Unmarshal([]byte(links), &result.Links); err != nil {
			return nil, fmt.Errorf("failed to decode links: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached results: %w", err)
	}

	return results, nil
}

// ListQueries returns a summary of every cached query, most recent first.
func (r *ResultRepository) ListQueries() ([]CachedQuery, error) {
	stmt := `
		SELECT query, COUNT(*), MAX(created_at)
		FROM cached_results
		GROUP BY query
		ORDER BY MAX(created_at) DESC
	`

	rows, err := r.db.Query(stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached queries: %w", err)
	}
	defer rows.Close()

	var queries []CachedQuery
	for rows.Next() {
		var q CachedQuery
		var cachedAt string
		if err := rows.Scan(&q.Query, &q.Results, &cachedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cached query: %w", err)
		}
		// MAX() loses the column's declared type, so the driver hands the
		// timestamp back as text.
		q.CachedAt, _ = time.Parse("2006-01-02 15:04:05", cachedAt)
		queries = append(queries, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached queries: %w", err)
	}

	return queries, nil
}

// DeleteQuery removes the cached rows for one query.
func (r *ResultRepository) DeleteQuery(query string) error {
	if _, err := r.db.Exec("DELETE FROM cached_results WHERE query = ?", query); err != nil {
		return fmt.Errorf("failed to delete cached query: %w", err)
	}
	return nil
}

// Clear removes every cached result.
func (r *ResultRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM cached_results"); err != nil {
		return fmt.Errorf("failed to clear result cache: %w", err)
	}
	return nil
}
