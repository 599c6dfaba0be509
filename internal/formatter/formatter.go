// package formatter provides functions to render search results in various formats (plain text, CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/shared"
)

// ExportToCSV converts search results to CSV format, one row per result in rank order
func ExportToCSV(results []models.SearchResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Release Date", "Songwriter", "Producer", "Genre", "Duration", "Label", "Copyright", "ISRC"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range results {
		record := []string{
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
			result.ISRC,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts search results to a Markdown document headed by the query
func ExportToMarkdown(query string, results []models.SearchResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Results for %q\n\n", query))
	buf.WriteString(fmt.Sprintf("**Results**: %d\n\n", len(results)))

	for i, result := range results {
		buf.WriteString(fmt.Sprintf("## %d. %s - %s\n\n", i+1, result.Artist, result.Title))
		buf.WriteString(fmt.Sprintf("- **Album**: %s (%s)\n", result.Album, result.ReleaseDate))
		buf.WriteString(fmt.Sprintf("- **Songwriter**: %s\n", result.Songwriter))
		buf.WriteString(fmt.Sprintf("- **Producer**: %s\n", result.Producer))
		buf.WriteString(fmt.Sprintf("- **Genre**: %s\n", result.Genre))
		buf.WriteString(fmt.Sprintf("- **Duration**: %s\n", result.Duration))
		buf.WriteString(fmt.Sprintf("- **Label**: %s\n", result.Label))
		buf.WriteString(fmt.Sprintf("- **Copyright**: %s\n", result.Copyright))

		if links := formatLinks(result.Links); links != "" {
			buf.WriteString(fmt.Sprintf("- **Listen**: %s\n", links))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts search results to the plain text rendering used by CLI output
func ExportToText(query string, results []models.SearchResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Results for %q (%d)\n\n", query, len(results)))

	for i, result := range results {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, result.Artist, result.Title))
		buf.WriteString(fmt.Sprintf("   Album: %s (%s)\n", result.Album, result.ReleaseDate))
		buf.WriteString(fmt.Sprintf("   Songwriter: %s | Producer: %s\n", result.Songwriter, result.Producer))
		buf.WriteString(fmt.Sprintf("   Genre: %s | Duration: %s\n", result.Genre, result.Duration))
		buf.WriteString(fmt.Sprintf("   Label: %s\n", result.Label))

		if links := formatLinks(result.Links); links != "" {
			buf.WriteString(fmt.Sprintf("   Listen: %s\n", links))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToJSON generates a JSON representation of the result list
func ToJSON(results []models.SearchResult, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(results, pretty)
}

// formatLinks renders the available platform links as "Name: URL" pairs
// separated by " | ". Platforms without a web URL are omitted.
func formatLinks(links models.PlatformLinks) string {
	var buf bytes.Buffer

	entries := []struct {
		name string
		link *models.PlatformLink
	}{
		{"Apple Music", links.AppleMusic},
		{"Spotify", links.Spotify},
		{"Tidal", links.Tidal},
		{"YouTube", links.YouTube},
	}

	for _, entry := range entries {
		if entry.link == nil || entry.link.WebURL == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(" | ")
		}
		buf.WriteString(fmt.Sprintf("%s: %s", entry.name, entry.link.WebURL))
	}

	return buf.String()
}
