package models

import "fmt"

// NotAvailable is the marker published for result fields that no source
// could supply. Consumers render it verbatim; it is never an empty string.
const NotAvailable = "n/a"

// Track represents a candidate track from the primary catalog search.
//
// Popularity values are on Spotify's 0-100 scale; zero means unknown and
// contributes nothing to ranking. ArtistPopularity and Genres are only
// populated by the full-record fetch, not by search responses.
type Track struct {
	ID               string
	Title            string
	Artist           string
	Album            string
	AlbumReleaseDate string
	ArtworkURL       string
	TrackURL         string // canonical web URL, input to link resolution
	ISRC             string
	DurationMS       int
	Popularity       int
	ArtistPopularity int
	Genres           []string
	Label            string
	Copyright        string
}

// Credits holds per-track supplementary metadata from the credits lookup.
// Every field is optional; the zero value is the canonical empty record.
type Credits struct {
	Songwriter  string
	Producer    string
	Album       string
	ReleaseDate string
	Genre       string
	Duration    string
	Label       string
	Copyright   string
}

// IsEmpty reports whether no field of the record is populated.
func (c Credits) IsEmpty() bool {
	return c == Credits{}
}

// PlatformLink is a single platform entry with an optional web URL and an
// optional native app deep link.
type PlatformLink struct {
	WebURL    string `json:"web_url,omitempty"`
	NativeURL string `json:"native_url,omitempty"`
}

// PlatformLinks carries cross-platform links for one track. Nil entries mean
// the track is not available on that platform (or resolution failed).
type PlatformLinks struct {
	AppleMusic *PlatformLink `json:"apple_music,omitempty"`
	Spotify    *PlatformLink `json:"spotify,omitempty"`
	Tidal      *PlatformLink `json:"tidal,omitempty"`
	YouTube    *PlatformLink `json:"youtube,omitempty"`
}

// SearchResult is the published output unit: a ranked candidate's identity
// fields merged with its enrichment record.
type SearchResult struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	Album       string        `json:"album"`
	ReleaseDate string        `json:"release_date"`
	Songwriter  string        `json:"songwriter"`
	Producer    string        `json:"producer"`
	Genre       string        `json:"genre"`
	Duration    string        `json:"duration"`
	Label       string        `json:"label"`
	Copyright   string        `json:"copyright"`
	ArtworkURL  string        `json:"artwork_url,omitempty"`
	ISRC        string        `json:"isrc,omitempty"`
	Links       PlatformLinks `json:"links"`
}

// FormatDuration renders a millisecond duration as "m:ss".
func FormatDuration(ms int) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
