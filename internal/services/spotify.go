// Spotify API implementation of [CatalogService]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultSearchLimit = 20
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents an artist. Genres and popularity are only present
// on full artist objects, not in search payloads.
type SpotifyArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
}

type spotifyCopyright struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// SpotifyAlbum represents an album.
type SpotifyAlbum struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	ReleaseDate string             `json:"release_date"`
	Images      []SpotifyImage     `json:"images"`
	Label       string             `json:"label"`
	Copyrights  []spotifyCopyright `json:"copyrights"`
}

type externalIDs struct {
	ISRC string `json:"isrc"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack represents a track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	ExternalIDs  externalIDs     `json:"external_ids"`
	ExternalURLs externalURLs    `json:"external_urls"`
	Popularity   int             `json:"popularity"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyService implements [CatalogService] over the Spotify Web API using
// the client-credentials grant. The OAuth2 client caches the bearer token
// and refreshes it before expiry.
type SpotifyService struct {
	httpClient *http.Client
	baseURL    string
	limit      int
}

// NewSpotifyService creates a Spotify catalog service with the given
// credentials. Limit caps the candidate count per search; zero means the
// default of 20.
func NewSpotifyService(clientID, clientSecret string, limit int) (*SpotifyService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret are required", shared.ErrMissingCredentials)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		httpClient: conf.Client(context.Background()),
		baseURL:    spotifyBaseURL,
		limit:      limit,
	}, nil
}

func (s *SpotifyService) Name() string { return "Spotify" }

// doRequest performs an authenticated GET against the Spotify API and
// decodes the JSON response into result.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrAuthFailed, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// SearchTracks implements [CatalogService] via GET /search?type=track.
func (s *SpotifyService) SearchTracks(ctx context.Context, term string) ([]models.Track, error) {
	q := url.Values{}
	q.Set("q", term)
	q.Set("type", "track")
	q.Set("limit", strconv.Itoa(s.limit))

	var response spotifySearchResponse
	if err := s.doRequest(ctx, "/search?"+q.Encode(), &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks.Items))
	for _, item := range response.Tracks.Items {
		tracks = append(tracks, item.toModel())
	}

	return tracks, nil
}

// Track implements [CatalogService] via GET /tracks/{id}.
func (s *SpotifyService) Track(ctx context.Context, id string) (*models.Track, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: track id is required", shared.ErrInvalidInput)
	}

	var raw SpotifyTrack
	if err := s.doRequest(ctx, "/tracks/"+url.PathEscape(id), &raw); err != nil {
		return nil, err
	}

	track := raw.toModel()
	return &track, nil
}

// toModel maps a Spotify track payload to the domain candidate.
func (t SpotifyTrack) toModel() models.Track {
	track := models.Track{
		ID:               t.ID,
		Title:            t.Name,
		Album:            t.Album.Name,
		AlbumReleaseDate: t.Album.ReleaseDate,
		Label:            t.Album.Label,
		TrackURL:         t.ExternalURLs.Spotify,
		ISRC:             t.ExternalIDs.ISRC,
		DurationMS:       t.DurationMS,
		Popularity:       t.Popularity,
	}

	if len(t.Artists) > 0 {
		first := t.Artists[0]
		track.Artist = first.Name
		track.ArtistPopularity = first.Popularity
		track.Genres = first.Genres
	} else {
		track.Artist = "Unknown Artist"
	}

	if len(t.Album.Images) > 0 {
		track.ArtworkURL = t.Album.Images[0].URL
	}
	if len(t.Album.Copyrights) > 0 {
		track.Copyright = t.Album.Copyrights[0].Text
	}

	return track
}
