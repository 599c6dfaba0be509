// Songlink (Odesli) implementation of [LinkResolver]
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/shared"
)

const defaultSonglinkBaseURL = "https://api.song.link/v1-alpha.1"

// songlinkPlatform keys within the links-by-platform payload.
const (
	platformAppleMusic = "appleMusic"
	platformSpotify    = "spotify"
	platformTidal      = "tidal"
	platformYouTube    = "youtube"
)

type songlinkEntry struct {
	URL                string `json:"url"`
	NativeAppURIMobile string `json:"nativeAppUriMobile"`
}

type songlinkResponse struct {
	LinksByPlatform map[string]songlinkEntry `json:"linksByPlatform"`
}

// SonglinkService implements [LinkResolver] over the Odesli links endpoint.
type SonglinkService struct {
	baseURL    string
	httpClient *http.Client
}

// NewSonglinkService creates a Songlink resolver. An empty baseURL selects
// the public Odesli endpoint; a nil client selects http.DefaultClient.
func NewSonglinkService(baseURL string, client *http.Client) *SonglinkService {
	if baseURL == "" {
		baseURL = defaultSonglinkBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SonglinkService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// Resolve implements [LinkResolver]. Any failure returns nil links together
// with the cause; callers treat absence as non-fatal.
func (s *SonglinkService) Resolve(ctx context.Context, trackURL string) (*models.PlatformLinks, error) {
	if trackURL == "" {
		return nil, fmt.Errorf("%w: track url is required", shared.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("%s/links?url=%s", s.baseURL, url.QueryEscape(trackURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: songlink returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var response songlinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.toModel(), nil
}

// toModel extracts the four platforms PAMS publishes.
func (r songlinkResponse) toModel() *models.PlatformLinks {
	pick := func(platform string) *models.PlatformLink {
		entry, ok := r.LinksByPlatform[platform]
		if !ok {
			return nil
		}
		return &models.PlatformLink{WebURL: entry.URL, NativeURL: entry.NativeAppURIMobile}
	}

	return &models.PlatformLinks{
		AppleMusic: pick(platformAppleMusic),
		Spotify:    pick(platformSpotify),
		Tidal:      pick(platformTidal),
		YouTube:    pick(platformYouTube),
	}
}
