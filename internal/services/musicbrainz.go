// MusicBrainz implementation of [CreditsService]
//
// ISRC lookup documented at https://musicbrainz.org/doc/MusicBrainz_API
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultMusicBrainzBaseURL = "https://musicbrainz.org/ws/2"

	// Relations, releases, genres, and labels in one round trip.
	musicBrainzIncludes = "artist-credits+recording-level-rels+release-level-rels+genres+labels"
)

type mbArtist struct {
	Name string `json:"name"`
}

type mbRelation struct {
	Type   string   `json:"type"`
	Artist mbArtist `json:"artist"`
}

type mbGenre struct {
	Name string `json:"name"`
}

type mbLabel struct {
	Name string `json:"name"`
}

type mbLabelInfo struct {
	Label *mbLabel `json:"label"`
}

type mbArtistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
}

type mbRelease struct {
	Title         string           `json:"title"`
	Date          string           `json:"date"`
	LabelInfo     []mbLabelInfo    `json:"label-info"`
	ArtistCredits []mbArtistCredit `json:"artist-credit"`
}

type mbRecording struct {
	Relations   []mbRelation `json:"relations"`
	Genres      []mbGenre    `json:"genres"`
	LengthMS    int          `json:"length"`
	ReleaseList struct {
		Releases []mbRelease `json:"releases"`
	} `json:"release-list"`
}

type mbISRCResponse struct {
	Recordings []mbRecording `json:"recordings"`
}

// MusicBrainzService implements [CreditsService] over the MusicBrainz ISRC
// endpoint. One limiter is shared across concurrent lookups so a fan-out of
// twenty enrichment tasks still honors the 1 req/s policy.
type MusicBrainzService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewMusicBrainzService creates a MusicBrainz credits service. userAgent is
// mandatory per MusicBrainz policy; requestsPerSecond <= 0 selects 1.
func NewMusicBrainzService(userAgent string, requestsPerSecond float64, client *http.Client) *MusicBrainzService {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1.0
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &MusicBrainzService{
		baseURL:    defaultMusicBrainzBaseURL,
		userAgent:  userAgent,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Lookup implements [CreditsService]. An empty ISRC returns the empty record
// without a network call; any failure returns the empty record with the
// cause attached for logging.
func (s *MusicBrainzService) Lookup(ctx context.Context, isrc string) (models.Credits, error) {
	if isrc == "" {
		return models.Credits{}, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return models.Credits{}, err
	}

	endpoint := fmt.Sprintf("%s/isrc/%s?fmt=json&inc=%s", s.baseURL, isrc, musicBrainzIncludes)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Credits{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return models.Credits{}, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Credits{}, fmt.Errorf("%w: musicbrainz returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var response mbISRCResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return models.Credits{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Recordings) == 0 {
		return models.Credits{}, nil
	}

	return response.Recordings[0].toCredits(), nil
}

// toCredits flattens a recording payload into the domain record.
func (rec mbRecording) toCredits() models.Credits {
	credits := models.Credits{
		Songwriter: joinRelationArtists(rec.Relations, "songwriter"),
		Producer:   joinRelationArtists(rec.Relations, "producer"),
	}

	if len(rec.Genres) > 0 {
		credits.Genre = rec.Genres[0].Name
	}
	if rec.LengthMS > 0 {
		credits.Duration = models.FormatDuration(rec.LengthMS)
	}

	if len(rec.ReleaseList.Releases) > 0 {
		release := rec.ReleaseList.Releases[0]
		credits.Album = release.Title
		credits.ReleaseDate = release.Date

		if len(release.LabelInfo) > 0 && release.LabelInfo[0].Label != nil {
			credits.Label = release.LabelInfo[0].Label.Name
		}

		var copyright strings.Builder
		for _, credit := range release.ArtistCredits {
			copyright.WriteString(credit.Name)
			copyright.WriteString(credit.JoinPhrase)
		}
		credits.Copyright = copyright.String()
	}

	return credits
}

// joinRelationArtists collects the artists of one relation type into a
// comma-separated list.
func joinRelationArtists(relations []mbRelation, relType string) string {
	var names []string
	for _, rel := range relations {
		if rel.Type == relType {
			names = append(names, rel.Artist.Name)
		}
	}
	return strings.Join(names, ", ")
}
