package services

import (
	"context"

	"github.com/leonardonapoless/PAMS/internal/models"
)

// CatalogService is the primary candidate lookup. Its failures are the only
// collaborator failures fatal to a search session, and the core never
// retries them.
type CatalogService interface {
	// SearchTracks returns candidate tracks for a free-text term, in
	// catalog order. Errors wrap shared.ErrAuthFailed or shared.ErrAPIRequest.
	SearchTracks(ctx context.Context, term string) ([]models.Track, error)

	// Track fetches the full record for one candidate, used as the
	// fallback source for enrichment fields the credits lookup lacks.
	Track(ctx context.Context, id string) (*models.Track, error)

	// Name returns the catalog's display name (e.g. "Spotify").
	Name() string
}

// LinkResolver resolves a track's canonical web URL to its cross-platform
// links. Implementations return nil links on any failure; the error is for
// logging only and never fails a session.
type LinkResolver interface {
	Resolve(ctx context.Context, trackURL string) (*models.PlatformLinks, error)
}

// CreditsService looks up per-track credits by ISRC. Implementations return
// the canonical empty record on failure (and immediately, without a call,
// for an empty ISRC); the error is for logging only.
type CreditsService interface {
	Lookup(ctx context.Context, isrc string) (models.Credits, error)
}
