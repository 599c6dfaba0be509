package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/ranking"
	"github.com/leonardonapoless/PAMS/internal/services"
	"github.com/leonardonapoless/PAMS/internal/shared"
	"golang.org/x/sync/errgroup"
)

// failedMessage is the single user-facing message for fatal catalog
// failures, auth or transport alike.
const failedMessage = "search failed. check your connection."

// ResultCacher persists published results. Writes are best-effort; failures
// are logged and never surface.
type ResultCacher interface {
	CacheResults(query string, results []models.SearchResult) error
}

// OrchestratorOpts contains the dependencies for creating an Orchestrator.
// Ranker and Logger receive defaults when nil; Updates and Cache are
// optional, and sends on Updates never block.
type OrchestratorOpts struct {
	Catalog services.CatalogService
	Links   services.LinkResolver
	Credits services.CreditsService
	Ranker  *ranking.Ranker
	Logger  *log.Logger
	Updates chan<- Update
	Cache   ResultCacher
}

// Orchestrator manages the lifecycle of the current search. At most one
// session is current at any instant; submitting a query supersedes the
// previous session and discards whatever it still produces.
type Orchestrator struct {
	catalog services.CatalogService
	links   services.LinkResolver
	credits services.CreditsService
	ranker  *ranking.Ranker
	logger  *log.Logger
	updates chan<- Update
	cache   ResultCacher

	mu       sync.Mutex
	current  *session
	snapshot Snapshot
}

// NewOrchestrator creates an Orchestrator with the provided dependencies.
func NewOrchestrator(opts OrchestratorOpts) *Orchestrator {
	if opts.Ranker == nil {
		opts.Ranker = ranking.NewRanker()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Orchestrator{
		catalog:  opts.Catalog,
		links:    opts.Links,
		credits:  opts.Credits,
		ranker:   opts.Ranker,
		logger:   opts.Logger,
		updates:  opts.Updates,
		cache:    opts.Cache,
		snapshot: Snapshot{Status: StatusIdle},
	}
}

// SubmitQuery starts a new search for the raw query, superseding any
// in-flight session. Fire-and-forget: the outcome arrives via the updates
// channel and [Orchestrator.Snapshot]. A blank query resets to idle without
// any network calls. Safe to call on every keystroke.
func (o *Orchestrator) SubmitQuery(raw string) {
	trimmed := strings.TrimSpace(raw)

	o.mu.Lock()
	if o.current != nil {
		o.current.cancel()
		o.current = nil
	}

	if trimmed == "" {
		o.snapshot = Snapshot{Status: StatusIdle}
		o.send(Update{Status: StatusIdle})
		o.mu.Unlock()
		return
	}

	s := &session{
		uid:   shared.GenerateID(),
		query: trimmed,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	o.current = s
	o.snapshot = Snapshot{Status: StatusSearching, Loading: true}
	o.send(Update{Status: StatusSearching, Query: trimmed})
	o.mu.Unlock()

	go o.run(s)
}

// Snapshot returns a copy of the observable state of the current search.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshot
}

// Cancel supersedes the current session, if any, and resets to idle.
func (o *Orchestrator) Cancel() {
	o.SubmitQuery("")
}

// isCurrent reports whether the session is still the orchestrator's
// current one. Called at every suspension boundary.
func (o *Orchestrator) isCurrent(s *session) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current == s
}

// publish installs a terminal snapshot and emits the matching update,
// unless the session has been superseded. The staleness check, the snapshot
// write, and the update send all happen under the orchestrator mutex, so a
// stale session's update can never appear on the channel after a newer
// session's Searching update.
func (o *Orchestrator) publish(s *session, snap Snapshot) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current != s {
		return false
	}
	o.snapshot = snap
	if snap.Status.Terminal() {
		o.current = nil
	}

	o.send(Update{
		Status:  snap.Status,
		Query:   s.query,
		Message: snap.Message,
		Results: snap.Results,
	})
	return true
}

// send emits an update without blocking, so it is safe to call with the
// mutex held. A full (or absent) channel drops the event; Snapshot always
// holds the latest state.
func (o *Orchestrator) send(update Update) {
	if o.updates == nil {
		return
	}
	select {
	case o.updates <- update:
	default:
	}
}

// run executes one session to its terminal state.
func (o *Orchestrator) run(s *session) {
	logger := o.logger.With("session", s.uid, "query", s.query)

	candidates, err := o.catalog.SearchTracks(s.ctx, s.query)
	if err != nil {
		if !o.isCurrent(s) {
			logger.Debug("superseded during catalog search")
			return
		}
		if errors.Is(err, shared.ErrAuthFailed) {
			logger.Warn("catalog auth failure", "err", err)
		} else {
			logger.Warn("catalog search failed", "err", err)
		}
		o.publish(s, Snapshot{Status: StatusFailed, Message: failedMessage})
		return
	}

	if !o.isCurrent(s) {
		logger.Debug("superseded after catalog search")
		return
	}

	ranked := o.ranker.Rank(candidates, s.query)
	if len(ranked) == 0 {
		o.publish(s, Snapshot{
			Status:  StatusEmpty,
			Message: fmt.Sprintf("no results found for %q", s.query),
		})
		return
	}

	logger.Debug("ranked candidates", "count", len(ranked))

	enriched := o.enrichAll(s, ranked)
	if !o.isCurrent(s) {
		logger.Debug("discarding superseded results")
		return
	}

	// Publish in rank order, never task-completion order.
	results := make([]models.SearchResult, 0, len(ranked))
	for _, track := range ranked {
		if result, ok := enriched[track.ID]; ok {
			results = append(results, result)
		}
	}

	if !o.publish(s, Snapshot{Status: StatusSucceeded, Results: results}) {
		return
	}

	if o.cache != nil {
		if err := o.cache.CacheResults(s.query, results); err != nil {
			logger.Debug("result cache write failed", "err", err)
		}
	}
}

// enrichAll fans out one enrichment task per ranked candidate and collects
// the completed records keyed by candidate id. Concurrency is bounded
// naturally by the candidate count.
func (o *Orchestrator) enrichAll(s *session, ranked []models.Track) map[string]models.SearchResult {
	var mu sync.Mutex
	merged := make(map[string]models.SearchResult, len(ranked))

	g, ctx := errgroup.WithContext(s.ctx)
	for _, track := range ranked {
		g.Go(func() error {
			if ctx.Err() != nil || !o.isCurrent(s) {
				return nil
			}

			result := o.enrich(ctx, s, track)
			if result == nil {
				return nil
			}

			mu.Lock()
			merged[track.ID] = *result
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return merged
}

// enrich gathers the three supplementary lookups for one candidate
// concurrently: cross-platform links, credits by ISRC, and the catalog's
// full record. Each failure degrades independently to its empty value.
// Returns nil when the session was superseded mid-flight.
func (o *Orchestrator) enrich(ctx context.Context, s *session, track models.Track) *models.SearchResult {
	logger := o.logger.With("session", s.uid, "track", track.ID)

	var (
		links   *models.PlatformLinks
		credits models.Credits
		full    *models.Track
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		resolved, err := o.links.Resolve(ctx, track.TrackURL)
		if err != nil {
			logger.Debug("link resolution failed", "err", err)
			return
		}
		links = resolved
	}()

	go func() {
		defer wg.Done()
		record, err := o.credits.Lookup(ctx, track.ISRC)
		if err != nil {
			logger.Debug("credits lookup failed", "err", err)
		}
		credits = record
	}()

	go func() {
		defer wg.Done()
		record, err := o.catalog.Track(ctx, track.ID)
		if err != nil {
			logger.Debug("full record fetch failed", "err", err)
			return
		}
		full = record
	}()

	wg.Wait()

	if !o.isCurrent(s) {
		return nil
	}

	result := mergeResult(track, full, credits, links)
	return &result
}

// BareResult builds a result from a catalog candidate alone, with every
// enrichment field marked unavailable. Used when enrichment is skipped.
func BareResult(track models.Track) models.SearchResult {
	return mergeResult(track, nil, models.Credits{}, nil)
}

// mergeResult folds the sources into one published record with field-level
// precedence: credits value, then the catalog's own field, then the "n/a"
// marker.
func mergeResult(track models.Track, full *models.Track, credits models.Credits, links *models.PlatformLinks) models.SearchResult {
	if full == nil {
		full = &track
	}

	duration := credits.Duration
	if duration == "" && full.DurationMS > 0 {
		duration = models.FormatDuration(full.DurationMS)
	}

	genre := credits.Genre
	if genre == "" && len(full.Genres) > 0 {
		genre = full.Genres[0]
	}

	result := models.SearchResult{
		ID:          track.ID,
		Title:       track.Title,
		Artist:      track.Artist,
		Album:       fallback(credits.Album, track.Album),
		ReleaseDate: fallback(credits.ReleaseDate, track.AlbumReleaseDate),
		Songwriter:  fallback(credits.Songwriter),
		Producer:    fallback(credits.Producer),
		Genre:       fallback(genre),
		Duration:    fallback(duration),
		Label:       fallback(credits.Label, full.Label, track.Label),
		Copyright:   fallback(credits.Copyright, full.Copyright, track.Copyright),
		ArtworkURL:  track.ArtworkURL,
		ISRC:        track.ISRC,
	}

	if links != nil {
		result.Links = *links
	}

	return result
}

// fallback returns the first non-empty value, or the "n/a" marker.
func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return models.NotAvailable
}
