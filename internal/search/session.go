package search

import (
	"context"

	"github.com/leonardonapoless/PAMS/internal/models"
)

// Status enumerates the lifecycle states of a search session.
type Status int

const (
	StatusIdle Status = iota
	StatusSearching
	StatusSucceeded
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusSucceeded:
		return "succeeded"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return ""
	}
}

// Terminal reports whether the status ends a session.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusEmpty || s == StatusFailed
}

// Snapshot is the observable state of the current search: the tri-state
// status consumed by presentation layers (loading / message / results).
type Snapshot struct {
	Status  Status
	Loading bool
	Message string // user-facing message for Failed and Empty
	Results []models.SearchResult
}

// Update is a lifecycle event published on the orchestrator's updates
// channel. Terminal updates carry the complete ordered result list.
type Update struct {
	Status  Status
	Query   string
	Message string
	Results []models.SearchResult
}

// session is one unit of supersession. Every task a session spawns captures
// the session pointer and compares it against the orchestrator's current
// one at each suspension boundary instead of relying on implicit
// cancellation propagation.
type session struct {
	uid    string // uuid for log correlation only
	query  string
	ctx    context.Context
	cancel context.CancelFunc
}
