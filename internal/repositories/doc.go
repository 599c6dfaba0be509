// Package repositories implements SQLite persistence for published search
// results.
//
// The result cache stores one row per (query, rank position) so a cached
// query replays in exactly the order it was published. Re-caching a query
// replaces its rows atomically.
//
// Key Implementations:
//   - [ResultRepository] : Ordered result persistence with query-based lookups
//
// [ResultRepository] satisfies the orchestrator's cache hook, so searches
// populate the cache as a side effect of publication.
package repositories
