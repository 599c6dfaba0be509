// Package search implements the orchestration of one logical "current
// search" across rapid query submissions.
//
// The core abstraction is [Orchestrator], which owns the session lifecycle:
// each [Orchestrator.SubmitQuery] supersedes the prior session (cancelling
// its in-flight work), invokes the catalog lookup, ranks the candidates,
// fans out one concurrent enrichment task per ranked candidate, and merges
// the completed records back in rank order. A terminal status (succeeded,
// empty, or failed) is published exactly once per session over the optional
// updates channel, and the latest state is always readable via
// [Orchestrator.Snapshot].
//
// Supersession is cooperative: every spawned task captures its session and
// compares it against the orchestrator's current one at each suspension
// boundary. Results from a superseded session are discarded unpublished;
// outstanding network calls are not interrupted.
//
// Enrichment failures never fail a session. Each per-candidate task absorbs
// link-resolution and credits-lookup failures independently, degrading the
// affected fields to the "n/a" marker.
package search
