// Package models defines the domain entities shared by the PAMS search core.
//
// The package contains three categories of types:
//
// 1. Candidate data: records returned by the primary catalog search
//   - [Track] : A single track candidate with identity, text fields, and popularity
//
// 2. Enrichment data: supplementary metadata attached to ranked candidates
//   - [Credits] : Songwriter, producer, release, and label credits (all optional)
//   - [PlatformLinks] / [PlatformLink] : Cross-platform web and deep links
//
// 3. Published output:
//   - [SearchResult] : A candidate's identity fields merged with its enrichment
//     record; fields absent from every source carry the [NotAvailable] marker
//
// All types are plain value types. A Track is immutable once fetched and is
// identified by its ID within one search's result set.
package models
