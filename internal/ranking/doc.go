// Package ranking scores loosely-structured track candidates against a
// free-text query and produces a deterministic ordering.
//
// The pipeline is built from pure leaf functions:
//
//   - [Normalize] : raw string → comparable token sequence (synonym
//     expansion, diacritic folding, punctuation stripping, stop-word removal)
//   - [NGrams] : token sequence → set of n-token phrases (n = 2, 3)
//   - [Levenshtein] / [Similarity] : edit-distance similarity for tokens
//     that fail exact matching
//
// [Ranker.Rank] combines them: each candidate gets a weighted field score
// over title, artist, and album, penalties for extra title tokens and for
// negative keywords the query did not ask for ("remix", "live", ...), and a
// popularity blend that modulates but never overrides textual relevance.
// The sort is stable: equal scores keep their input order.
//
// A Ranker memoizes normalization per distinct input string. The cache is
// serialized internally, so one Ranker may be shared across searches;
// [Ranker.ClearCache] resets it between independent sessions if desired.
package ranking
