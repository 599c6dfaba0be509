package ranking

import (
	"math"
	"sort"
	"sync"

	"github.com/leonardonapoless/PAMS/internal/models"
)

// Weights holds the ranking coefficients. The defaults are calibrated;
// they are exposed for tuning, not expected to change at runtime.
type Weights struct {
	// Field blend
	Title  float64
	Artist float64
	Album  float64

	// Per-field match weights
	Unigram        float64
	Bigram         float64
	Trigram        float64
	Fuzzy          float64
	FuzzyThreshold float64

	// Penalties
	LengthPenalty float64 // multiplier per extra title token beyond the query

	// Popularity blend. Track streams dominate; artist fame is secondary,
	// with a flat bonus above the threshold.
	TrackPopularity        float64
	ArtistPopularity       float64
	PopularArtistBonus     float64
	PopularArtistThreshold int
}

// DefaultWeights returns the calibrated default coefficients.
func DefaultWeights() Weights {
	return Weights{
		Title:  0.6,
		Artist: 0.3,
		Album:  0.1,

		Unigram:        1.0,
		Bigram:         2.0,
		Trigram:        3.0,
		Fuzzy:          0.5,
		FuzzyThreshold: 0.8,

		LengthPenalty: 0.9,

		TrackPopularity:        0.6,
		ArtistPopularity:       0.2,
		PopularArtistBonus:     0.1,
		PopularArtistThreshold: 80,
	}
}

// negativeKeywords discount titles containing variant markers the query did
// not ask for. Multiple matches compound multiplicatively.
var negativeKeywords = map[string]float64{
	"remix":   0.5,
	"cover":   0.2,
	"take":    0.6,
	"version": 0.4,
	"tribute": 0.3,
	"live":    0.1,
	"ao vivo": 0.0,
}

// processedQuery is the query normalized once per ranking call.
type processedQuery struct {
	tokens   []string
	set      map[string]struct{}
	bigrams  map[string]struct{}
	trigrams map[string]struct{}
}

// ScoredTrack pairs a candidate with its computed relevance score. It exists
// only during ranking and in diagnostic output.
type ScoredTrack struct {
	Track models.Track
	Score float64
}

// Ranker scores and orders track candidates against free-text queries.
//
// The zero value is not usable; construct with [NewRanker]. A Ranker is safe
// for use from multiple goroutines: the token cache is guarded internally.
type Ranker struct {
	weights Weights

	mu    sync.Mutex
	cache map[string][]string
}

// NewRanker creates a Ranker with [DefaultWeights].
func NewRanker() *Ranker {
	return NewRankerWithWeights(DefaultWeights())
}

// NewRankerWithWeights creates a Ranker with custom coefficients.
func NewRankerWithWeights(w Weights) *Ranker {
	return &Ranker{
		weights: w,
		cache:   make(map[string][]string),
	}
}

// ClearCache drops the memoized normalizations. Call between independent
// ranking sessions if candidate text from prior searches should not linger.
func (r *Ranker) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[string][]string)
	r.mu.Unlock()
}

// Rank orders candidates by descending relevance to the query. The sort is
// stable: candidates with equal scores keep their input order.
func (r *Ranker) Rank(tracks []models.Track, query string) []models.Track {
	scored := r.RankScored(tracks, query)

	ordered := make([]models.Track, len(scored))
	for i, s := range scored {
		ordered[i] = s.Track
	}
	return ordered
}

// RankScored is [Ranker.Rank] with scores attached, for diagnostics and tests.
func (r *Ranker) RankScored(tracks []models.Track, query string) []ScoredTrack {
	q := r.processQuery(query)

	scored := make([]ScoredTrack, len(tracks))
	for i, track := range tracks {
		scored[i] = ScoredTrack{Track: track, Score: r.score(track, q)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// processQuery normalizes the query once and derives its match sets.
func (r *Ranker) processQuery(term string) processedQuery {
	tokens := Normalize(term)
	return processedQuery{
		tokens:   tokens,
		set:      tokenSet(tokens),
		bigrams:  NGrams(tokens, 2),
		trigrams: NGrams(tokens, 3),
	}
}

// score computes the total relevance of one candidate.
func (r *Ranker) score(track models.Track, q processedQuery) float64 {
	w := r.weights

	titleTokens := r.cachedTokens(track.Title)
	artistTokens := r.cachedTokens(track.Artist)
	albumTokens := r.cachedTokens(track.Album)

	textScore := r.fieldScore(q, titleTokens)*w.Title +
		r.fieldScore(q, artistTokens)*w.Artist +
		r.fieldScore(q, albumTokens)*w.Album

	// Zero textual relevance is never rescued by popularity.
	if textScore == 0 {
		return 0
	}

	if extra := len(titleTokens) - len(q.tokens); extra > 0 {
		textScore *= math.Pow(w.LengthPenalty, float64(extra))
	}

	titleSet := tokenSet(titleTokens)
	for keyword, penalty := range negativeKeywords {
		if _, inTitle := titleSet[keyword]; !inTitle {
			continue
		}
		// The penalty applies only when the user did not ask for the variant.
		if _, asked := q.set[keyword]; !asked {
			textScore *= penalty
		}
	}

	popScore := 0.0
	if track.Popularity > 0 {
		popScore += float64(track.Popularity) / 100.0 * w.TrackPopularity
	}
	if track.ArtistPopularity > 0 {
		popScore += float64(track.ArtistPopularity) / 100.0 * w.ArtistPopularity
		if track.ArtistPopularity > w.PopularArtistThreshold {
			popScore += w.PopularArtistBonus
		}
	}

	return textScore * (1.0 + popScore)
}

// fieldScore scores one candidate field against the processed query:
// exact unigram overlap, fuzzy matches for leftover query tokens, and
// bigram/trigram phrase overlap.
func (r *Ranker) fieldScore(q processedQuery, fieldTokens []string) float64 {
	w := r.weights
	fieldSet := tokenSet(fieldTokens)

	score := 0.0

	exact := make(map[string]struct{})
	for tok := range q.set {
		if _, ok := fieldSet[tok]; ok {
			exact[tok] = struct{}{}
		}
	}
	score += float64(len(exact)) * w.Unigram

	// Fuzzy pass over the tokens exact matching did not consume, on both
	// sides. Only the best-matching field token counts per query token.
	for queryTok := range q.set {
		if _, ok := exact[queryTok]; ok {
			continue
		}
		best := 0.0
		for fieldTok := range fieldSet {
			if _, ok := exact[fieldTok]; ok {
				continue
			}
			if queryTok == "" && fieldTok == "" {
				continue
			}
			if sim := Similarity(queryTok, fieldTok); sim > best {
				best = sim
			}
		}
		if best > w.FuzzyThreshold {
			score += best * w.Fuzzy
		}
	}

	score += float64(overlap(q.bigrams, NGrams(fieldTokens, 2))) * w.Bigram
	score += float64(overlap(q.trigrams, NGrams(fieldTokens, 3))) * w.Trigram

	return score
}

// cachedTokens memoizes Normalize per distinct input string.
func (r *Ranker) cachedTokens(s string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[s]; ok {
		return cached
	}
	tokens := Normalize(s)
	r.cache[s] = tokens
	return tokens
}
