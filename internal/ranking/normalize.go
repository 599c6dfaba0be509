package ranking

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords are dropped from token sequences unless doing so would empty them.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "were": {}, "will": {}, "with": {},
}

// synonyms are whole-word substitutions applied before punctuation stripping,
// so contractions like "you've" still match.
var synonyms = map[string]string{
	"you've": "you have",
	"ft":     "featuring",
	"feat":   "featuring",
}

// synonymRule is a precompiled word-boundary substitution.
type synonymRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// synonymRules holds the substitutions in sorted-key order so normalization
// is deterministic regardless of map iteration.
var synonymRules = compileSynonyms()

func compileSynonyms() []synonymRule {
	keys := make([]string, 0, len(synonyms))
	for k := range synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rules := make([]synonymRule, 0, len(keys))
	for _, k := range keys {
		rules = append(rules, synonymRule{
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`),
			replacement: synonyms[k],
		})
	}
	return rules
}

// foldDiacritics strips combining marks after NFD decomposition (café → cafe).
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize turns a raw string into a comparable token sequence: lowercase,
// synonym expansion, diacritic folding, punctuation stripping, whitespace
// tokenization, stop-word removal.
//
// If stop-word removal would eliminate every token, the pre-removal sequence
// is returned instead, so a query of only stop-words ("The The") does not
// normalize to nothing. Pure and deterministic.
func Normalize(text string) []string {
	s := strings.ToLower(text)

	for _, rule := range synonymRules {
		s = rule.pattern.ReplaceAllString(s, rule.replacement)
	}

	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)

	tokens := strings.Fields(s)

	filtered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := stopWords[tok]; !stop {
			filtered = append(filtered, tok)
		}
	}

	if len(filtered) == 0 && len(tokens) > 0 {
		return tokens
	}

	return filtered
}

// tokenSet builds a membership set from a token sequence.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
