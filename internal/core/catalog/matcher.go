package catalog

import (
	"errors"
	"sort"
	"strings"
)

// DefaultThreshold is the minimum similarity for a fuzzy match.
const DefaultThreshold = 0.8

var (
	// ErrNoMatch means no catalog entry scored at or above the threshold.
	ErrNoMatch = errors.New("no catalog match above threshold")
	// ErrAmbiguous means two distinct actors tied at the top score. Policy
	// is to reject rather than guess.
	ErrAmbiguous = errors.New("ambiguous catalog match")
)

// Match is a resolved actor with its similarity score.
type Match struct {
	Actor Actor
	Score float64
}

// Match resolves a free-text name to a catalog actor. Exact (normalized)
// hits win immediately with score 1. Otherwise all names and aliases are
// scored with a token-sort ratio, scanning entries in lexicographic order so
// the outcome is deterministic for a given catalog snapshot. A threshold of
// 0 falls back to DefaultThreshold.
func (c *Catalog) Match(name string, threshold float64) (Match, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	normalized := Normalize(name)
	if len(normalized) < 2 {
		return Match{}, ErrNoMatch
	}

	if i, ok := c.index[normalized]; ok {
		return Match{Actor: c.actors[i], Score: 1.0}, nil
	}

	best := -1.0
	var candidates []int // distinct actor indices tied at best
	for _, e := range c.entries {
		score := TokenSortRatio(normalized, e.key)
		if score < threshold {
			continue
		}
		switch {
		case score > best:
			best = score
			candidates = candidates[:0]
			candidates = append(candidates, e.actor)
		case score == best && !containsInt(candidates, e.actor):
			candidates = append(candidates, e.actor)
		}
	}

	if len(candidates) == 0 {
		return Match{}, ErrNoMatch
	}
	if len(candidates) > 1 {
		return Match{}, ErrAmbiguous
	}
	return Match{Actor: c.actors[candidates[0]], Score: best}, nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// TokenSortRatio sorts the words of both strings and returns the normalized
// edit-distance similarity of the rejoined forms, in [0,1]. Inputs are
// expected to be pre-normalized.
func TokenSortRatio(a, b string) float64 {
	return ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ratio is 1 - levenshtein/maxlen.
func ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0.0
	}
	longer := la
	if lb > longer {
		longer = lb
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longer)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
