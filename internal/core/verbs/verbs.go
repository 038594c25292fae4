// Package verbs normalizes raw practice phrases to canonical institutional
// action verbs.
package verbs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// canonical institutional action verbs. Extracted practices are folded onto
// this set; phrases that match nothing are kept as-is with a non-canonical
// flag rather than rejected.
var canonicalVerbs = []string{
	// Funding & Investment
	"fund", "finance", "grant", "invest", "support", "sponsor", "award",
	// Partnership & Collaboration
	"partner", "collaborate", "work", "team", "ally", "join",
	// Creation & Establishment
	"create", "launch", "develop", "establish", "build", "initiate",
	"set up", "start", "found", "open", "introduce",
	// Service & Education
	"provide", "offer", "deliver", "train", "educate", "enable",
	// Growth & Support
	"accelerate", "incubate", "scale", "facilitate", "connect",
	// Management & Organization
	"select", "mentor", "coach", "coordinate", "manage",
	"operate", "organize", "implement", "run", "mobilize",
	// Advocacy & Innovation
	"campaign", "advocate", "host", "innovate", "research", "pilot", "test",
}

// irregular phrasings that token-prefix matching alone would miss.
var defaultVariants = map[string]string{
	"sets up":        "set up",
	"setting up":     "set up",
	"teams up with":  "team",
	"works together": "collaborate",
	"joins forces":   "join",
	"ran":            "run",
	"gave":           "grant",
	"backs":          "fund",
	"backed":         "fund",
}

// vaguePractices are non-relational verbs the original pipeline filtered.
// They are advisory here: flagged on the result, never a rejection.
var vaguePractices = map[string]bool{
	"has": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true,
	"discusses": true, "mentions": true, "focuses on": true, "refers to": true,
}

// Table maps raw practice phrases to canonical verbs.
type Table struct {
	canonical []string
	variants  map[string]string

	// phrases ordered longest-first (token count, then length, then
	// lexicographic) so substring matching is deterministic.
	phrases []phraseEntry
}

type phraseEntry struct {
	phrase    string
	canonical string
}

type tableFile struct {
	Canonical []string          `json:"canonical"`
	Variants  map[string]string `json:"variants,omitempty"`
}

// Default returns the built-in verb table.
func Default() *Table {
	return New(canonicalVerbs, defaultVariants)
}

// Load reads a verb table from a JSON file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read verb table %q: %w", path, err)
	}
	var f tableFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse verb table: %w", err)
	}
	return New(f.Canonical, f.Variants), nil
}

// New builds a table from canonical verbs plus explicit variant phrasings.
func New(canonical []string, variants map[string]string) *Table {
	t := &Table{
		canonical: append([]string(nil), canonical...),
		variants:  make(map[string]string),
	}
	for _, v := range canonical {
		key := normalizePhrase(v)
		t.variants[key] = v
		t.phrases = append(t.phrases, phraseEntry{phrase: key, canonical: v})
	}
	for raw, v := range variants {
		key := normalizePhrase(raw)
		t.variants[key] = v
		t.phrases = append(t.phrases, phraseEntry{phrase: key, canonical: v})
	}

	sort.Slice(t.phrases, func(i, j int) bool {
		pi, pj := t.phrases[i], t.phrases[j]
		ti, tj := len(strings.Fields(pi.phrase)), len(strings.Fields(pj.phrase))
		if ti != tj {
			return ti > tj
		}
		if len(pi.phrase) != len(pj.phrase) {
			return len(pi.phrase) > len(pj.phrase)
		}
		return pi.phrase < pj.phrase
	})
	return t
}

// Canonical returns the sorted canonical verb list.
func (t *Table) Canonical() []string {
	out := append([]string(nil), t.canonical...)
	sort.Strings(out)
	return out
}

// Normalize maps a raw practice phrase to its canonical verb. The second
// return is false when nothing matched; the caller keeps the raw phrase.
func (t *Table) Normalize(phrase string) (string, bool) {
	raw := normalizePhrase(phrase)
	if raw == "" {
		return phrase, false
	}

	if v, ok := t.variants[raw]; ok {
		return v, true
	}

	rawTokens := strings.Fields(raw)
	for _, e := range t.phrases {
		if phraseInTokens(rawTokens, strings.Fields(e.phrase)) {
			return e.canonical, true
		}
	}
	return strings.TrimSpace(phrase), false
}

// IsVague reports whether a phrase is on the non-relational verb list.
func (t *Table) IsVague(phrase string) bool {
	return vaguePractices[normalizePhrase(phrase)]
}

func normalizePhrase(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// phraseInTokens reports whether the phrase tokens prefix-align with a
// consecutive run of raw tokens ("fund" matches "funds", "set up" matches
// "sets up", "run" does not match "prune").
func phraseInTokens(raw, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(raw) {
		return false
	}
	for i := 0; i+len(phrase) <= len(raw); i++ {
		ok := true
		for j, p := range phrase {
			if !strings.HasPrefix(raw[i+j], p) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
