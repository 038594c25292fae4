// Package review offers LLM assistance for triplets the matcher could not
// resolve: given unmatched names, it proposes catalog candidates for the
// reviewer to confirm.
package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/sociotyper/sociotyper/internal/core/catalog"
	"github.com/sociotyper/sociotyper/internal/core/common"
	"github.com/sociotyper/sociotyper/internal/llm"
)

// Suggestion pairs an unmatched name with a proposed catalog actor.
type Suggestion struct {
	Name       string  `json:"name"`
	Actor      string  `json:"actor"`
	Confidence float64 `json:"confidence"`
}

type suggestionResult struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type Suggester struct {
	LLM     llm.Client
	Catalog *catalog.Catalog
}

func NewSuggester(client llm.Client, cat *catalog.Catalog) *Suggester {
	return &Suggester{LLM: client, Catalog: cat}
}

// Suggest asks the LLM which catalog actors the unmatched names most likely
// refer to. Names with no plausible candidate are omitted from the result.
// Proposals naming actors outside the catalog are dropped.
func (s *Suggester) Suggest(ctx context.Context, names []string) ([]Suggestion, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var nameList, actorList strings.Builder
	for _, n := range names {
		fmt.Fprintf(&nameList, "- %s\n", n)
	}
	for _, a := range s.Catalog.Names() {
		fmt.Fprintf(&actorList, "- %s\n", a)
	}

	prompt := fmt.Sprintf(`<UNMATCHED NAMES>
%s</UNMATCHED NAMES>

<KNOWN ACTORS>
%s</KNOWN ACTORS>

Instructions:
Decide which KNOWN ACTORS the UNMATCHED NAMES refer to, if any.
Return a JSON object with key "suggestions", a list of objects.
Each object has "name" (the unmatched name), "actor" (the known actor), and "confidence" (float in [0,1]).
Omit names that match no known actor.

Example JSON:
{
  "suggestions": [
    {"name": "eit health germany", "actor": "EIT Health", "confidence": 0.9}
  ]
}
`, nameList.String(), actorList.String())

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	result, err := common.ParseObject[suggestionResult](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	var out []Suggestion
	for _, sug := range result.Suggestions {
		if s.Catalog.Contains(sug.Actor) {
			out = append(out, sug)
		}
	}
	return out, nil
}
