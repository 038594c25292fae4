// Package sociotype labels detected actor communities with short descriptive
// names.
package sociotype

import (
	"context"
	"fmt"
	"strings"

	"github.com/sociotyper/sociotyper/internal/core/common"
	"github.com/sociotyper/sociotyper/internal/core/model"
	"github.com/sociotyper/sociotyper/internal/llm"
)

type communityName struct {
	Name string `json:"name"`
}

type Namer struct {
	LLM llm.Client
}

func NewNamer(client llm.Client) *Namer {
	return &Namer{LLM: client}
}

// Name labels one community from its member actors and the practices that
// connect them.
func (n *Namer) Name(ctx context.Context, members []string, practices []string) (string, error) {
	prompt := fmt.Sprintf(`The following organizations form a tightly connected cluster in an innovation-ecosystem network:
%s

They are connected by practices such as: %s

Give the cluster a short descriptive name (2-5 words) reflecting what binds it.
Return a JSON object: {"name": "..."}
`, "- "+strings.Join(members, "\n- "), strings.Join(practices, ", "))

	response, err := n.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate community name: %w", err)
	}

	result, err := common.ParseObject[communityName](response)
	if err != nil {
		// Fall back to the raw line; naming is cosmetic.
		line := strings.TrimSpace(strings.SplitN(response, "\n", 2)[0])
		if line == "" {
			return "", fmt.Errorf("failed to parse community name: %w", err)
		}
		return line, nil
	}
	return result.Name, nil
}

// NameAll labels every community in place. A failed naming leaves that
// community unnamed rather than failing the batch.
func (n *Namer) NameAll(ctx context.Context, g model.Graph, communities []model.Community) []model.Community {
	practicesFor := func(members []string) []string {
		inCluster := make(map[string]bool, len(members))
		for _, m := range members {
			inCluster[m] = true
		}
		seen := make(map[string]bool)
		var out []string
		for _, l := range g.Links {
			if inCluster[l.Source] && inCluster[l.Target] && !seen[l.Practice] {
				seen[l.Practice] = true
				out = append(out, l.Practice)
			}
		}
		return out
	}

	for i := range communities {
		name, err := n.Name(ctx, communities[i].Members, practicesFor(communities[i].Members))
		if err != nil {
			continue
		}
		communities[i].Name = name
	}
	return communities
}
