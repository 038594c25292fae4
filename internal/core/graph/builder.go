// Package graph folds reviewed triplets into the node/edge network consumed
// by the force-directed layout.
package graph

import (
	"strings"

	"github.com/sociotyper/sociotyper/internal/core/model"
)

// FilterAll disables practice filtering.
const FilterAll = "all"

// Build folds triplets into a deduplicated node set and an edge list. It is
// pure: identical input and filter always yield identical output, and it
// performs no I/O.
//
// Eligibility is permissive: everything not explicitly Rejected is included,
// so Pending triplets render provisionally. A non-"all" filter further
// restricts to triplets whose practice contains the token as a
// case-insensitive substring. Nodes are deduplicated by exact string
// equality — the validator already normalized names, so no fuzzy matching
// happens here. Each eligible triplet contributes its own edge; parallel
// edges and self-loops are preserved.
func Build(triplets []model.Triplet, filter string) model.Graph {
	filter = strings.ToLower(strings.TrimSpace(filter))
	g := model.Graph{}

	seen := make(map[string]bool)
	addNode := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		g.Nodes = append(g.Nodes, model.GraphNode{ID: name})
	}

	for _, t := range triplets {
		if t.Validated == model.StatusRejected {
			continue
		}
		if filter != "" && filter != FilterAll &&
			!strings.Contains(strings.ToLower(t.Practice), filter) {
			continue
		}

		addNode(t.Role)
		addNode(t.Counterrole)
		g.Links = append(g.Links, model.GraphLink{
			Source:   t.Role,
			Target:   t.Counterrole,
			Practice: t.Practice,
		})
	}
	return g
}
