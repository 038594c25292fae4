package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/sociotyper/sociotyper/internal/core/catalog"
	"github.com/sociotyper/sociotyper/internal/core/graph"
	"github.com/sociotyper/sociotyper/internal/core/model"
)

// Publisher writes a reviewed network into a graph store, one group per
// session so repeated publishes replace rather than accumulate.
type Publisher struct {
	Driver  GraphDriver
	Catalog *catalog.Catalog
}

func NewPublisher(d GraphDriver, cat *catalog.Catalog) *Publisher {
	return &Publisher{Driver: d, Catalog: cat}
}

// Publish replaces the stored network for groupID with the graph built from
// triplets (same eligibility as graph.Build: everything not Rejected). Edge
// identity derives from the triplet id, so republishing is idempotent. Node
// categories come from the catalog; names the reviewer kept despite not
// resolving publish with an empty category.
func (p *Publisher) Publish(ctx context.Context, groupID string, triplets []model.Triplet) error {
	if _, err := p.Driver.ExecuteQuery(ctx, DeleteGroupQuery, map[string]interface{}{
		"group_id": groupID,
	}); err != nil {
		return fmt.Errorf("failed to clear group %q: %w", groupID, err)
	}

	g := graph.Build(triplets, graph.FilterAll)
	now := time.Now().UTC()

	for _, n := range g.Nodes {
		category := ""
		if m, err := p.Catalog.Match(n.ID, 1.0); err == nil {
			category = string(m.Actor.Category)
		}
		if _, err := p.Driver.ExecuteQuery(ctx, SaveActorQuery, map[string]interface{}{
			"name":       n.ID,
			"category":   category,
			"group_id":   groupID,
			"updated_at": now,
		}); err != nil {
			return fmt.Errorf("failed to save actor %q: %w", n.ID, err)
		}
	}

	for _, t := range triplets {
		if t.Validated == model.StatusRejected {
			continue
		}
		if _, err := p.Driver.ExecuteQuery(ctx, SavePracticeEdgeQuery, map[string]interface{}{
			"uuid":        fmt.Sprintf("%s-%s", groupID, t.ID),
			"role":        t.Role,
			"counterrole": t.Counterrole,
			"practice":    t.Practice,
			"context":     t.Context,
			"confidence":  t.Confidence,
			"group_id":    groupID,
			"created_at":  now,
		}); err != nil {
			return fmt.Errorf("failed to save edge %s-[%s]->%s: %w", t.Role, t.Practice, t.Counterrole, err)
		}
	}
	return nil
}
