package graph

import (
	"sort"

	"github.com/sociotyper/sociotyper/internal/core/model"
)

// maxLPAIterations bounds the propagation loop; small actor networks
// converge in a handful of passes.
const maxLPAIterations = 20

// DetectCommunities clusters the network with label propagation. Edges are
// treated as undirected and parallel edges strengthen the connection.
// Tie-breaking picks the lexicographically largest label so the result is
// deterministic. Singleton clusters are dropped.
func DetectCommunities(g model.Graph) []model.Community {
	if len(g.Nodes) == 0 {
		return nil
	}

	adj := make(map[string]map[string]int)
	for _, n := range g.Nodes {
		adj[n.ID] = make(map[string]int)
	}
	for _, l := range g.Links {
		if _, ok := adj[l.Source]; !ok {
			continue
		}
		if _, ok := adj[l.Target]; !ok {
			continue
		}
		if l.Source == l.Target {
			continue
		}
		adj[l.Source][l.Target]++
		adj[l.Target][l.Source]++
	}

	// Each node starts with its own label.
	labels := make(map[string]string, len(g.Nodes))
	order := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.ID] = n.ID
		order = append(order, n.ID)
	}
	sort.Strings(order)

	for iter := 0; iter < maxLPAIterations; iter++ {
		changed := 0
		for _, u := range order {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			counts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				counts[label] += weight
				if counts[label] > maxCount {
					maxCount = counts[label]
				}
			}

			var candidates []string
			for label, count := range counts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}
			sort.Strings(candidates)
			best := candidates[len(candidates)-1]

			if labels[u] != best {
				labels[u] = best
				changed++
			}
		}
		if changed == 0 {
			break
		}
	}

	clusters := make(map[string][]string)
	for _, u := range order {
		label := labels[u]
		clusters[label] = append(clusters[label], u)
	}

	var labelsSorted []string
	for label := range clusters {
		labelsSorted = append(labelsSorted, label)
	}
	sort.Strings(labelsSorted)

	var communities []model.Community
	for _, label := range labelsSorted {
		members := clusters[label]
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		communities = append(communities, model.Community{Members: members})
	}
	return communities
}
