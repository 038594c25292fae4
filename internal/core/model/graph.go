package model

// GraphNode is one actor in the rendered network, identified by its
// normalized name.
type GraphNode struct {
	ID string `json:"id"`
}

// GraphLink is one directed role→counterrole edge labeled with the practice.
// Source and Target are plain actor-name strings; the rendering layer
// resolves linkage by id lookup.
type GraphLink struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Practice string `json:"practice"`
}

// Graph is the node/edge view consumed by the force-directed layout.
// Every link endpoint references a node present in Nodes.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// Community is a connected cluster of actors, optionally named by the LLM
// (a "sociotype" candidate).
type Community struct {
	Name    string   `json:"name,omitempty"`
	Members []string `json:"members"`
}
