package driver

const (
	SaveActorQuery = `
		MERGE (a:Actor {name: $name})
		SET a.category = $category,
			a.group_id = $group_id,
			a.updated_at = $updated_at
		RETURN a.name AS name
	`

	SavePracticeEdgeQuery = `
		MATCH (role:Actor {name: $role})
		MATCH (counterrole:Actor {name: $counterrole})
		MERGE (role)-[p:PRACTICE {uuid: $uuid}]->(counterrole)
		SET p.name = $practice,
			p.context = $context,
			p.confidence = $confidence,
			p.group_id = $group_id,
			p.created_at = $created_at
		RETURN p.uuid AS uuid
	`

	DeleteGroupQuery = `
		MATCH (a:Actor {group_id: $group_id})
		DETACH DELETE a
	`
)

// indexQueries set up lookups for published networks.
var indexQueries = []string{
	"CREATE INDEX ON :Actor(name);",
	"CREATE INDEX ON :Actor(group_id);",
}
