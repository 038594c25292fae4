package extraction

import (
	"fmt"
	"strings"

	"github.com/sociotyper/sociotyper/internal/core/catalog"
)

// maxPromptActors caps how many catalog names are listed in the prompt.
const maxPromptActors = 30

// BuildPrompt assembles the triplet extraction prompt for one text chunk.
// The catalog's leading actors constrain the role field and the canonical
// verbs steer the practice field.
func BuildPrompt(chunk string, cat *catalog.Catalog, canonicalVerbs []string, userPrompt string) string {
	names := cat.Names()
	listed := names
	if len(listed) > maxPromptActors {
		listed = listed[:maxPromptActors]
	}

	var b strings.Builder
	b.WriteString("You are an expert in extracting organizational relationship triples.\n\n")
	b.WriteString("Focus ONLY on verbs related to institutional actions like:\n")
	b.WriteString(strings.Join(canonicalVerbs, ", "))
	b.WriteString("\n\nCONSTRAINT: 'role' MUST be one of these known actors:\n")
	for _, name := range listed {
		fmt.Fprintf(&b, "  - %s\n", name)
	}
	if rest := len(names) - len(listed); rest > 0 {
		fmt.Fprintf(&b, "  - ... and %d more actors\n", rest)
	}
	b.WriteString(`
RULES:
1. role: organization taking the action (from the list above)
2. practice: the main institutional action verb (from the verb list or a close equivalent)
3. counterrole: the partner or recipient organization (a specific named entity, no generic terms)
4. context: the exact sentence supporting the relation

Ignore vague or non-relational verbs (e.g. "discusses", "mentions", "focuses on").
Output ONLY a valid JSON array of objects with keys "role", "practice", "counterrole", "context".`)

	if userPrompt != "" {
		fmt.Fprintf(&b, "\n\nADDITIONAL INSTRUCTIONS:\n%s", userPrompt)
	}

	fmt.Fprintf(&b, "\n\nTEXT:\n%s\n\nJSON:", chunk)
	return b.String()
}
