// Package validate checks extracted triplets against the actor catalog and
// the canonical verb table. Validation is advisory: it annotates triplets and
// reports a reason, but the accept/reject decision stays with the reviewer.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sociotyper/sociotyper/internal/core/catalog"
	"github.com/sociotyper/sociotyper/internal/core/model"
	"github.com/sociotyper/sociotyper/internal/core/verbs"
)

// nonCanonicalPenalty scales a triplet's confidence when its practice phrase
// matched nothing in the verb table.
const nonCanonicalPenalty = 0.8

// counterrole length bounds from the upstream data model, advisory only.
const (
	minCounterroleLen = 3
	maxCounterroleLen = 100
)

// genericCounterroles are placeholder targets the original pipeline filtered.
// Advisory here.
var genericCounterroles = map[string]bool{
	"people": true, "partners": true, "community": true, "stakeholders": true,
	"members": true, "participants": true, "organizations": true,
	"institutions": true, "entities": true, "others": true, "them": true,
	"they": true, "it": true, "we": true, "us": true,
}

// Validator resolves triplet endpoints against a catalog snapshot and
// normalizes practices. Safe for concurrent use; the catalog and verb table
// are immutable.
type Validator struct {
	Catalog   *catalog.Catalog
	Verbs     *verbs.Table
	Threshold float64
}

// New builds a validator. A threshold of 0 uses catalog.DefaultThreshold.
func New(cat *catalog.Catalog, table *verbs.Table, threshold float64) *Validator {
	if threshold <= 0 {
		threshold = catalog.DefaultThreshold
	}
	return &Validator{Catalog: cat, Verbs: table, Threshold: threshold}
}

// Validate checks one triplet. On success the triplet's Role and Counterrole
// are rewritten to canonical catalog names and its Practice to the canonical
// verb, with the raw values preserved in RoleRaw/PracticeRaw. The triplet's
// Validated status is never touched.
func (v *Validator) Validate(t *model.Triplet) model.ValidationResult {
	res := model.ValidationResult{}

	roleRaw := strings.TrimSpace(t.Role)
	counterRaw := strings.TrimSpace(t.Counterrole)
	practiceRaw := strings.TrimSpace(t.Practice)

	// Practice normalization never hard-rejects; run it first so even
	// failed triplets carry a normalized practice for review.
	normalizedPractice, canonical := v.Verbs.Normalize(practiceRaw)
	res.NormalizedPractice = normalizedPractice
	res.PracticeCanonical = canonical
	if !canonical {
		res.Warnings = append(res.Warnings, fmt.Sprintf("practice %q not in canonical verb table", practiceRaw))
	}
	if v.Verbs.IsVague(practiceRaw) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("practice %q is a vague, non-relational verb", practiceRaw))
	}
	if genericCounterroles[catalog.Normalize(counterRaw)] {
		res.Warnings = append(res.Warnings, fmt.Sprintf("counterrole %q is a generic term", counterRaw))
	}
	if n := len(counterRaw); n > 0 && (n < minCounterroleLen || n > maxCounterroleLen) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("counterrole %q has unusual length %d", counterRaw, n))
	}

	role, err := v.Catalog.Match(roleRaw, v.Threshold)
	if err != nil {
		res.Reason = reasonFor(err, model.ReasonUnknownRole)
		v.annotate(t, res, normalizedPractice, canonical)
		return res
	}
	res.NormalizedRole = role.Actor.Name

	counter, err := v.Catalog.Match(counterRaw, v.Threshold)
	if err != nil {
		res.Reason = reasonFor(err, model.ReasonUnknownCounterrole)
		v.annotate(t, res, normalizedPractice, canonical)
		return res
	}

	res.OK = true
	res.Reason = model.ReasonValid

	if t.RoleRaw == "" {
		t.RoleRaw = roleRaw
	}
	t.Role = role.Actor.Name
	t.Counterrole = counter.Actor.Name
	v.annotate(t, res, normalizedPractice, canonical)
	return res
}

// annotate writes the advisory fields onto the triplet.
func (v *Validator) annotate(t *model.Triplet, res model.ValidationResult, practice string, canonical bool) {
	if t.PracticeRaw == "" {
		t.PracticeRaw = strings.TrimSpace(t.Practice)
	}
	t.Practice = practice
	t.Reason = res.Reason
	t.Warnings = res.Warnings
	if !canonical {
		t.Confidence *= nonCanonicalPenalty
	}
}

// ValidateBatch validates each triplet independently; one bad triplet never
// aborts the rest. A triplet whose resolved (role, practice, counterrole)
// repeats an earlier one in the batch is flagged DuplicateVerb so reviewers
// see redundant extractions.
func (v *Validator) ValidateBatch(triplets []*model.Triplet) []model.ValidationResult {
	results := make([]model.ValidationResult, len(triplets))
	seen := make(map[string]bool)

	for i, t := range triplets {
		res := v.Validate(t)
		if res.OK {
			key := t.Role + "\x00" + t.Practice + "\x00" + t.Counterrole
			if seen[key] {
				res.OK = false
				res.Reason = model.ReasonDuplicateVerb
				t.Reason = model.ReasonDuplicateVerb
			} else {
				seen[key] = true
			}
		}
		results[i] = res
	}
	return results
}

func reasonFor(err error, unknown model.Reason) model.Reason {
	if errors.Is(err, catalog.ErrAmbiguous) {
		return model.ReasonAmbiguousMatch
	}
	return unknown
}
