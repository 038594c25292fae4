package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sociotyper/sociotyper/internal/core/catalog"
	"github.com/sociotyper/sociotyper/internal/core/model"
	"github.com/sociotyper/sociotyper/internal/core/verbs"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	cat, err := catalog.New([]catalog.Actor{
		{Name: "EIT Health", Category: catalog.CategoryOrganization},
		{Name: "EIT Digital", Category: catalog.CategoryOrganization},
		{Name: "KU Leuven", Category: catalog.CategoryUniversity, Aliases: []string{"Katholieke Universiteit Leuven"}},
		{Name: "Philips", Category: catalog.CategoryCompany},
	})
	require.NoError(t, err)
	return New(cat, verbs.Default(), 0)
}

func TestValidateVerbatimHit(t *testing.T) {
	v := testValidator(t)

	trip := &model.Triplet{
		Role:        "EIT Health",
		Practice:    "funds",
		Counterrole: "Philips",
		Confidence:  0.9,
	}
	res := v.Validate(trip)

	assert.True(t, res.OK)
	assert.Equal(t, model.ReasonValid, res.Reason)
	assert.Equal(t, "EIT Health", trip.Role)
	assert.Equal(t, "fund", trip.Practice)
	assert.Equal(t, "funds", trip.PracticeRaw)
	assert.Equal(t, "Philips", trip.Counterrole)
	assert.InDelta(t, 0.9, trip.Confidence, 1e-9)
	assert.Empty(t, res.Warnings)
}

func TestValidateCaseAndWhitespaceInsensitive(t *testing.T) {
	v := testValidator(t)

	a := &model.Triplet{Role: "EIT Health", Practice: "funds", Counterrole: "Philips", Confidence: 0.5}
	b := &model.Triplet{Role: "  eit health ", Practice: "funds", Counterrole: "philips", Confidence: 0.5}

	resA := v.Validate(a)
	resB := v.Validate(b)

	assert.Equal(t, resA, resB)
	assert.Equal(t, a.Role, b.Role)
	assert.Equal(t, a.Counterrole, b.Counterrole)
}

func TestValidateUnknownRole(t *testing.T) {
	v := testValidator(t)

	trip := &model.Triplet{Role: "Nonexistent Org", Practice: "funds", Counterrole: "Philips"}
	res := v.Validate(trip)

	assert.False(t, res.OK)
	assert.Equal(t, model.ReasonUnknownRole, res.Reason)
	assert.Equal(t, model.ReasonUnknownRole, trip.Reason)
	// Practice still normalized for review even on failure.
	assert.Equal(t, "fund", trip.Practice)
}

func TestValidateUnknownCounterrole(t *testing.T) {
	v := testValidator(t)

	trip := &model.Triplet{Role: "EIT Health", Practice: "funds", Counterrole: "Nonexistent Org"}
	res := v.Validate(trip)

	assert.False(t, res.OK)
	assert.Equal(t, model.ReasonUnknownCounterrole, res.Reason)
}

func TestValidateAmbiguousMatch(t *testing.T) {
	cat, err := catalog.New([]catalog.Actor{
		{Name: "EIT Alpha", Category: catalog.CategoryOrganization},
		{Name: "EIT Alphb", Category: catalog.CategoryOrganization},
		{Name: "Philips", Category: catalog.CategoryCompany},
	})
	require.NoError(t, err)
	v := New(cat, verbs.Default(), 0)

	trip := &model.Triplet{Role: "EIT Alphc", Practice: "funds", Counterrole: "Philips"}
	res := v.Validate(trip)

	assert.False(t, res.OK)
	assert.Equal(t, model.ReasonAmbiguousMatch, res.Reason)
}

func TestValidateNonCanonicalPracticePenalty(t *testing.T) {
	v := testValidator(t)

	trip := &model.Triplet{
		Role:        "EIT Health",
		Practice:    "celebrates the anniversary of",
		Counterrole: "Philips",
		Confidence:  1.0,
	}
	res := v.Validate(trip)

	assert.True(t, res.OK)
	assert.False(t, res.PracticeCanonical)
	assert.InDelta(t, nonCanonicalPenalty, trip.Confidence, 1e-9)
	assert.Equal(t, "celebrates the anniversary of", trip.Practice)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "not in canonical verb table")
}

func TestValidateVaguePracticeWarning(t *testing.T) {
	v := testValidator(t)

	trip := &model.Triplet{Role: "EIT Health", Practice: "is", Counterrole: "Philips", Confidence: 0.5}
	res := v.Validate(trip)

	assert.True(t, res.OK)
	found := false
	for _, w := range res.Warnings {
		found = found || strings.Contains(w, "vague")
	}
	assert.True(t, found)
}

func TestValidateGenericCounterroleWarning(t *testing.T) {
	v := testValidator(t)

	trip := &model.Triplet{Role: "EIT Health", Practice: "funds", Counterrole: "stakeholders", Confidence: 0.5}
	res := v.Validate(trip)

	// Warning is advisory; the counterrole still fails catalog resolution.
	assert.False(t, res.OK)
	assert.Equal(t, model.ReasonUnknownCounterrole, res.Reason)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "generic term")
}

func TestValidateShortCounterroleWarning(t *testing.T) {
	v := testValidator(t)

	trip := &model.Triplet{Role: "EIT Health", Practice: "funds", Counterrole: "it", Confidence: 0.5}
	res := v.Validate(trip)

	assert.False(t, res.OK)
	found := false
	for _, w := range res.Warnings {
		found = found || strings.Contains(w, "unusual length")
	}
	assert.True(t, found)
}

func TestValidateBatchDuplicateVerb(t *testing.T) {
	v := testValidator(t)

	triplets := []*model.Triplet{
		{Role: "EIT Health", Practice: "funds", Counterrole: "Philips"},
		{Role: "eit health", Practice: "funded", Counterrole: "PHILIPS"},
		{Role: "EIT Health", Practice: "partners with", Counterrole: "Philips"},
	}
	results := v.ValidateBatch(triplets)

	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Equal(t, model.ReasonDuplicateVerb, results[1].Reason)
	assert.Equal(t, model.ReasonDuplicateVerb, triplets[1].Reason)
	assert.True(t, results[2].OK)
}

func TestValidateBatchBadTripletDoesNotAbort(t *testing.T) {
	v := testValidator(t)

	triplets := []*model.Triplet{
		{Role: "Nonexistent Org", Practice: "funds", Counterrole: "Philips"},
		{Role: "EIT Health", Practice: "funds", Counterrole: "Philips"},
	}
	results := v.ValidateBatch(triplets)

	require.Len(t, results, 2)
	assert.False(t, results[0].OK)
	assert.True(t, results[1].OK)
}
