package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sociotyper/sociotyper/internal/core/model"
)

func sampleTriplets() []model.Triplet {
	return []model.Triplet{
		{Role: "EIT Health", Practice: "fund", Counterrole: "Philips"},
		{Role: "EIT Digital", Practice: "partner", Counterrole: "KU Leuven"},
		{Role: "KU Leuven", Practice: "train", Counterrole: "EIT Health"},
	}
}

func TestAddBatchAssignsSequentialIDs(t *testing.T) {
	s := New()

	require.NoError(t, s.AddBatch(sampleTriplets()))

	all := s.Triplets()
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "2", all[1].ID)
	assert.Equal(t, "3", all[2].ID)
	for _, trip := range all {
		assert.Equal(t, model.StatusPending, trip.Validated)
	}

	// Later batches continue the sequence.
	require.NoError(t, s.AddBatch(sampleTriplets()[:1]))
	all = s.Triplets()
	require.Len(t, all, 4)
	assert.Equal(t, "4", all[3].ID)
}

func TestAddBatchKeepsExplicitIDs(t *testing.T) {
	s := New()

	err := s.AddBatch([]model.Triplet{
		{ID: "custom-a", Role: "EIT Health", Practice: "fund", Counterrole: "Philips"},
		{Role: "EIT Digital", Practice: "partner", Counterrole: "KU Leuven"},
	})
	require.NoError(t, err)

	got, err := s.Get("custom-a")
	require.NoError(t, err)
	assert.Equal(t, "EIT Health", got.Role)
}

func TestAddBatchSkipsTakenGeneratedID(t *testing.T) {
	s := New()

	// "1" is occupied before the generator ever runs.
	require.NoError(t, s.AddBatch([]model.Triplet{{ID: "1", Role: "EIT Health", Practice: "fund", Counterrole: "Philips"}}))
	require.NoError(t, s.AddBatch([]model.Triplet{{Role: "EIT Digital", Practice: "partner", Counterrole: "KU Leuven"}}))

	all := s.Triplets()
	require.Len(t, all, 2)
	assert.Equal(t, "2", all[1].ID)
}

func TestAddBatchRejectsDuplicateID(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch([]model.Triplet{{ID: "a", Role: "EIT Health", Practice: "fund", Counterrole: "Philips"}}))

	err := s.AddBatch([]model.Triplet{
		{Role: "EIT Digital", Practice: "partner", Counterrole: "KU Leuven"},
		{ID: "a", Role: "KU Leuven", Practice: "train", Counterrole: "EIT Health"},
	})

	var dup *ErrDuplicateID
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.ID)
	// Whole batch rejected, nothing partially applied.
	assert.Len(t, s.Triplets(), 1)
}

func TestAddBatchRejectsDuplicateWithinBatch(t *testing.T) {
	s := New()

	err := s.AddBatch([]model.Triplet{
		{ID: "x", Role: "EIT Health", Practice: "fund", Counterrole: "Philips"},
		{ID: "x", Role: "EIT Digital", Practice: "partner", Counterrole: "KU Leuven"},
	})

	var dup *ErrDuplicateID
	require.ErrorAs(t, err, &dup)
	assert.Empty(t, s.Triplets())
}

func TestSetStatusTransitions(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch(sampleTriplets()))

	require.NoError(t, s.SetStatus("1", model.StatusAccepted))
	require.NoError(t, s.SetStatus("2", model.StatusRejected))

	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, got.Validated)

	// Reversals are allowed.
	require.NoError(t, s.SetStatus("1", model.StatusPending))
	got, err = s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Validated)
}

func TestSetStatusUnknownIDLeavesCountsUnchanged(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch(sampleTriplets()))
	before := s.Counts()

	err := s.SetStatus("missing", model.StatusAccepted)

	var nf *ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.ID)
	assert.Equal(t, before, s.Counts())
}

func TestCounts(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch(sampleTriplets()))
	require.NoError(t, s.SetStatus("1", model.StatusAccepted))
	require.NoError(t, s.SetStatus("2", model.StatusRejected))

	c := s.Counts()
	assert.Equal(t, Counts{Total: 3, Accepted: 1, Rejected: 1, Pending: 1}, c)
}

func TestFiltered(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch(sampleTriplets()))
	require.NoError(t, s.SetStatus("3", model.StatusAccepted))

	accepted := s.Filtered(model.StatusAccepted)
	require.Len(t, accepted, 1)
	assert.Equal(t, "3", accepted[0].ID)

	pending := s.Filtered(model.StatusPending)
	assert.Len(t, pending, 2)
}

func TestTripletsReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch(sampleTriplets()))

	all := s.Triplets()
	all[0].Role = "mutated"

	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "EIT Health", got.Role)
}

func TestIDsSorted(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch([]model.Triplet{
		{ID: "b", Role: "EIT Health", Practice: "fund", Counterrole: "Philips"},
		{ID: "a", Role: "EIT Digital", Practice: "partner", Counterrole: "KU Leuven"},
	}))

	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	id, s := m.Create()
	require.NotNil(t, s)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("unknown")
	assert.False(t, ok)

	m.Delete(id)
	assert.Equal(t, 0, m.Len())
	m.Delete(id) // no-op
}
