package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sociotyper/sociotyper/internal/core/model"
)

func exportFixture() []model.Triplet {
	return []model.Triplet{
		{
			ID:          "1",
			Role:        "EIT Health",
			Practice:    "fund",
			Counterrole: "Philips",
			Context:     `the agency "backed" three startups, including Philips`,
			Confidence:  0.85,
			Validated:   model.StatusAccepted,
		},
		{
			ID:          "2",
			Role:        "EIT Digital",
			Practice:    "partner",
			Counterrole: "KU Leuven",
			Confidence:  0.5,
			Validated:   model.StatusPending,
		},
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	triplets := exportFixture()

	data, err := ToJSON(triplets, now)
	require.NoError(t, err)

	parsed, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, now, parsed.ExportedAt)
	assert.Equal(t, 2, parsed.TotalTriplets)
	assert.Equal(t, triplets, parsed.Triplets)
}

func TestToJSONEmpty(t *testing.T) {
	data, err := ToJSON(nil, time.Now())
	require.NoError(t, err)

	parsed, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.TotalTriplets)
	assert.NotNil(t, parsed.Triplets)
	assert.Empty(t, parsed.Triplets)
}

func TestToCSVHeaderAndRows(t *testing.T) {
	data, err := ToCSV(exportFixture())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Role,Practice,Counterrole,Context,Confidence,Validated", lines[0])
	assert.Equal(t, "2,EIT Digital,partner,KU Leuven,,0.5,pending", lines[2])
}

func TestToCSVEscapesQuotes(t *testing.T) {
	data, err := ToCSV(exportFixture())
	require.NoError(t, err)

	// Embedded double quotes are doubled and the field wrapped.
	assert.Contains(t, string(data), `"the agency ""backed"" three startups, including Philips"`)
}

func TestToCSVEmpty(t *testing.T) {
	data, err := ToCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "ID,Role,Practice,Counterrole,Context,Confidence,Validated\n", string(data))
}

func TestGraphToJSON(t *testing.T) {
	g := model.Graph{
		Nodes: []model.GraphNode{{ID: "EIT Health"}, {ID: "Philips"}},
		Links: []model.GraphLink{{Source: "EIT Health", Target: "Philips", Practice: "fund"}},
	}

	data, err := GraphToJSON(g)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"source": "EIT Health"`)
	assert.Contains(t, s, `"target": "Philips"`)
	assert.Contains(t, s, `"practice": "fund"`)
}

func TestGraphToJSONEmptyArraysNotNull(t *testing.T) {
	data, err := GraphToJSON(model.Graph{})
	require.NoError(t, err)

	s := string(data)
	assert.NotContains(t, s, "null")
	assert.Contains(t, s, `"nodes": []`)
	assert.Contains(t, s, `"links": []`)
}

func TestToXLSX(t *testing.T) {
	data, err := ToXLSX(exportFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxSheet}, f.GetSheetList())

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "EIT Health", rows[1][1])
	assert.Equal(t, "pending", rows[2][6])
}
