package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testShape struct {
	Role     string `json:"role"`
	Practice string `json:"practice"`
}

func TestParseObjectPlain(t *testing.T) {
	got, err := ParseObject[testShape](`{"role": "EIT Health", "practice": "fund"}`)
	require.NoError(t, err)
	assert.Equal(t, testShape{Role: "EIT Health", Practice: "fund"}, got)
}

func TestParseObjectWithSurroundingText(t *testing.T) {
	response := `Sure! Here is the result:
{"role": "EIT Health", "practice": "fund"}
Let me know if you need anything else.`

	got, err := ParseObject[testShape](response)
	require.NoError(t, err)
	assert.Equal(t, "EIT Health", got.Role)
}

func TestParseObjectNoJSON(t *testing.T) {
	_, err := ParseObject[testShape]("no structured data here")
	assert.Error(t, err)
}

func TestParseArrayPlain(t *testing.T) {
	got, err := ParseArray[testShape](`[{"role": "a"}, {"role": "b"}]`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Role)
}

func TestParseArrayMarkdownFence(t *testing.T) {
	response := "```json\n[{\"role\": \"EIT Health\"}]\n```"

	got, err := ParseArray[testShape](response)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "EIT Health", got[0].Role)
}

func TestParseArrayBareFence(t *testing.T) {
	response := "```\n[{\"role\": \"EIT Health\"}]\n```"

	got, err := ParseArray[testShape](response)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestParseArrayJSONPrefix(t *testing.T) {
	got, err := ParseArray[testShape](`JSON: [{"role": "EIT Health"}]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "EIT Health", got[0].Role)
}

func TestParseArrayBareObjectPromoted(t *testing.T) {
	got, err := ParseArray[testShape](`{"role": "EIT Health", "practice": "fund"}`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fund", got[0].Practice)
}

func TestParseArrayEmpty(t *testing.T) {
	got, err := ParseArray[testShape](`[]`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseArrayNothingParsable(t *testing.T) {
	_, err := ParseArray[testShape]("the model refused to answer")
	assert.Error(t, err)
}
