package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-recommendation/internal/catalog"
)

const testDataset = `{
  "countries": [{"name": "Japan", "cities": [
    {"name": "Tokyo", "imageUrl": "tokyo.jpg", "description": "Big."},
    {"name": "Kyoto", "imageUrl": "kyoto.jpg", "description": "Old."}
  ]}],
  "temples": [
    {"name": "Angkor Wat", "imageUrl": "a.jpg", "description": "Vast."},
    {"name": "Taj Mahal", "imageUrl": "t.jpg", "description": "White."}
  ],
  "beaches": [
    {"name": "Bora Bora", "imageUrl": "b.jpg", "description": "Blue.", "tags": ["beach", "island"]}
  ]
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "travel.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o600))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--dataset", path}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestQueryCommand(t *testing.T) {
	out, err := run(t, "query", "--tag", "historic")
	require.NoError(t, err)
	assert.Contains(t, out, "Angkor Wat")
	assert.Contains(t, out, "Taj Mahal")
	assert.NotContains(t, out, "Tokyo")
	assert.Contains(t, out, "2 shown, 2 matched, 10 placeholders")
}

func TestQueryCommandNoResults(t *testing.T) {
	out, err := run(t, "query", "--keyword", "atlantis")
	require.NoError(t, err)
	assert.Equal(t, "No results for \"atlantis\"\n", out)
}

func TestQueryCommandJSON(t *testing.T) {
	out, err := run(t, "--json", "query", "-k", "JAPAN")
	require.NoError(t, err)

	var res catalog.QueryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Shown, 2)
	assert.Equal(t, "Kyoto", res.Shown[0].Name)
	assert.Equal(t, "Tokyo", res.Shown[1].Name)
	assert.Equal(t, 10, res.Placeholders)
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "--json", "search", "temples")
	require.NoError(t, err)

	var res catalog.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, catalog.CategoryTemple, res.Category)
	require.Len(t, res.Results, 2)
	assert.NotContains(t, out, "countryTime")
}

func TestTagsCommand(t *testing.T) {
	out, err := run(t, "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "historic")
	assert.Contains(t, out, "island")
}

func TestMissingDataset(t *testing.T) {
	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--dataset", filepath.Join(t.TempDir(), "nope.json"), "tags"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, catalog.ErrFetchFailure)
}
