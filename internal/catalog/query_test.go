package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(sampleDataset(), "sample.json")
	require.NoError(t, err)
	return c
}

func TestQuery(t *testing.T) {
	c := newSampleCatalog(t)

	t.Run("no params shows everything with placeholders", func(t *testing.T) {
		res := c.Query(QueryParams{})
		assert.Len(t, res.Shown, 7)
		assert.Equal(t, 5, res.Placeholders)
		assert.Equal(t, 7, res.Matched)
		assert.Equal(t, Capacity, len(res.Shown)+res.Placeholders)
	})

	t.Run("tag filter", func(t *testing.T) {
		res := c.Query(QueryParams{ActiveTags: []string{"beach"}})
		assert.Equal(t, []string{"Bora Bora", "Copacabana Beach", "Whitehaven Beach"}, names(res.Shown))
		for _, d := range res.Shown {
			assert.True(t, d.HasTag("beach"))
		}
		assert.Equal(t, 9, res.Placeholders)
	})

	t.Run("tag filter is an intersection and case-sensitive", func(t *testing.T) {
		res := c.Query(QueryParams{ActiveTags: []string{"island", "historic"}})
		assert.Equal(t, []string{"Angkor Wat", "Bora Bora", "Taj Mahal"}, names(res.Shown))

		res = c.Query(QueryParams{ActiveTags: []string{"Beach"}})
		assert.Empty(t, res.Shown)
		assert.True(t, res.Empty())
		assert.Equal(t, Capacity, res.Placeholders)
	})

	t.Run("keyword is case-insensitive", func(t *testing.T) {
		upper := c.Query(QueryParams{Keyword: "JAPAN"})
		lower := c.Query(QueryParams{Keyword: "japan"})
		assert.Equal(t, []string{"Kyoto", "Tokyo"}, names(upper.Shown))
		assert.Equal(t, names(upper.Shown), names(lower.Shown))
	})

	t.Run("keyword matches tags, country and name by substring", func(t *testing.T) {
		assert.Equal(t, []string{"Bora Bora"}, names(c.Query(QueryParams{Keyword: "isl"}).Shown))
		assert.Equal(t, []string{"Kyoto", "Tokyo"}, names(c.Query(QueryParams{Keyword: "apa"}).Shown))
		assert.Equal(t, []string{"Taj Mahal"}, names(c.Query(QueryParams{Keyword: "mahal"}).Shown))
	})

	t.Run("blank keyword is no keyword", func(t *testing.T) {
		filtered := c.Query(QueryParams{ActiveTags: []string{"historic"}})
		blank := c.Query(QueryParams{ActiveTags: []string{"historic"}, Keyword: "   "})
		assert.Equal(t, names(filtered.Shown), names(blank.Shown))
		assert.Equal(t, "", blank.Keyword)
		assert.Len(t, c.Query(QueryParams{Keyword: ""}).Shown, 7)
	})

	t.Run("tags and keyword compose with AND", func(t *testing.T) {
		res := c.Query(QueryParams{ActiveTags: []string{"beach"}, Keyword: "bora"})
		assert.Equal(t, []string{"Bora Bora"}, names(res.Shown))

		res = c.Query(QueryParams{ActiveTags: []string{"historic"}, Keyword: "japan"})
		assert.Empty(t, res.Shown)
		assert.Equal(t, "japan", res.Keyword)
	})

	t.Run("independent entry points", func(t *testing.T) {
		assert.Equal(t, names(c.Query(QueryParams{ActiveTags: []string{"city"}}).Shown),
			names(c.FilterByTags([]string{"city"}).Shown))

		res := c.SearchKeyword(" Beach ")
		assert.Equal(t, "Beach", res.Keyword)
		assert.Equal(t, []string{"Bora Bora", "Copacabana Beach", "Whitehaven Beach"}, names(res.Shown))
	})

	t.Run("every query starts from the full set", func(t *testing.T) {
		_ = c.Query(QueryParams{ActiveTags: []string{"city"}})
		assert.Len(t, c.Query(QueryParams{}).Shown, 7)
	})
}

func TestQueryTruncatesToCapacity(t *testing.T) {
	beaches := make([]Place, 20)
	for i := range beaches {
		beaches[i] = Place{Name: fmt.Sprintf("Beach %02d", 20-i)}
	}
	c, err := New(Dataset{Countries: []Country{}, Temples: []Place{}, Beaches: beaches}, "many.json")
	require.NoError(t, err)

	res := c.Query(QueryParams{})
	require.Len(t, res.Shown, Capacity)
	assert.Equal(t, 0, res.Placeholders)
	assert.Equal(t, 20, res.Matched)
	assert.Equal(t, "Beach 01", res.Shown[0].Name)
	assert.Equal(t, "Beach 12", res.Shown[Capacity-1].Name)

	res = c.Query(QueryParams{Keyword: "beach 1"})
	assert.Len(t, res.Shown, 10)
	assert.Equal(t, 2, res.Placeholders)
}

func TestPaginateEmpty(t *testing.T) {
	res := Paginate(nil, "nowhere")
	assert.NotNil(t, res.Shown)
	assert.Empty(t, res.Shown)
	assert.Equal(t, Capacity, res.Placeholders)
	assert.Equal(t, "nowhere", res.Keyword)
}

func TestSearch(t *testing.T) {
	c := newSampleCatalog(t)
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("temples shortcut", func(t *testing.T) {
		res := c.Search("temples", now)
		assert.Equal(t, CategoryTemple, res.Category)
		assert.Equal(t, 2, res.Matched)
		require.Len(t, res.Results, 2)
		assert.Equal(t, "Angkor Wat", res.Results[0].Name)
		assert.Equal(t, "Taj Mahal", res.Results[1].Name)
		for _, hit := range res.Results {
			assert.Equal(t, CategoryTemple, hit.Category)
			assert.Empty(t, hit.CountryTime)
		}
	})

	t.Run("shortcut is capped at two", func(t *testing.T) {
		res := c.Search("BEACH", now)
		assert.Equal(t, CategoryBeach, res.Category)
		assert.Equal(t, 3, res.Matched)
		require.Len(t, res.Results, SearchCapacity)
		assert.Equal(t, "Bora Bora", res.Results[0].Name)
		assert.Equal(t, "Copacabana Beach", res.Results[1].Name)
	})

	t.Run("city shortcut carries local time", func(t *testing.T) {
		res := c.Search(" Countries ", now)
		assert.Equal(t, CategoryCity, res.Category)
		require.Len(t, res.Results, 2)
		for _, hit := range res.Results {
			assert.Equal(t, "9:00:00 PM", hit.CountryTime)
		}
	})

	t.Run("non-vocabulary keyword falls back to substring", func(t *testing.T) {
		res := c.Search("tokyo", now)
		assert.Equal(t, Category(""), res.Category)
		require.Len(t, res.Results, 1)
		assert.Equal(t, "Tokyo", res.Results[0].Name)
		assert.Equal(t, "9:00:00 PM", res.Results[0].CountryTime)
	})

	t.Run("unmapped country has no time", func(t *testing.T) {
		ds := Dataset{
			Countries: []Country{{Name: "Atlantis", Cities: []Place{{Name: "Poseidonia"}}}},
			Temples:   []Place{},
			Beaches:   []Place{},
		}
		other, err := New(ds, "atlantis.json")
		require.NoError(t, err)

		res := other.Search("city", now)
		require.Len(t, res.Results, 1)
		assert.Empty(t, res.Results[0].CountryTime)
	})

	t.Run("blank keyword", func(t *testing.T) {
		res := c.Search("  ", now)
		assert.Empty(t, res.Results)
		assert.NotNil(t, res.Results)
		assert.Zero(t, res.Matched)
	})
}

func TestLookupCategory(t *testing.T) {
	tests := map[string]Category{
		"beach":     CategoryBeach,
		"Beaches":   CategoryBeach,
		"TEMPLE":    CategoryTemple,
		"temples":   CategoryTemple,
		"country":   CategoryCity,
		"countries": CategoryCity,
		"City":      CategoryCity,
		"cities":    CategoryCity,
	}
	for kw, want := range tests {
		got, ok := LookupCategory(kw)
		assert.True(t, ok, kw)
		assert.Equal(t, want, got, kw)
	}

	_, ok := LookupCategory("beachfront")
	assert.False(t, ok)
}

func TestLocalTime(t *testing.T) {
	now := time.Date(2024, time.January, 15, 0, 30, 0, 0, time.UTC)

	assert.Equal(t, "9:30:00 AM", LocalTime("Japan", now))
	assert.Equal(t, "", LocalTime("Narnia", now))

	loc, ok := TimeZoneFor("Brazil")
	require.True(t, ok)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}
