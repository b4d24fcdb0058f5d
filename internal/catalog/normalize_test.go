package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func TestNormalize(t *testing.T) {
	t.Run("flattens and sorts", func(t *testing.T) {
		got, err := Normalize(sampleDataset())
		require.NoError(t, err)

		want := []string{
			"Angkor Wat",
			"Bora Bora",
			"Copacabana Beach",
			"Kyoto",
			"Taj Mahal",
			"Tokyo",
			"Whitehaven Beach",
		}
		if diff := cmp.Diff(want, names(got)); diff != "" {
			t.Errorf("Normalize() order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("default tags follow category", func(t *testing.T) {
		got, err := Normalize(sampleDataset())
		require.NoError(t, err)

		for _, d := range got {
			require.NotEmpty(t, d.Tags, d.Name)
			switch d.Name {
			case "Tokyo", "Kyoto":
				assert.Equal(t, []string{"city"}, d.Tags)
				assert.Equal(t, "Japan", d.Country)
				assert.Equal(t, CategoryCity, d.Category)
			case "Taj Mahal", "Angkor Wat":
				assert.Equal(t, []string{"historic"}, d.Tags)
				assert.Empty(t, d.Country)
				assert.Equal(t, CategoryTemple, d.Category)
			case "Bora Bora":
				assert.Equal(t, []string{"beach", "island"}, d.Tags)
				assert.Equal(t, CategoryBeach, d.Category)
			default:
				assert.Equal(t, []string{"beach"}, d.Tags)
				assert.Empty(t, d.Country)
			}
		}
	})

	t.Run("empty tag list falls back to default", func(t *testing.T) {
		ds := Dataset{
			Countries: []Country{},
			Temples:   []Place{{Name: "Borobudur", Tags: []string{}}},
			Beaches:   []Place{},
		}
		got, err := Normalize(ds)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []string{"historic"}, got[0].Tags)
	})

	t.Run("empty groups are valid", func(t *testing.T) {
		got, err := Normalize(Dataset{Countries: []Country{}, Temples: []Place{}, Beaches: []Place{}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("sorts by locale collation, not bytes", func(t *testing.T) {
		ds := Dataset{
			Countries: []Country{},
			Temples:   []Place{},
			Beaches: []Place{
				{Name: "Zebra Bay"},
				{Name: "éden Rock"},
				{Name: "apple Cove"},
				{Name: "Banana Reef"},
			},
		}
		got, err := Normalize(ds)
		require.NoError(t, err)
		assert.Equal(t, []string{"apple Cove", "Banana Reef", "éden Rock", "Zebra Bay"}, names(got))

		coll := collate.New(language.English)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, coll.CompareString(got[i-1].Name, got[i].Name), 0)
		}
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		ds := Dataset{
			Countries: []Country{{Name: "Brazil", Cities: []Place{{Name: "Rio"}}}},
			Temples:   []Place{},
			Beaches:   []Place{{Name: "Rio"}},
		}
		got, err := Normalize(ds)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.NotEqual(t, got[0].ID, got[1].ID)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := Normalize(sampleDataset())
		require.NoError(t, err)
		second, err := Normalize(sampleDataset())
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Normalize() not deterministic (-first +second):\n%s", diff)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		ds := sampleDataset()
		got, err := Normalize(ds)
		require.NoError(t, err)

		assert.Nil(t, ds.Countries[0].Cities[0].Tags)
		for i := range got {
			if got[i].Name == "Bora Bora" {
				got[i].Tags[0] = "changed"
			}
		}
		assert.Equal(t, []string{"beach", "island"}, ds.Beaches[1].Tags)
	})
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		ds      Dataset
		wantMsg string
	}{
		{
			name:    "missing countries",
			ds:      Dataset{Temples: []Place{}, Beaches: []Place{}},
			wantMsg: "countries",
		},
		{
			name:    "missing temples",
			ds:      Dataset{Countries: []Country{}, Beaches: []Place{}},
			wantMsg: "temples",
		},
		{
			name:    "missing beaches",
			ds:      Dataset{Countries: []Country{}, Temples: []Place{}},
			wantMsg: "beaches",
		},
		{
			name: "missing cities",
			ds: Dataset{
				Countries: []Country{{Name: "Japan"}},
				Temples:   []Place{},
				Beaches:   []Place{},
			},
			wantMsg: "countries[0].cities",
		},
		{
			name: "unnamed city",
			ds: Dataset{
				Countries: []Country{{Name: "Japan", Cities: []Place{{Name: "Tokyo"}, {ImageURL: "x.jpg"}}}},
				Temples:   []Place{},
				Beaches:   []Place{},
			},
			wantMsg: "countries[0].cities[1].name",
		},
		{
			name: "unnamed beach",
			ds: Dataset{
				Countries: []Country{},
				Temples:   []Place{},
				Beaches:   []Place{{Description: "no name"}},
			},
			wantMsg: "beaches[0].name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.ds)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Nil(t, got)
		})
	}
}

func TestNewCatalog(t *testing.T) {
	c, err := New(sampleDataset(), "sample.json")
	require.NoError(t, err)

	assert.Equal(t, 7, c.Len())
	assert.Equal(t, "sample.json", c.Source())
	assert.Equal(t, language.English, c.Locale())
	assert.False(t, c.LoadedAt().IsZero())

	all := c.Destinations()
	d, ok := c.Get(all[3].ID)
	require.True(t, ok)
	assert.Equal(t, "Kyoto", d.Name)

	all[3].Tags[0] = "mutated"
	d, _ = c.Get(all[3].ID)
	assert.Equal(t, []string{"city"}, d.Tags)

	other, err := New(sampleDataset(), "sample.json")
	require.NoError(t, err)
	assert.NotEqual(t, c.Generation(), other.Generation())
	assert.Equal(t, names(c.Destinations()), names(other.Destinations()))

	_, err = New(Dataset{}, "empty.json")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestCatalogTags(t *testing.T) {
	c, err := New(sampleDataset(), "sample.json")
	require.NoError(t, err)

	assert.Equal(t, []TagCount{
		{Tag: "beach", Count: 3},
		{Tag: "city", Count: 2},
		{Tag: "historic", Count: 2},
		{Tag: "island", Count: 1},
	}, c.Tags())
}
