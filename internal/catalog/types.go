package catalog

import "github.com/google/uuid"

// Category is the dataset group a Destination was flattened from.
type Category string

const (
	CategoryCity   Category = "city"
	CategoryTemple Category = "temple"
	CategoryBeach  Category = "beach"
)

// DefaultTag returns the tag assigned to a record of this category when the
// source supplies none.
func (c Category) DefaultTag() string {
	switch c {
	case CategoryCity:
		return "city"
	case CategoryTemple:
		return "historic"
	case CategoryBeach:
		return "beach"
	}
	return ""
}

// Place is one city, temple or beach as it appears in the raw dataset.
type Place struct {
	Name        string   `json:"name" yaml:"name"`
	ImageURL    string   `json:"imageUrl" yaml:"imageUrl"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Country groups cities under a country name.
type Country struct {
	Name   string  `json:"name" yaml:"name"`
	Cities []Place `json:"cities" yaml:"cities"`
}

// Dataset is the raw, nested document. A nil group is treated as absent.
type Dataset struct {
	Countries []Country `json:"countries" yaml:"countries"`
	Temples   []Place   `json:"temples" yaml:"temples"`
	Beaches   []Place   `json:"beaches" yaml:"beaches"`
}

// Destination is the normalized record produced from a Dataset.
type Destination struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Country     string    `json:"country,omitempty"`
	Category    Category  `json:"category"`
}

// HasTag reports whether tag is one of d's tags. Comparison is exact.
func (d Destination) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// QueryParams is a grid query. Both fields are optional.
type QueryParams struct {
	Keyword    string   `json:"keyword,omitempty"`
	ActiveTags []string `json:"activeTags,omitempty"`
}

// QueryResult is a bounded page of matches. len(Shown)+Placeholders equals
// Capacity whenever Matched <= Capacity.
type QueryResult struct {
	Keyword      string        `json:"keyword,omitempty"`
	Shown        []Destination `json:"shown"`
	Placeholders int           `json:"placeholders"`
	Matched      int           `json:"matched"`
}

// Empty reports whether nothing matched.
func (r QueryResult) Empty() bool { return r.Matched == 0 }

// Clone returns a copy that shares no slices with r.
func (r QueryResult) Clone() QueryResult {
	shown := make([]Destination, len(r.Shown))
	for i, d := range r.Shown {
		shown[i] = clone(d)
	}
	r.Shown = shown
	return r
}

// SearchHit is a shortcut-search match, optionally stamped with the local
// time of the city's country.
type SearchHit struct {
	Destination
	CountryTime string `json:"countryTime,omitempty"`
}

// SearchResult is the output of the category shortcut search.
type SearchResult struct {
	Keyword  string      `json:"keyword"`
	Category Category    `json:"category,omitempty"`
	Results  []SearchHit `json:"results"`
	Matched  int         `json:"matched"`
}

// TagCount is a distinct tag and the number of destinations carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
