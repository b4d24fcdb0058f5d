// Package catalog flattens a travel dataset into destinations and answers
// grid and search queries over them.
package catalog

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Catalog is an immutable, normalized view of one dataset load. A reload
// builds a new Catalog; an existing one is never patched.
type Catalog struct {
	destinations []Destination
	byID         map[uuid.UUID]int
	generation   uuid.UUID
	source       string
	loadedAt     time.Time
	locale       language.Tag
}

// New normalizes ds and returns the resulting Catalog. source is recorded
// for diagnostics only.
func New(ds Dataset, source string, opts ...Option) (*Catalog, error) {
	o := newOptions(opts)
	dests, err := Normalize(ds, opts...)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]int, len(dests))
	for i, d := range dests {
		byID[d.ID] = i
	}

	return &Catalog{
		destinations: dests,
		byID:         byID,
		generation:   uuid.New(),
		source:       source,
		loadedAt:     time.Now(),
		locale:       o.locale,
	}, nil
}

// Len returns the number of destinations.
func (c *Catalog) Len() int { return len(c.destinations) }

// Generation identifies this particular load.
func (c *Catalog) Generation() uuid.UUID { return c.generation }

func (c *Catalog) Source() string       { return c.source }
func (c *Catalog) LoadedAt() time.Time  { return c.loadedAt }
func (c *Catalog) Locale() language.Tag { return c.locale }

// Destinations returns a copy of every destination in sorted order.
func (c *Catalog) Destinations() []Destination {
	out := make([]Destination, len(c.destinations))
	for i, d := range c.destinations {
		out[i] = clone(d)
	}
	return out
}

// Get looks a destination up by ID.
func (c *Catalog) Get(id uuid.UUID) (Destination, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Destination{}, false
	}
	return clone(c.destinations[i]), true
}

// Tags returns every distinct tag with the number of destinations that carry
// it, sorted by tag.
func (c *Catalog) Tags() []TagCount {
	counts := make(map[string]int)
	for _, d := range c.destinations {
		for _, t := range d.Tags {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		switch {
		case a.Tag < b.Tag:
			return -1
		case a.Tag > b.Tag:
			return 1
		}
		return 0
	})
	return out
}

func clone(d Destination) Destination {
	d.Tags = slices.Clone(d.Tags)
	return d
}
