package catalog

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// categoryKeywords maps shortcut keywords, already case folded, to the
// category they select.
var categoryKeywords = map[string]Category{
	"beach":     CategoryBeach,
	"beaches":   CategoryBeach,
	"temple":    CategoryTemple,
	"temples":   CategoryTemple,
	"country":   CategoryCity,
	"countries": CategoryCity,
	"city":      CategoryCity,
	"cities":    CategoryCity,
}

// LookupCategory resolves keyword against the shortcut vocabulary. Matching
// is exact after trimming and case folding.
func LookupCategory(keyword string) (Category, bool) {
	c, ok := categoryKeywords[cases.Fold().String(strings.TrimSpace(keyword))]
	return c, ok
}

// ByCategory keeps destinations flattened from category, in order.
func ByCategory(ds []Destination, category Category) []Destination {
	out := make([]Destination, 0, len(ds))
	for _, d := range ds {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Search runs the shortcut search. A vocabulary keyword returns its whole
// category, anything else falls back to substring matching. At most
// SearchCapacity hits are returned, and city hits are stamped with the
// local time of their country at now when a zone is known.
func (c *Catalog) Search(keyword string, now time.Time) SearchResult {
	keyword = strings.TrimSpace(keyword)
	res := SearchResult{Keyword: keyword, Results: []SearchHit{}}
	if keyword == "" {
		return res
	}

	var matches []Destination
	if category, ok := LookupCategory(keyword); ok {
		res.Category = category
		matches = ByCategory(c.destinations, category)
	} else {
		matches = MatchKeyword(c.destinations, keyword)
	}
	res.Matched = len(matches)

	for _, d := range matches[:min(len(matches), SearchCapacity)] {
		hit := SearchHit{Destination: clone(d)}
		if d.Category == CategoryCity {
			hit.CountryTime = LocalTime(d.Country, now)
		}
		res.Results = append(res.Results, hit)
	}
	return res
}
