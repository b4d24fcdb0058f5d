package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	// Capacity is the fixed number of grid slots a QueryResult fills.
	Capacity = 12
	// SearchCapacity caps the shortcut search.
	SearchCapacity = 2
)

// FilterByTags keeps destinations whose tags intersect active. An empty
// active set keeps everything. Order is preserved.
func FilterByTags(ds []Destination, active []string) []Destination {
	if len(active) == 0 {
		return ds
	}

	want := make(map[string]struct{}, len(active))
	for _, t := range active {
		want[t] = struct{}{}
	}

	out := make([]Destination, 0, len(ds))
	for _, d := range ds {
		for _, t := range d.Tags {
			if _, ok := want[t]; ok {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// MatchKeyword keeps destinations where keyword, folded for case, is a
// substring of a tag, the country or the name. A blank keyword keeps
// everything.
func MatchKeyword(ds []Destination, keyword string) []Destination {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ds
	}

	fold := cases.Fold()
	needle := fold.String(keyword)

	out := make([]Destination, 0, len(ds))
	for _, d := range ds {
		if matchesKeyword(fold, d, needle) {
			out = append(out, d)
		}
	}
	return out
}

func matchesKeyword(fold cases.Caser, d Destination, needle string) bool {
	for _, t := range d.Tags {
		if strings.Contains(fold.String(t), needle) {
			return true
		}
	}
	if d.Country != "" && strings.Contains(fold.String(d.Country), needle) {
		return true
	}
	return strings.Contains(fold.String(d.Name), needle)
}

// Paginate truncates matches to Capacity and computes the placeholder count.
func Paginate(matches []Destination, keyword string) QueryResult {
	n := min(len(matches), Capacity)
	shown := make([]Destination, n)
	for i := range n {
		shown[i] = clone(matches[i])
	}
	return QueryResult{
		Keyword:      strings.TrimSpace(keyword),
		Shown:        shown,
		Placeholders: Capacity - n,
		Matched:      len(matches),
	}
}

// FilterByTags applies only the active tag filters to the full set.
func (c *Catalog) FilterByTags(active []string) QueryResult {
	return Paginate(FilterByTags(c.destinations, active), "")
}

// SearchKeyword applies only the keyword to the full, unfiltered set.
func (c *Catalog) SearchKeyword(keyword string) QueryResult {
	return Paginate(MatchKeyword(c.destinations, keyword), keyword)
}

// Query layers the tag filters and the keyword, in that order, over the full
// set.
func (c *Catalog) Query(p QueryParams) QueryResult {
	matches := FilterByTags(c.destinations, p.ActiveTags)
	matches = MatchKeyword(matches, p.Keyword)
	return Paginate(matches, p.Keyword)
}
