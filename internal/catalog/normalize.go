package catalog

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// destinationNamespace seeds the name-based UUIDs so IDs are stable across
// loads of the same dataset.
var destinationNamespace = uuid.MustParse("5b0c3f5e-8f0e-4c61-9d0a-2f1d7c9a4e11")

type options struct {
	locale language.Tag
}

// Option configures Normalize and New.
type Option func(*options)

// WithLocale sets the collation locale used to sort destinations by name.
// Defaults to English.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

func newOptions(opts []Option) options {
	o := options{locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Normalize flattens ds into one slice of destinations sorted by name under
// locale collation. ds is not modified. If any group or required field is
// missing the whole call fails with ErrMalformedInput.
func Normalize(ds Dataset, opts ...Option) ([]Destination, error) {
	o := newOptions(opts)

	if ds.Countries == nil {
		return nil, fmt.Errorf("%w: missing group %q", ErrMalformedInput, "countries")
	}
	if ds.Temples == nil {
		return nil, fmt.Errorf("%w: missing group %q", ErrMalformedInput, "temples")
	}
	if ds.Beaches == nil {
		return nil, fmt.Errorf("%w: missing group %q", ErrMalformedInput, "beaches")
	}

	total := len(ds.Temples) + len(ds.Beaches)
	for _, c := range ds.Countries {
		total += len(c.Cities)
	}
	out := make([]Destination, 0, total)

	for i, country := range ds.Countries {
		path := "countries[" + strconv.Itoa(i) + "]"
		if country.Name == "" {
			return nil, fmt.Errorf("%w: %s.name is empty", ErrMalformedInput, path)
		}
		if country.Cities == nil {
			return nil, fmt.Errorf("%w: %s.cities is missing", ErrMalformedInput, path)
		}
		for j, city := range country.Cities {
			d, err := flatten(city, CategoryCity, country.Name, path+".cities["+strconv.Itoa(j)+"]")
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}

	for i, t := range ds.Temples {
		d, err := flatten(t, CategoryTemple, "", "temples["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	for i, b := range ds.Beaches {
		d, err := flatten(b, CategoryBeach, "", "beaches["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	coll := collate.New(o.locale)
	slices.SortStableFunc(out, func(a, b Destination) int {
		return coll.CompareString(a.Name, b.Name)
	})
	return out, nil
}

func flatten(p Place, category Category, country, path string) (Destination, error) {
	if p.Name == "" {
		return Destination{}, fmt.Errorf("%w: %s.name is empty", ErrMalformedInput, path)
	}

	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = append(tags, category.DefaultTag())
	}

	return Destination{
		ID:          uuid.NewSHA1(destinationNamespace, []byte(path+"|"+country+"|"+p.Name)),
		Name:        p.Name,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Tags:        tags,
		Country:     country,
		Category:    category,
	}, nil
}
