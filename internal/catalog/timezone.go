package catalog

import (
	"sync"
	"time"
	_ "time/tzdata"
)

// CountryTimeLayout formats the local time attached to shortcut search hits.
const CountryTimeLayout = "3:04:05 PM"

var countryTimeZones = map[string]string{
	"Australia":        "Australia/Sydney",
	"Japan":            "Asia/Tokyo",
	"Brazil":           "America/Sao_Paulo",
	"India":            "Asia/Kolkata",
	"Cambodia":         "Asia/Phnom_Penh",
	"French Polynesia": "Pacific/Tahiti",
}

var countryLocations = sync.OnceValue(func() map[string]*time.Location {
	locs := make(map[string]*time.Location, len(countryTimeZones))
	for country, zone := range countryTimeZones {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			continue
		}
		locs[country] = loc
	}
	return locs
})

// TimeZoneFor returns the location mapped to country, if any.
func TimeZoneFor(country string) (*time.Location, bool) {
	loc, ok := countryLocations()[country]
	return loc, ok
}

// LocalTime formats now in country's zone, or returns "" for unmapped
// countries.
func LocalTime(country string, now time.Time) string {
	loc, ok := TimeZoneFor(country)
	if !ok {
		return ""
	}
	return now.In(loc).Format(CountryTimeLayout)
}
