package region

import (
	"sort"
	"strings"
)

// Country is an ISO 3166-1 alpha-2 code with an English name.
type Country struct {
	Code string
	Name string
}

// Continent groups the tracked countries of one continent.
type Continent struct {
	Name      string
	Countries []Country
}

// Continents is the table of tracked countries, in display order.
var Continents = []Continent{
	{"Asia", []Country{
		{"CN", "China"}, {"TW", "Taiwan"}, {"HK", "Hong Kong"}, {"JP", "Japan"},
		{"SG", "Singapore"}, {"TH", "Thailand"}, {"VN", "Vietnam"}, {"ID", "Indonesia"},
	}},
	{"Europe", []Country{
		{"GB", "United Kingdom"}, {"FR", "France"}, {"DE", "Germany"}, {"ES", "Spain"},
		{"NL", "Netherlands"}, {"SE", "Sweden"}, {"BE", "Belgium"},
	}},
	{"North America", []Country{
		{"US", "United States"}, {"CA", "Canada"}, {"MX", "Mexico"},
	}},
	{"South America", []Country{
		{"BR", "Brazil"}, {"AR", "Argentina"}, {"CL", "Chile"}, {"CO", "Colombia"}, {"PE", "Peru"},
	}},
	{"Oceania", []Country{
		{"AU", "Australia"}, {"NZ", "New Zealand"},
	}},
	{"Africa", []Country{
		{"ZA", "South Africa"}, {"EG", "Egypt"}, {"NG", "Nigeria"},
	}},
}

// Coverage is the availability of one continent's tracked countries.
type Coverage struct {
	Continent string

	// Available is sorted by code.
	Available []Country

	// Unavailable keeps table order.
	Unavailable []Country
}

// Tracked returns the number of tracked countries in the continent.
func (c Coverage) Tracked() int {
	return len(c.Available) + len(c.Unavailable)
}

// Bucket returns, in table order, the continents with at least one
// tracked country present in markets. Market codes are matched
// case-insensitively.
func Bucket(markets []string) []Coverage {
	present := normalize(markets)

	var out []Coverage
	for _, cont := range Continents {
		cov := Coverage{Continent: cont.Name}
		for _, c := range cont.Countries {
			if _, ok := present[c.Code]; ok {
				cov.Available = append(cov.Available, c)
			} else {
				cov.Unavailable = append(cov.Unavailable, c)
			}
		}
		if len(cov.Available) == 0 {
			continue
		}
		sort.Slice(cov.Available, func(i, j int) bool {
			return cov.Available[i].Code < cov.Available[j].Code
		})
		out = append(out, cov)
	}
	return out
}

// Total returns the number of distinct market codes.
func Total(markets []string) int {
	return len(normalize(markets))
}

func normalize(markets []string) map[string]struct{} {
	set := make(map[string]struct{}, len(markets))
	for _, m := range markets {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" {
			set[m] = struct{}{}
		}
	}
	return set
}
