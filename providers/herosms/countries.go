package herosms

import (
	"sort"
	"strings"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// countryIDs maps ISO 3166-1 alpha-2 codes to Hero SMS numeric
// country ids. Hero SMS reuses the SMS-Activate id space, so the table
// is maintained against their published country list.
var countryIDs = map[smssolvers.Country]int{
	"RU": 0,
	"UA": 1,
	"KZ": 2,
	"PH": 4,
	"MM": 5,
	"ID": 6,
	"MY": 7,
	"KE": 8,
	"TZ": 9,
	"VN": 10,
	"KG": 11,
	"US": 12,
	"IL": 13,
	"HK": 14,
	"PL": 15,
	"GB": 16,
	"EG": 21,
	"IN": 22,
	"MA": 37,
	"CO": 33,
	"DE": 43,
	"FI": 46,
	"RO": 32,
	"NG": 19,
	"MX": 54,
	"TH": 52,
	"ES": 56,
	"TR": 62,
	"IT": 86,
	"BR": 73,
	"NL": 48,
	"FR": 78,
	"PT": 117,
	"RS": 29,
	"CA": 36,
	"AR": 39,
}

func countryID(c smssolvers.Country) (int, bool) {
	id, ok := countryIDs[smssolvers.Country(strings.ToUpper(strings.TrimSpace(string(c))))]
	return id, ok
}

func mappedCountries() []smssolvers.Country {
	countries := make([]smssolvers.Country, 0, len(countryIDs))
	for c := range countryIDs {
		countries = append(countries, c)
	}
	sort.Slice(countries, func(i, j int) bool { return countries[i] < countries[j] })
	return countries
}
