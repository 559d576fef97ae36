package smsactivate

import (
	"sort"
	"strings"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// countryIDs maps ISO 3166-1 alpha-2 codes to SMS-Activate numeric
// country ids. The id space is SMS-Activate's own invention and is not
// derivable from any standard, so the table is maintained by hand
// against their published country list.
var countryIDs = map[smssolvers.Country]int{
	"RU": 0,
	"UA": 1,
	"KZ": 2,
	"CN": 3,
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
	"MG": 17,
	"CD": 18,
	"NG": 19,
	"MO": 20,
	"EG": 21,
	"IN": 22,
	"IE": 23,
	"KH": 24,
	"LA": 25,
	"HT": 26,
	"CI": 27,
	"GM": 28,
	"RS": 29,
	"YE": 30,
	"ZA": 31,
	"RO": 32,
	"CO": 33,
	"EE": 34,
	"CA": 36,
	"MA": 37,
	"GH": 38,
	"AR": 39,
	"UZ": 40,
	"CM": 41,
	"TD": 42,
	"DE": 43,
	"LT": 44,
	"HR": 45,
	"SE": 46,
	"IQ": 47,
	"NL": 48,
	"LV": 49,
	"AT": 50,
	"BY": 51,
	"TH": 52,
	"SA": 53,
	"MX": 54,
	"TW": 55,
	"ES": 56,
	"IR": 57,
	"DZ": 58,
	"SI": 59,
	"BD": 60,
	"SN": 61,
	"TR": 62,
	"CZ": 63,
	"LK": 64,
	"PE": 65,
	"PK": 66,
	"NZ": 67,
	"GN": 68,
	"ML": 69,
	"VE": 70,
	"BR": 73,
	"AF": 74,
	"UG": 75,
	"AO": 76,
	"CY": 77,
	"FR": 78,
	"PG": 79,
	"MZ": 80,
	"NP": 81,
	"BE": 82,
	"BG": 83,
	"HU": 84,
	"MD": 85,
	"IT": 86,
	"PY": 87,
	"HN": 88,
	"TN": 89,
	"NI": 90,
	"BO": 92,
	"CR": 93,
	"GT": 94,
	"AE": 95,
	"ZW": 96,
	"PR": 97,
	"SD": 98,
	"TG": 99,
	"KW": 100,
	"SV": 101,
	"LY": 102,
	"JM": 103,
	"TT": 104,
	"EC": 105,
	"SZ": 106,
	"OM": 107,
	"BA": 108,
	"DO": 109,
	"CL": 151,
	"PT": 117,
	"JP": 182,
	"KR": 190,
}

// countryID returns the SMS-Activate numeric id for an ISO country
// code, ok == false when no mapping exists.
func countryID(c smssolvers.Country) (int, bool) {
	id, ok := countryIDs[smssolvers.Country(strings.ToUpper(string(c)))]
	return id, ok
}

// mappedCountries returns every country with an SMS-Activate id, in
// stable order.
func mappedCountries() []smssolvers.Country {
	out := make([]smssolvers.Country, 0, len(countryIDs))
	for c := range countryIDs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
