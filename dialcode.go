package smssolvers

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DialCodeLookup resolves a country to its international calling code.
// It is injected into the Solver so the mapping source is explicit
// rather than hidden global state.
type DialCodeLookup interface {
	// DialCode returns the dial code for a country, ok == false when
	// the country is unknown to this lookup.
	DialCode(c Country) (DialCode, bool)
}

// LibDialCodes resolves dial codes from libphonenumber metadata. The
// zero value is ready to use and safe for concurrent use.
type LibDialCodes struct{}

func (LibDialCodes) DialCode(c Country) (DialCode, bool) {
	region := strings.ToUpper(strings.TrimSpace(string(c)))
	if region == "" {
		return DialCode{}, false
	}
	code := phonenumbers.GetCountryCodeForRegion(region)
	if code == 0 {
		return DialCode{}, false
	}
	dc, err := NewDialCode(strconv.Itoa(code))
	if err != nil {
		return DialCode{}, false
	}
	return dc, true
}

// MapDialCodes is a fixed country→dial-code table, for tests and for
// deployments that pin their own mapping.
type MapDialCodes map[Country]DialCode

func (m MapDialCodes) DialCode(c Country) (DialCode, bool) {
	dc, ok := m[Country(strings.ToUpper(strings.TrimSpace(string(c))))]
	return dc, ok
}
