package smsactivate

import smssolvers "github.com/rlgrpe/sms-solvers"

// Verification targets with first-class SMS-Activate service codes.
// Any other code the API understands can be passed as a raw
// smssolvers.Service value.
const (
	ServiceFullRent  smssolvers.Service = "full"
	ServiceInstagram smssolvers.Service = "ig"
	ServiceWhatsApp  smssolvers.Service = "wa"
	ServiceFacebook  smssolvers.Service = "fb"
	ServiceVFS       smssolvers.Service = "afp"
)

// knownServices is what SupportedServices reports. The API accepts
// many more codes; these are the ones this package ships constants for.
var knownServices = []smssolvers.Service{
	ServiceFullRent,
	ServiceInstagram,
	ServiceWhatsApp,
	ServiceFacebook,
	ServiceVFS,
}
