package herosms

import (
	"context"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// Verification targets with first-class Hero SMS service codes. Any
// other code the API understands can be passed as a raw
// smssolvers.Service value.
const (
	ServiceInstagramThreads smssolvers.Service = "ig"
	ServiceWhatsApp         smssolvers.Service = "wa"
	ServiceFacebook         smssolvers.Service = "fb"
)

var knownServices = []smssolvers.Service{
	ServiceInstagramThreads,
	ServiceWhatsApp,
	ServiceFacebook,
}

// Provider adapts the Hero SMS API to the smssolvers.Provider
// contract. Configure the blacklist before handing the provider to a
// solver.
type Provider struct {
	client      *Client
	blacklisted map[smssolvers.DialCode]struct{}
}

var _ smssolvers.Provider = (*Provider)(nil)

// NewProvider wraps the client with no blacklisted dial codes.
func NewProvider(client *Client) *Provider {
	return &Provider{
		client:      client,
		blacklisted: make(map[smssolvers.DialCode]struct{}),
	}
}

// NewProviderWithBlacklist wraps the client and refuses numbers from
// the given dial codes.
func NewProviderWithBlacklist(client *Client, codes ...smssolvers.DialCode) *Provider {
	p := NewProvider(client)
	for _, dc := range codes {
		p.blacklisted[dc] = struct{}{}
	}
	return p
}

// BlacklistDialCode adds a dial code to the blacklist.
func (p *Provider) BlacklistDialCode(dc smssolvers.DialCode) {
	p.blacklisted[dc] = struct{}{}
}

func (p *Provider) AcquireNumber(ctx context.Context, country smssolvers.Country, service smssolvers.Service) (smssolvers.TaskID, smssolvers.FullNumber, error) {
	id, ok := countryID(country)
	if !ok {
		return "", "", &CountryError{Country: country}
	}

	resp, err := p.client.GetNumber(ctx, id, string(service))
	if err != nil {
		return "", "", err
	}
	return smssolvers.TaskID(resp.ActivationID), smssolvers.FullNumber(resp.PhoneNumber), nil
}

func (p *Provider) PollCode(ctx context.Context, id smssolvers.TaskID) (smssolvers.Code, bool, error) {
	resp, err := p.client.GetStatus(ctx, string(id))
	if err != nil {
		return "", false, err
	}
	if resp.SMS != nil && resp.SMS.Code != "" {
		return smssolvers.Code(resp.SMS.Code), true, nil
	}
	return "", false, nil
}

func (p *Provider) Finish(ctx context.Context, id smssolvers.TaskID) error {
	_, err := p.client.SetStatus(ctx, string(id), StatusFinish)
	return err
}

func (p *Provider) Cancel(ctx context.Context, id smssolvers.TaskID) error {
	_, err := p.client.SetStatus(ctx, string(id), StatusCancel)
	return err
}

func (p *Provider) IsDialCodeSupported(dc smssolvers.DialCode) bool {
	_, blocked := p.blacklisted[dc]
	return !blocked
}

// SupportsService always reports true: Hero SMS accepts arbitrary
// service codes.
func (p *Provider) SupportsService(smssolvers.Service) bool { return true }

func (p *Provider) AvailableCountries(smssolvers.Service) []smssolvers.Country {
	return mappedCountries()
}

func (p *Provider) SupportedServices() []smssolvers.Service {
	return append([]smssolvers.Service(nil), knownServices...)
}
