package smsactivate

import (
	"context"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// Provider adapts the SMS-Activate API to the smssolvers.Provider
// contract. Configure the blacklist before handing the provider to a
// solver; the contract methods themselves are safe for concurrent use.
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

// AllowDialCode removes a dial code from the blacklist and reports
// whether it was present.
func (p *Provider) AllowDialCode(dc smssolvers.DialCode) bool {
	_, ok := p.blacklisted[dc]
	delete(p.blacklisted, dc)
	return ok
}

// BlacklistedDialCodes returns the currently blacklisted dial codes.
func (p *Provider) BlacklistedDialCodes() []smssolvers.DialCode {
	codes := make([]smssolvers.DialCode, 0, len(p.blacklisted))
	for dc := range p.blacklisted {
		codes = append(codes, dc)
	}
	return codes
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

// SupportsService always reports true: SMS-Activate accepts arbitrary
// service codes, including ones this package does not name.
func (p *Provider) SupportsService(smssolvers.Service) bool { return true }

func (p *Provider) AvailableCountries(smssolvers.Service) []smssolvers.Country {
	return mappedCountries()
}

func (p *Provider) SupportedServices() []smssolvers.Service {
	return append([]smssolvers.Service(nil), knownServices...)
}
