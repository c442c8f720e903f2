package authenticator

import (
	"context"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Auth0Provider is an OpenID provider with Auth0's logout endpoint
type Auth0Provider struct {
	*OpenIDProvider
	domain string
}

// NewAuth0Provider creates a new Auth0 provider with the given configuration
func NewAuth0Provider(ctx context.Context, cfg Config) (*Auth0Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Auth0 issuers carry a trailing slash
	p, err := newOpenIDProvider(ctx, "https://"+cfg.Domain+"/", cfg, oidc.ScopeOpenID, "profile")
	if err != nil {
		return nil, err
	}

	return &Auth0Provider{OpenIDProvider: p, domain: cfg.Domain}, nil
}

// LogoutURL returns the Auth0 /v2/logout URL
func (p *Auth0Provider) LogoutURL(returnTo string) string {
	q := url.Values{}
	q.Set("returnTo", returnTo)
	q.Set("client_id", p.config.ClientID)
	return "https://" + p.domain + "/v2/logout?" + q.Encode()
}
