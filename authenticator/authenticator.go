package authenticator

import (
	"context"
	"errors"
)

// Config holds OAuth provider configuration
type Config struct {
	Domain       string
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Validate checks that every required setting is present
func (c Config) Validate() error {
	if c.Domain == "" {
		return errors.New("domain is required")
	}
	if c.ClientID == "" {
		return errors.New("client ID is required")
	}
	if c.ClientSecret == "" {
		return errors.New("client secret is required")
	}
	if c.CallbackURL == "" {
		return errors.New("callback URL is required")
	}
	return nil
}

// Token represents an authentication token
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Claims represents user claims from the ID token
type Claims map[string]interface{}

// Subject returns the "sub" claim
func (c Claims) Subject() string {
	sub, _ := c["sub"].(string)
	return sub
}

// DisplayName picks nickname, then name, then email, then the subject
func (c Claims) DisplayName() string {
	for _, key := range []string{"nickname", "name", "email"} {
		if v, ok := c[key].(string); ok && v != "" {
			return v
		}
	}
	return c.Subject()
}

// Provider interface abstracts OAuth provider operations
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	GetClaims(ctx context.Context, token *Token) (Claims, error)
	// LogoutURL returns where to send the browser to end the provider
	// session, or "" when the provider has none.
	LogoutURL(returnTo string) string
}

// New builds the provider named by kind ("auth0" or "oidc")
func New(ctx context.Context, kind string, cfg Config) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch kind {
	case "auth0":
		p, err = NewAuth0Provider(ctx, cfg)
	case "oidc":
		p, err = NewOpenIDProvider(ctx, cfg)
	default:
		return nil, errors.New("unknown auth provider: " + kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
