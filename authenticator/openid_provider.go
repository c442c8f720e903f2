package authenticator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OpenIDProvider implements the Provider interface for OpenID Connect
type OpenIDProvider struct {
	provider   *oidc.Provider
	config     oauth2.Config
	endSession string
}

// NewOpenIDProvider discovers the issuer at cfg.Domain. A bare host is
// treated as https://host.
func NewOpenIDProvider(ctx context.Context, cfg Config) (*OpenIDProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	issuer := cfg.Domain
	if !strings.Contains(issuer, "://") {
		issuer = "https://" + issuer
	}
	return newOpenIDProvider(ctx, issuer, cfg, oidc.ScopeOpenID, "profile", "email")
}

func newOpenIDProvider(ctx context.Context, issuer string, cfg Config, scopes ...string) (*OpenIDProvider, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", issuer, err)
	}

	var meta struct {
		EndSession string `json:"end_session_endpoint"`
	}
	if err := provider.Claims(&meta); err != nil {
		return nil, fmt.Errorf("read provider metadata: %w", err)
	}

	return &OpenIDProvider{
		provider: provider,
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       scopes,
		},
		endSession: meta.EndSession,
	}, nil
}

// GetAuthURL returns the authorization URL for OpenID Connect
func (p *OpenIDProvider) GetAuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for tokens
func (p *OpenIDProvider) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	oauth2Token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	token := &Token{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
		Expiry:       oauth2Token.Expiry.Unix(),
	}

	if idToken, ok := oauth2Token.Extra("id_token").(string); ok {
		token.IDToken = idToken
	}

	return token, nil
}

// GetClaims verifies the ID token and extracts its claims
func (p *OpenIDProvider) GetClaims(ctx context.Context, token *Token) (Claims, error) {
	if token.IDToken == "" {
		return nil, errors.New("no id_token in token")
	}

	idToken, err := p.provider.Verifier(&oidc.Config{ClientID: p.config.ClientID}).Verify(ctx, token.IDToken)
	if err != nil {
		return nil, err
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}

	return claims, nil
}

// LogoutURL uses the advertised end_session_endpoint, if any
func (p *OpenIDProvider) LogoutURL(returnTo string) string {
	if p.endSession == "" {
		return ""
	}

	q := url.Values{}
	q.Set("client_id", p.config.ClientID)
	q.Set("post_logout_redirect_uri", returnTo)
	return p.endSession + "?" + q.Encode()
}
