package authenticator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(domain string) Config {
	return Config{
		Domain:       domain,
		ClientID:     "client-123",
		ClientSecret: "secret",
		CallbackURL:  "http://localhost:8080/callback",
	}
}

// fakeIssuer serves discovery metadata and a token endpoint
func fakeIssuer(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/authorize",
			"token_endpoint":         srv.URL + "/token",
			"jwks_uri":               srv.URL + "/jwks",
			"end_session_endpoint":   srv.URL + "/logout",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access",
			"refresh_token": "refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"id_token":      "raw-id-token",
		})
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, testConfig("example.com").Validate())

	missing := testConfig("example.com")
	missing.ClientSecret = ""
	assert.EqualError(t, missing.Validate(), "client secret is required")

	assert.EqualError(t, Config{}.Validate(), "domain is required")
}

func TestClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   string
	}{
		{"nickname first", Claims{"sub": "auth0|1", "nickname": "jd", "name": "John Doe"}, "jd"},
		{"then name", Claims{"sub": "auth0|1", "name": "John Doe", "email": "j@d.io"}, "John Doe"},
		{"then email", Claims{"sub": "auth0|1", "nickname": "", "email": "j@d.io"}, "j@d.io"},
		{"subject fallback", Claims{"sub": "auth0|1"}, "auth0|1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.DisplayName())
			assert.Equal(t, "auth0|1", tt.claims.Subject())
		})
	}
}

func TestOpenIDProvider(t *testing.T) {
	srv := fakeIssuer(t)
	ctx := context.Background()

	p, err := NewOpenIDProvider(ctx, testConfig(srv.URL))
	require.NoError(t, err)

	authURL, err := url.Parse(p.GetAuthURL("state-xyz"))
	require.NoError(t, err)
	assert.Equal(t, "/authorize", authURL.Path)
	assert.Equal(t, "state-xyz", authURL.Query().Get("state"))
	assert.Equal(t, "client-123", authURL.Query().Get("client_id"))
	assert.Contains(t, authURL.Query().Get("scope"), "openid")

	token, err := p.ExchangeCode(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "raw-id-token", token.IDToken)

	_, err = p.GetClaims(ctx, &Token{})
	assert.EqualError(t, err, "no id_token in token")

	// not a JWT
	_, err = p.GetClaims(ctx, token)
	assert.Error(t, err)

	logout, err := url.Parse(p.LogoutURL("http://localhost:8080/"))
	require.NoError(t, err)
	assert.Equal(t, "/logout", logout.Path)
	assert.Equal(t, "http://localhost:8080/", logout.Query().Get("post_logout_redirect_uri"))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), "saml", testConfig("example.com"))
	assert.EqualError(t, err, "unknown auth provider: saml")
}

func TestAuth0Provider_LogoutURL(t *testing.T) {
	p := &Auth0Provider{
		OpenIDProvider: &OpenIDProvider{},
		domain:         "tenant.eu.auth0.com",
	}
	p.config.ClientID = "client-123"

	logout, err := url.Parse(p.LogoutURL("http://localhost:8080/"))
	require.NoError(t, err)
	assert.Equal(t, "tenant.eu.auth0.com", logout.Host)
	assert.Equal(t, "/v2/logout", logout.Path)
	assert.Equal(t, "client-123", logout.Query().Get("client_id"))
}
