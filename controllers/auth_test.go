package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/audit-trail/authenticator"
	"github.com/blogem/audit-trail/middleware"
)

type fakeProvider struct {
	claims      authenticator.Claims
	exchangeErr error
}

func (p *fakeProvider) GetAuthURL(state string) string {
	return "https://idp.example.com/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) ExchangeCode(_ context.Context, code string) (*authenticator.Token, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return &authenticator.Token{AccessToken: "access-" + code, IDToken: "id-" + code}, nil
}

func (p *fakeProvider) GetClaims(_ context.Context, _ *authenticator.Token) (authenticator.Claims, error) {
	return p.claims, nil
}

func (p *fakeProvider) LogoutURL(returnTo string) string {
	return "https://idp.example.com/logout?returnTo=" + url.QueryEscape(returnTo)
}

func setupAuthServer(t *testing.T, provider authenticator.Provider) http.Handler {
	t.Helper()

	logger, _ := test.NewNullLogger()
	ac := NewAuthController(provider, logger)

	sessioner, err := session.Sessioner(session.Options{
		Provider:   "memory",
		CookieName: "audit_session",
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(sessioner)
	r.Get("/login", ac.Login)
	r.Get("/callback", ac.Callback)
	r.Get("/logout", ac.Logout)
	r.With(middleware.RequireAuth).Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(middleware.SessionUser(r)))
	})
	return r
}

type browser struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		b.cookies = cookies
	}
	return rec
}

func (b *browser) login() *httptest.ResponseRecorder {
	rec := b.get("/login")
	require.Equal(b.t, http.StatusTemporaryRedirect, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(b.t, err)
	state := location.Query().Get("state")
	require.NotEmpty(b.t, state)

	return b.get("/callback?code=abc&state=" + url.QueryEscape(state))
}

func TestAuthFlow(t *testing.T) {
	provider := &fakeProvider{claims: authenticator.Claims{"sub": "auth0|42", "nickname": "jd"}}
	b := &browser{t: t, h: setupAuthServer(t, provider)}

	// Protected page redirects and remembers the destination
	rec := b.get("/whoami")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = b.login()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/whoami", rec.Header().Get("Location"))

	rec = b.get("/whoami")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auth0|42", rec.Body.String())

	rec = b.get("/logout")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "https://idp.example.com/logout")

	rec = b.get("/whoami")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestAuthCallback_InvalidState(t *testing.T) {
	b := &browser{t: t, h: setupAuthServer(t, &fakeProvider{})}

	rec := b.get("/callback?code=abc&state=forged")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	b.get("/login")
	rec = b.get("/callback?code=abc&state=forged")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthCallback_ExchangeFails(t *testing.T) {
	b := &browser{t: t, h: setupAuthServer(t, &fakeProvider{exchangeErr: errors.New("denied")})}

	rec := b.login()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthCallback_NoSubject(t *testing.T) {
	b := &browser{t: t, h: setupAuthServer(t, &fakeProvider{claims: authenticator.Claims{"name": "x"}})}

	rec := b.login()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
