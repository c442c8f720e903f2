package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/sirupsen/logrus"

	"github.com/blogem/audit-trail/authenticator"
	"github.com/blogem/audit-trail/middleware"
)

const sessionState = "state"

// AuthController drives the OpenID Connect login flow
type AuthController struct {
	provider authenticator.Provider
	logger   logrus.FieldLogger
}

// NewAuthController creates a new auth controller
func NewAuthController(provider authenticator.Provider, logger logrus.FieldLogger) *AuthController {
	return &AuthController{
		provider: provider,
		logger:   logger,
	}
}

// Login initiates the authentication process
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateRandomState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	if err := sess.Set(sessionState, state); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, ac.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the redirect back from the provider
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)

	storedState, _ := sess.Get(sessionState).(string)
	if storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("state") != storedState {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token, err := ac.provider.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		ac.logger.WithError(err).Warn("code exchange failed")
		http.Error(w, "Failed to exchange authorization code for a token", http.StatusUnauthorized)
		return
	}

	claims, err := ac.provider.GetClaims(r.Context(), token)
	if err != nil {
		ac.logger.WithError(err).Warn("id token verification failed")
		http.Error(w, "Failed to verify ID Token", http.StatusUnauthorized)
		return
	}

	userID := claims.Subject()
	if userID == "" {
		http.Error(w, "ID token has no subject", http.StatusUnauthorized)
		return
	}

	_ = sess.Set(middleware.SessionUserID, userID)
	_ = sess.Set(middleware.SessionUserNickname, claims.DisplayName())
	_ = sess.Delete(sessionState)

	ac.logger.WithField("user_id", userID).Info("user logged in")

	target := "/"
	if redirect, ok := sess.Get(middleware.SessionRedirect).(string); ok && redirect != "" {
		target = redirect
		_ = sess.Delete(middleware.SessionRedirect)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout clears the session and ends the provider session when supported
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	_ = sess.Delete(middleware.SessionUserID)
	_ = sess.Delete(middleware.SessionUserNickname)

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	target := "/"
	if logoutURL := ac.provider.LogoutURL(scheme + "://" + r.Host + "/"); logoutURL != "" {
		target = logoutURL
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
