package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"
)

// Session keys written at login
const (
	SessionUserID       = "user_id"
	SessionUserNickname = "user_nickname"
	SessionRedirect     = "redirect_after_login"
)

// RequireAuth ensures the user is authenticated
// If not authenticated, redirects to /login and stores the intended destination
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionUser(r) == "" {
			// Store the intended destination for redirect after login
			session.GetSession(r).Set(SessionRedirect, r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionUser returns the user ID stored in the session, "" when anonymous.
// The session middleware must run first.
func SessionUser(r *http.Request) string {
	sess := session.GetSession(r)
	if sess == nil {
		return ""
	}
	userID, _ := sess.Get(SessionUserID).(string)
	return userID
}
