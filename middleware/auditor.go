package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/blogem/audit-trail/audit"
	"github.com/blogem/audit-trail/userctx"
)

// RequestIDHeader carries the request ID back to the client
const RequestIDHeader = "X-Request-ID"

// UserResolver extracts the acting user ID from a request, "" for anonymous
type UserResolver func(r *http.Request) string

// Auditor binds the acting user to every record saved while serving the
// request. Each request gets a fresh ID; records created by anonymous
// requests get a NULL creator.
func Auditor(logger logrus.FieldLogger, resolve UserResolver) func(http.Handler) http.Handler {
	if resolve == nil {
		resolve = SessionUser
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			userID := resolve(r)

			ctx := userctx.SetRequestID(r.Context(), requestID)
			if userID != "" {
				ctx = userctx.SetUserID(ctx, userID)
			}
			ctx = audit.WithPreSave(ctx, audit.StampCreatedBy(userctx.GetUser(ctx)))

			w.Header().Set(RequestIDHeader, requestID)

			logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    userID,
				"method":     r.Method,
				"path":       r.URL.Path,
			}).Debug("request bound to acting user")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
