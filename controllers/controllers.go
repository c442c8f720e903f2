package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/blogem/audit-trail/audit"
	"github.com/blogem/audit-trail/authenticator"
	"github.com/blogem/audit-trail/models"
	"github.com/blogem/audit-trail/services"
)

// Pinger reports database reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Controllers holds all controller instances
type Controllers struct {
	Auth         *AuthController
	Health       *HealthController
	Team         *TeamController
	WorkingHours *WorkingHoursController
}

// NewControllers creates and initializes all controller instances. Auth is
// nil when provider is nil.
func NewControllers(services *services.Services, provider authenticator.Provider, db Pinger, logger logrus.FieldLogger) *Controllers {
	ctrl := &Controllers{
		Health:       NewHealthController(db),
		Team:         NewTeamController(services, logger),
		WorkingHours: NewWorkingHoursController(services, logger),
	}
	if provider != nil {
		ctrl.Auth = NewAuthController(provider, logger)
	}
	return ctrl
}

// Register mounts the team and working hours routes on r
func (c *Controllers) Register(r chi.Router) {
	r.Route("/team", func(r chi.Router) {
		r.Get("/", c.Team.Index)
		r.Post("/", c.Team.Create)
		r.Get("/{id}", c.Team.Show)
		r.Post("/{id}", c.Team.Update)
		r.Post("/{id}/delete", c.Team.Delete)
		r.Post("/{id}/activate", c.Team.Activate)
		r.Post("/{id}/deactivate", c.Team.Deactivate)
		r.Get("/{id}/revisions", c.Team.Revisions)
		r.Get("/{id}/diff", c.Team.Diff)
	})

	r.Route("/hours", func(r chi.Router) {
		r.Get("/", c.WorkingHours.Index)
		r.Post("/", c.WorkingHours.Update)
		r.Get("/{day}/revisions", c.WorkingHours.Revisions)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeServiceError maps service and store errors onto status codes
func writeServiceError(w http.ResponseWriter, r *http.Request, logger logrus.FieldLogger, err error) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"errors": []string(verrs),
		})
	case errors.Is(err, audit.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidID), errors.Is(err, audit.ErrSameRevision):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

// parseID reads a positive integer path parameter
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}

// checkboxValue reads an HTML checkbox that may be paired with a hidden
// field; the last value wins.
func checkboxValue(r *http.Request, name string) (bool, bool) {
	values, ok := r.PostForm[name]
	if !ok || len(values) == 0 {
		return false, false
	}
	switch values[len(values)-1] {
	case "on", "true", "1":
		return true, true
	}
	return false, true
}
