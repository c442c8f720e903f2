package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/blogem/audit-trail/audit"
	"github.com/blogem/audit-trail/models"
	"github.com/blogem/audit-trail/services"
)

// TeamController handles team management requests
type TeamController struct {
	services *services.Services
	logger   logrus.FieldLogger
}

// NewTeamController creates a new team controller
func NewTeamController(services *services.Services, logger logrus.FieldLogger) *TeamController {
	return &TeamController{
		services: services,
		logger:   logger,
	}
}

// Index handles GET /team?scope=all|published|deleted
func (c *TeamController) Index(w http.ResponseWriter, r *http.Request) {
	scope, err := audit.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := c.services.Team.ListMembers(r.Context(), scope)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"scope":   scope.String(),
		"count":   len(members),
		"members": members,
	})
}

// Show handles GET /team/{id}
func (c *TeamController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := c.services.Team.GetMemberByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// Create handles POST /team
func (c *TeamController) Create(w http.ResponseWriter, r *http.Request) {
	// New members default to active
	form := &models.TeamMemberForm{Active: true}
	if err := decodeTeamForm(r, form); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := c.services.Team.CreateMember(r.Context(), form)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// Update handles POST /team/{id}. Fields missing from the request keep
// their current values.
func (c *TeamController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := c.services.Team.GetMemberByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	form := &models.TeamMemberForm{}
	if member.Current != nil {
		form.Name = member.Current.Name
		form.SlackHandle = member.Current.SlackHandle
		form.Active = member.Current.Active
	}
	if err := decodeTeamForm(r, form); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err = c.services.Team.UpdateMember(r.Context(), id, form)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// Delete handles POST /team/{id}/delete
func (c *TeamController) Delete(w http.ResponseWriter, r *http.Request) {
	c.apply(w, r, c.services.Team.DeleteMember)
}

// Activate handles POST /team/{id}/activate
func (c *TeamController) Activate(w http.ResponseWriter, r *http.Request) {
	c.apply(w, r, c.services.Team.ActivateMember)
}

// Deactivate handles POST /team/{id}/deactivate
func (c *TeamController) Deactivate(w http.ResponseWriter, r *http.Request) {
	c.apply(w, r, c.services.Team.DeactivateMember)
}

// apply runs a state change and answers with the resulting member
func (c *TeamController) apply(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, id int64) error) {
	id, err := parseID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := change(r.Context(), id); err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	member, err := c.services.Team.GetMemberByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// Revisions handles GET /team/{id}/revisions
func (c *TeamController) Revisions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	revisions, err := c.services.Team.GetHistory(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"team_member_id": id,
		"revisions":      revisions,
	})
}

// Diff handles GET /team/{id}/diff?a=&b=
func (c *TeamController) Diff(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	a, errA := strconv.ParseInt(r.URL.Query().Get("a"), 10, 64)
	b, errB := strconv.ParseInt(r.URL.Query().Get("b"), 10, 64)
	if errA != nil || errB != nil {
		writeErr(w, http.StatusBadRequest, "query parameters a and b must be revision ids")
		return
	}

	diff, err := c.services.Team.DiffRevisions(r.Context(), id, a, b)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, diff)
}

// decodeTeamForm fills form from a JSON body or a urlencoded form
func decodeTeamForm(r *http.Request, form *models.TeamMemberForm) error {
	if isJSON(r) {
		return json.NewDecoder(r.Body).Decode(form)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	if _, ok := r.PostForm["name"]; ok {
		form.Name = r.PostForm.Get("name")
	}
	if _, ok := r.PostForm["slack_handle"]; ok {
		form.SlackHandle = r.PostForm.Get("slack_handle")
	}
	if active, ok := checkboxValue(r, "active"); ok {
		form.Active = active
	}
	return nil
}
