package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/blogem/audit-trail/models"
	"github.com/blogem/audit-trail/services"
)

// WorkingHoursController handles working hours configuration requests
type WorkingHoursController struct {
	services *services.Services
	logger   logrus.FieldLogger
}

// NewWorkingHoursController creates a new working hours controller
func NewWorkingHoursController(services *services.Services, logger logrus.FieldLogger) *WorkingHoursController {
	return &WorkingHoursController{
		services: services,
		logger:   logger,
	}
}

// dayView adds the readable day name to a day's working hours
type dayView struct {
	models.WorkingHours
	DayName string `json:"day_name"`
}

func newDayView(hours models.WorkingHours) dayView {
	return dayView{WorkingHours: hours, DayName: hours.GetDayName()}
}

// Index handles GET /hours
func (c *WorkingHoursController) Index(w http.ResponseWriter, r *http.Request) {
	workingHours, err := c.services.WorkingHours.GetAllWorkingHours(r.Context())
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	days := make([]dayView, 0, len(workingHours))
	for _, hours := range workingHours {
		days = append(days, newDayView(hours))
	}

	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

// Update handles POST /hours for a single day
func (c *WorkingHoursController) Update(w http.ResponseWriter, r *http.Request) {
	form, err := decodeHoursForm(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	hours, err := c.services.WorkingHours.UpdateWorkingHours(r.Context(), form)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newDayView(*hours))
}

// Revisions handles GET /hours/{day}/revisions
func (c *WorkingHoursController) Revisions(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid day")
		return
	}

	revisions, err := c.services.WorkingHours.GetHistory(r.Context(), day)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"day_of_week": day,
		"day_name":    models.DayNames[day],
		"revisions":   revisions,
	})
}

func decodeHoursForm(r *http.Request) (*models.WorkingHoursForm, error) {
	form := &models.WorkingHoursForm{}
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(form); err != nil {
			return nil, err
		}
		return form, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	day, err := strconv.Atoi(r.PostForm.Get("day_of_week"))
	if err != nil {
		return nil, err
	}
	form.DayOfWeek = day
	form.StartTime = r.PostForm.Get("start_time")
	form.EndTime = r.PostForm.Get("end_time")
	form.Active, _ = checkboxValue(r, "active")
	return form, nil
}
