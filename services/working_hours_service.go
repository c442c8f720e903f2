package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogem/audit-trail/audit"
	"github.com/blogem/audit-trail/models"
	"github.com/blogem/audit-trail/repositories"
)

// WorkingHoursService interface defines working hours business logic
type WorkingHoursService interface {
	GetAllWorkingHours(ctx context.Context) ([]models.WorkingHours, error)
	GetWorkingHoursByDay(ctx context.Context, dayOfWeek int) (*models.WorkingHours, error)
	GetActiveDays(ctx context.Context) ([]models.WorkingHours, error)
	UpdateWorkingHours(ctx context.Context, form *models.WorkingHoursForm) (*models.WorkingHours, error)
	IsWorkingDay(ctx context.Context, dayOfWeek int) (bool, error)
	GetHistory(ctx context.Context, dayOfWeek int) ([]models.WorkingHoursRevision, error)
	GetDayNames() map[int]string
}

// workingHoursService implements WorkingHoursService interface
type workingHoursService struct {
	workingHoursRepo repositories.WorkingHoursRepository
}

// NewWorkingHoursService creates a new working hours service
func NewWorkingHoursService(workingHoursRepo repositories.WorkingHoursRepository) WorkingHoursService {
	return &workingHoursService{
		workingHoursRepo: workingHoursRepo,
	}
}

// GetAllWorkingHours retrieves all working hours configurations
func (s *workingHoursService) GetAllWorkingHours(ctx context.Context) ([]models.WorkingHours, error) {
	return s.workingHoursRepo.GetAll(ctx)
}

// GetWorkingHoursByDay retrieves working hours for a specific day
func (s *workingHoursService) GetWorkingHoursByDay(ctx context.Context, dayOfWeek int) (*models.WorkingHours, error) {
	if err := checkDay(dayOfWeek); err != nil {
		return nil, err
	}
	return s.workingHoursRepo.GetByDay(ctx, dayOfWeek)
}

// GetActiveDays retrieves only active working days
func (s *workingHoursService) GetActiveDays(ctx context.Context) ([]models.WorkingHours, error) {
	return s.workingHoursRepo.GetActiveDays(ctx)
}

// UpdateWorkingHours records a new revision for the form's day
func (s *workingHoursService) UpdateWorkingHours(ctx context.Context, form *models.WorkingHoursForm) (*models.WorkingHours, error) {
	form.StartTime = strings.TrimSpace(form.StartTime)
	form.EndTime = strings.TrimSpace(form.EndTime)
	if errs := form.Validate(); len(errs) > 0 {
		return nil, models.ValidationErrors(errs)
	}

	startTime, endTime := form.StartTime, form.EndTime

	// Inactive days carry no hours
	if !form.Active {
		startTime = "00:00"
		endTime = "00:00"

		active, err := s.GetActiveDays(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to check active days: %w", err)
		}
		if len(active) == 1 && active[0].DayOfWeek == form.DayOfWeek {
			return nil, fmt.Errorf("at least one working day must be active: %w", ErrConflict)
		}
	}

	hours, err := s.workingHoursRepo.UpdateByDay(ctx, form.DayOfWeek, startTime, endTime, form.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to update working hours: %w", err)
	}

	return hours, nil
}

// IsWorkingDay checks if a specific day is a working day
func (s *workingHoursService) IsWorkingDay(ctx context.Context, dayOfWeek int) (bool, error) {
	workingHours, err := s.GetWorkingHoursByDay(ctx, dayOfWeek)
	if err != nil {
		return false, fmt.Errorf("failed to get working hours: %w", err)
	}

	return workingHours.IsActive(), nil
}

// GetHistory returns every revision recorded for a day
func (s *workingHoursService) GetHistory(ctx context.Context, dayOfWeek int) ([]models.WorkingHoursRevision, error) {
	if err := checkDay(dayOfWeek); err != nil {
		return nil, err
	}
	return s.workingHoursRepo.History(ctx, dayOfWeek)
}

// GetDayNames returns the mapping of day numbers to names
func (s *workingHoursService) GetDayNames() map[int]string {
	return models.DayNames
}

func checkDay(dayOfWeek int) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("day of week %d (must be 0-6): %w", dayOfWeek, audit.ErrNotFound)
	}
	return nil
}
