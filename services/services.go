package services

import (
	"errors"

	"github.com/blogem/audit-trail/repositories"
)

var (
	// ErrInvalidID is returned for non-positive identifiers
	ErrInvalidID = errors.New("invalid id")

	// ErrConflict is returned when a change clashes with existing state
	ErrConflict = errors.New("conflict")
)

// Services holds all service instances
type Services struct {
	Team         TeamService
	WorkingHours WorkingHoursService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Team:         NewTeamService(repos.Team),
		WorkingHours: NewWorkingHoursService(repos.WorkingHours),
	}
}
