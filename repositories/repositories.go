package repositories

import (
	"database/sql"

	"github.com/blogem/audit-trail/audit"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Team         TeamRepository
	WorkingHours WorkingHoursRepository
	Audit        AuditRepository
}

// NewRepositories creates and initializes all repositories. The tracked
// repositories share one revision store configured with opts.
func NewRepositories(db *sql.DB, opts ...audit.Option) *Repositories {
	store := audit.NewStore(db, opts...)
	return &Repositories{
		Team:         NewTeamRepository(store),
		WorkingHours: NewWorkingHoursRepository(store),
		Audit:        NewAuditRepository(db),
	}
}
