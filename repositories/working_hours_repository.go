package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/blogem/audit-trail/audit"
	"github.com/blogem/audit-trail/models"
)

// WorkingHoursRepository interface defines working hours database operations
type WorkingHoursRepository interface {
	EnsureDefaults(ctx context.Context) error
	GetAll(ctx context.Context) ([]models.WorkingHours, error)
	GetByDay(ctx context.Context, dayOfWeek int) (*models.WorkingHours, error)
	GetActiveDays(ctx context.Context) ([]models.WorkingHours, error)
	UpdateByDay(ctx context.Context, dayOfWeek int, startTime, endTime string, active bool) (*models.WorkingHours, error)
	History(ctx context.Context, dayOfWeek int) ([]models.WorkingHoursRevision, error)
	RevisionValues(ctx context.Context, revisionID int64) (audit.Values, error)
}

// workingHoursRepository implements WorkingHoursRepository interface
type workingHoursRepository struct {
	store *audit.Store
}

// NewWorkingHoursRepository creates a new working hours repository
func NewWorkingHoursRepository(store *audit.Store) WorkingHoursRepository {
	return &workingHoursRepository{store: store}
}

// EnsureDefaults creates a head for every day of the week that is missing one
func (r *workingHoursRepository) EnsureDefaults(ctx context.Context) error {
	existing, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	seen := make(map[int]bool, len(existing))
	for _, hours := range existing {
		seen[hours.DayOfWeek] = true
	}

	for day := 0; day < 7; day++ {
		if seen[day] {
			continue
		}

		def := models.DefaultWorkingHours(day)
		schema := models.WorkingHoursSchema
		schema.Defaults = def.Fields()

		head := &audit.Head{}
		if err := r.store.SaveHead(ctx, schema, head, audit.Values{"day_of_week": day}); err != nil {
			return fmt.Errorf("failed to seed working hours for day %d: %w", day, err)
		}
	}

	return nil
}

// GetAll retrieves all working hours configurations ordered by day
func (r *workingHoursRepository) GetAll(ctx context.Context) ([]models.WorkingHours, error) {
	records, err := r.store.ListHeads(ctx, models.WorkingHoursSchema, audit.ScopeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to query working hours: %w", err)
	}

	hours := make([]models.WorkingHours, 0, len(records))
	for _, rec := range records {
		hours = append(hours, models.WorkingHoursFromRecord(rec))
	}

	sort.Slice(hours, func(i, j int) bool {
		return hours[i].DayOfWeek < hours[j].DayOfWeek
	})
	return hours, nil
}

// GetByDay retrieves working hours for a specific day
func (r *workingHoursRepository) GetByDay(ctx context.Context, dayOfWeek int) (*models.WorkingHours, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].DayOfWeek == dayOfWeek {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("working hours for day %d not found: %w", dayOfWeek, audit.ErrNotFound)
}

// GetActiveDays retrieves only the days currently marked active
func (r *workingHoursRepository) GetActiveDays(ctx context.Context) ([]models.WorkingHours, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var active []models.WorkingHours
	for _, hours := range all {
		if hours.IsActive() {
			active = append(active, hours)
		}
	}
	return active, nil
}

// UpdateByDay records a new revision for the given day
func (r *workingHoursRepository) UpdateByDay(ctx context.Context, dayOfWeek int, startTime, endTime string, active bool) (*models.WorkingHours, error) {
	hours, err := r.GetByDay(ctx, dayOfWeek)
	if err != nil {
		return nil, err
	}

	rev := &models.WorkingHoursRevision{
		Revision:  audit.Revision{TrackedModelID: hours.ID},
		StartTime: startTime,
		EndTime:   endTime,
		Active:    active,
	}
	if err := r.store.SaveRevision(ctx, models.WorkingHoursSchema, &rev.Revision, rev.Fields()); err != nil {
		return nil, fmt.Errorf("failed to update working hours: %w", err)
	}

	hours.CurrentRevisionID = &rev.ID
	hours.Current = rev
	return hours, nil
}

// History returns every revision for a day, oldest first
func (r *workingHoursRepository) History(ctx context.Context, dayOfWeek int) ([]models.WorkingHoursRevision, error) {
	hours, err := r.GetByDay(ctx, dayOfWeek)
	if err != nil {
		return nil, err
	}

	records, err := r.store.Revisions(ctx, models.WorkingHoursSchema, hours.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get working hours history: %w", err)
	}

	revisions := make([]models.WorkingHoursRevision, 0, len(records))
	for _, rec := range records {
		revisions = append(revisions, models.WorkingHoursRevisionFromRecord(rec))
	}
	return revisions, nil
}

// RevisionValues returns every column of a revision row
func (r *workingHoursRepository) RevisionValues(ctx context.Context, revisionID int64) (audit.Values, error) {
	return r.store.Values(ctx, models.WorkingHoursSchema, revisionID)
}
