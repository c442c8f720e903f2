package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blogem/audit-trail/audit"
	"github.com/blogem/audit-trail/models"
)

// TeamRepository interface defines team member database operations
type TeamRepository interface {
	List(ctx context.Context, scope audit.Scope) ([]models.TeamMember, error)
	GetByID(ctx context.Context, id int64) (*models.TeamMember, error)
	GetActiveMembers(ctx context.Context) ([]models.TeamMember, error)
	Create(ctx context.Context, member *models.TeamMember, rev models.TeamMemberRevision) error
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, scope audit.Scope) (int, error)
	History(ctx context.Context, id int64) ([]models.TeamMemberRevision, error)
	GetRevision(ctx context.Context, revisionID int64) (*models.TeamMemberRevision, error)
	RevisionValues(ctx context.Context, revisionID int64) (audit.Values, error)
}

// teamRepository implements TeamRepository on top of the revision store
type teamRepository struct {
	store *audit.Store
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(store *audit.Store) TeamRepository {
	return &teamRepository{store: store}
}

// List retrieves team members in the given scope, ordered by name
func (r *teamRepository) List(ctx context.Context, scope audit.Scope) ([]models.TeamMember, error) {
	records, err := r.store.ListHeads(ctx, models.TeamMemberSchema, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}

	members := make([]models.TeamMember, 0, len(records))
	for _, rec := range records {
		members = append(members, models.TeamMemberFromRecord(rec))
	}

	sort.SliceStable(members, func(i, j int) bool {
		return strings.ToLower(members[i].Name()) < strings.ToLower(members[j].Name())
	})
	return members, nil
}

// GetByID retrieves a team member by ID, deleted ones included
func (r *teamRepository) GetByID(ctx context.Context, id int64) (*models.TeamMember, error) {
	rec, err := r.store.LoadHead(ctx, models.TeamMemberSchema, id)
	if errors.Is(err, audit.ErrNotFound) {
		return nil, fmt.Errorf("team member with ID %d not found: %w", id, audit.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	member := models.TeamMemberFromRecord(*rec)
	return &member, nil
}

// GetActiveMembers retrieves published members flagged active, oldest first
func (r *teamRepository) GetActiveMembers(ctx context.Context) ([]models.TeamMember, error) {
	published, err := r.List(ctx, audit.ScopePublished)
	if err != nil {
		return nil, fmt.Errorf("failed to query active team members: %w", err)
	}

	var members []models.TeamMember
	for _, member := range published {
		if member.IsActive() {
			members = append(members, member)
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].DateAdded.Before(members[j].DateAdded)
	})
	return members, nil
}

// Create stores a new head and rev as its first revision
func (r *teamRepository) Create(ctx context.Context, member *models.TeamMember, rev models.TeamMemberRevision) error {
	if member.DateAdded.IsZero() {
		member.DateAdded = time.Now()
	}

	schema := models.TeamMemberSchema
	schema.Defaults = rev.Fields()

	if err := r.store.SaveHead(ctx, schema, &member.Head, member.HeadFields()); err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}

	current, err := r.store.LoadRevision(ctx, schema, *member.CurrentRevisionID)
	if err != nil {
		return fmt.Errorf("failed to load first revision: %w", err)
	}

	created := models.TeamMemberRevisionFromRecord(*current)
	member.Current = &created
	return nil
}

// Update saves member.Current as a new revision
func (r *teamRepository) Update(ctx context.Context, member *models.TeamMember) error {
	if member.Current == nil {
		return fmt.Errorf("team member %d has no revision to save", member.ID)
	}

	rev := member.Current
	rev.TrackedModelID = member.ID

	err := r.store.SaveRevision(ctx, models.TeamMemberSchema, &rev.Revision, rev.Fields())
	if errors.Is(err, audit.ErrNotFound) {
		return fmt.Errorf("team member with ID %d not found: %w", member.ID, audit.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}

	member.CurrentRevisionID = &rev.ID
	return nil
}

// Delete soft-deletes a team member by flagging a new revision
func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.DeleteHead(ctx, models.TeamMemberSchema, id)
	if errors.Is(err, audit.ErrNotFound) {
		return fmt.Errorf("team member with ID %d not found: %w", id, audit.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	return nil
}

// Count returns the number of team members in scope
func (r *teamRepository) Count(ctx context.Context, scope audit.Scope) (int, error) {
	count, err := r.store.Count(ctx, models.TeamMemberSchema, scope)
	if err != nil {
		return 0, fmt.Errorf("failed to count team members: %w", err)
	}
	return count, nil
}

// History returns every revision of a team member, oldest first
func (r *teamRepository) History(ctx context.Context, id int64) ([]models.TeamMemberRevision, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	records, err := r.store.Revisions(ctx, models.TeamMemberSchema, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get team member history: %w", err)
	}

	revisions := make([]models.TeamMemberRevision, 0, len(records))
	for _, rec := range records {
		revisions = append(revisions, models.TeamMemberRevisionFromRecord(rec))
	}
	return revisions, nil
}

// GetRevision retrieves one revision by its own ID
func (r *teamRepository) GetRevision(ctx context.Context, revisionID int64) (*models.TeamMemberRevision, error) {
	rec, err := r.store.LoadRevision(ctx, models.TeamMemberSchema, revisionID)
	if err != nil {
		return nil, err
	}

	rev := models.TeamMemberRevisionFromRecord(*rec)
	return &rev, nil
}

// RevisionValues returns every column of a revision row
func (r *teamRepository) RevisionValues(ctx context.Context, revisionID int64) (audit.Values, error) {
	return r.store.Values(ctx, models.TeamMemberSchema, revisionID)
}
