package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogem/audit-trail/audit"
	"github.com/blogem/audit-trail/models"
	"github.com/blogem/audit-trail/repositories"
)

// TeamService interface defines team management business logic
type TeamService interface {
	ListMembers(ctx context.Context, scope audit.Scope) ([]models.TeamMember, error)
	GetMemberByID(ctx context.Context, id int64) (*models.TeamMember, error)
	GetActiveMembers(ctx context.Context) ([]models.TeamMember, error)
	CreateMember(ctx context.Context, form *models.TeamMemberForm) (*models.TeamMember, error)
	UpdateMember(ctx context.Context, id int64, form *models.TeamMemberForm) (*models.TeamMember, error)
	DeleteMember(ctx context.Context, id int64) error
	DeactivateMember(ctx context.Context, id int64) error
	ActivateMember(ctx context.Context, id int64) error
	GetMemberCount(ctx context.Context, scope audit.Scope) (int, error)
	GetHistory(ctx context.Context, id int64) ([]models.TeamMemberRevision, error)
	DiffRevisions(ctx context.Context, id, a, b int64) (*audit.RevisionDiff, error)
}

// teamService implements TeamService interface
type teamService struct {
	teamRepo repositories.TeamRepository
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

// ListMembers retrieves team members in scope
func (s *teamService) ListMembers(ctx context.Context, scope audit.Scope) ([]models.TeamMember, error) {
	return s.teamRepo.List(ctx, scope)
}

// GetMemberByID retrieves a team member by ID
func (s *teamService) GetMemberByID(ctx context.Context, id int64) (*models.TeamMember, error) {
	if id <= 0 {
		return nil, fmt.Errorf("team member %d: %w", id, ErrInvalidID)
	}
	return s.teamRepo.GetByID(ctx, id)
}

// GetActiveMembers retrieves only active team members
func (s *teamService) GetActiveMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.teamRepo.GetActiveMembers(ctx)
}

// CreateMember creates a new team member with validation
func (s *teamService) CreateMember(ctx context.Context, form *models.TeamMemberForm) (*models.TeamMember, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, models.ValidationErrors(errs)
	}

	if err := s.checkSlackHandle(ctx, form.SlackHandle, 0); err != nil {
		return nil, err
	}

	member := &models.TeamMember{}
	rev := models.TeamMemberRevision{
		Name:        strings.TrimSpace(form.Name),
		SlackHandle: strings.TrimSpace(form.SlackHandle),
		Active:      form.Active,
	}

	if err := s.teamRepo.Create(ctx, member, rev); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}

	return member, nil
}

// UpdateMember records a new revision with the form's values
func (s *teamService) UpdateMember(ctx context.Context, id int64, form *models.TeamMemberForm) (*models.TeamMember, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, models.ValidationErrors(errs)
	}

	member, err := s.editableMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(form.SlackHandle, member.Current.SlackHandle) {
		if err := s.checkSlackHandle(ctx, form.SlackHandle, id); err != nil {
			return nil, err
		}
	}

	member.Current.Name = strings.TrimSpace(form.Name)
	member.Current.SlackHandle = strings.TrimSpace(form.SlackHandle)
	member.Current.Active = form.Active

	if err := s.teamRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}

	return member, nil
}

// DeleteMember soft-deletes a team member. Its history stays readable.
func (s *teamService) DeleteMember(ctx context.Context, id int64) error {
	member, err := s.GetMemberByID(ctx, id)
	if err != nil {
		return err
	}

	if member.IsDeleted() {
		return nil
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	return nil
}

// DeactivateMember marks a team member inactive
func (s *teamService) DeactivateMember(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, false)
}

// ActivateMember marks a team member active
func (s *teamService) ActivateMember(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, true)
}

func (s *teamService) setActive(ctx context.Context, id int64, active bool) error {
	member, err := s.editableMember(ctx, id)
	if err != nil {
		return err
	}

	if member.Current.Active == active {
		state := "inactive"
		if active {
			state = "active"
		}
		return fmt.Errorf("team member is already %s: %w", state, ErrConflict)
	}

	member.Current.Active = active
	if err := s.teamRepo.Update(ctx, member); err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}

	return nil
}

// GetMemberCount returns the number of team members in scope
func (s *teamService) GetMemberCount(ctx context.Context, scope audit.Scope) (int, error) {
	return s.teamRepo.Count(ctx, scope)
}

// GetHistory returns every revision of a member, oldest first
func (s *teamService) GetHistory(ctx context.Context, id int64) ([]models.TeamMemberRevision, error) {
	if id <= 0 {
		return nil, fmt.Errorf("team member %d: %w", id, ErrInvalidID)
	}
	return s.teamRepo.History(ctx, id)
}

// DiffRevisions compares revision a against revision b of the same member.
// Both revisions must belong to member id.
func (s *teamService) DiffRevisions(ctx context.Context, id, a, b int64) (*audit.RevisionDiff, error) {
	if id <= 0 {
		return nil, fmt.Errorf("team member %d: %w", id, ErrInvalidID)
	}

	snapshots := make([]audit.Values, 0, 2)
	for _, revID := range []int64{a, b} {
		rev, err := s.teamRepo.GetRevision(ctx, revID)
		if err != nil {
			return nil, fmt.Errorf("revision %d: %w", revID, err)
		}
		if rev.TrackedModelID != id {
			return nil, fmt.Errorf("revision %d of team member %d: %w", revID, id, audit.ErrNotFound)
		}

		values, err := s.teamRepo.RevisionValues(ctx, revID)
		if err != nil {
			return nil, fmt.Errorf("revision %d: %w", revID, err)
		}
		snapshots = append(snapshots, values)
	}

	return audit.Diff(snapshots[0], snapshots[1])
}

// editableMember loads a member that may receive new revisions
func (s *teamService) editableMember(ctx context.Context, id int64) (*models.TeamMember, error) {
	member, err := s.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if member.Current == nil {
		return nil, fmt.Errorf("team member %d has no revision", id)
	}
	if member.IsDeleted() {
		return nil, fmt.Errorf("team member %d is deleted: %w", id, ErrConflict)
	}

	return member, nil
}

// checkSlackHandle rejects a handle already used by another published member
func (s *teamService) checkSlackHandle(ctx context.Context, handle string, exceptID int64) error {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil
	}

	members, err := s.teamRepo.List(ctx, audit.ScopePublished)
	if err != nil {
		return fmt.Errorf("failed to check slack handle: %w", err)
	}

	for _, member := range members {
		if member.ID == exceptID || member.Current == nil {
			continue
		}
		if strings.EqualFold(member.Current.SlackHandle, handle) {
			return fmt.Errorf("team member with slack handle %s already exists: %w", handle, ErrConflict)
		}
	}

	return nil
}
