package models

import (
	"strings"
	"time"

	"github.com/blogem/audit-trail/audit"
)

// TeamMemberSchema maps team members onto their head and revision tables
var TeamMemberSchema = audit.Schema{
	HeadTable:       "team_members",
	HeadColumns:     []string{"date_added"},
	RevisionTable:   "team_member_revisions",
	RevisionColumns: []string{"name", "slack_handle", "active"},
	Defaults:        audit.Values{"active": true},
}

// TeamMember is the head of a tracked team member. DateAdded never changes,
// everything else lives on the current revision.
type TeamMember struct {
	audit.Head
	DateAdded time.Time           `json:"date_added"`
	Current   *TeamMemberRevision `json:"current,omitempty"`
}

// TeamMemberRevision is one snapshot of a team member's mutable fields
type TeamMemberRevision struct {
	audit.Revision
	Name        string `json:"name"`
	SlackHandle string `json:"slack_handle"`
	Active      bool   `json:"active"`
}

// Name proxies to the current revision
func (m *TeamMember) Name() string {
	if m.Current == nil {
		return ""
	}
	return m.Current.Name
}

// IsDeleted proxies to the current revision
func (m *TeamMember) IsDeleted() bool {
	return m.Current != nil && m.Current.IsDeleted
}

// IsActive reports an active, non-deleted member
func (m *TeamMember) IsActive() bool {
	return m.Current != nil && m.Current.Active && !m.Current.IsDeleted
}

// HeadFields returns the immutable columns for the head table
func (m *TeamMember) HeadFields() audit.Values {
	return audit.Values{"date_added": m.DateAdded}
}

// Fields returns the tracked columns for the revision table
func (r *TeamMemberRevision) Fields() audit.Values {
	return audit.Values{
		"name":         r.Name,
		"slack_handle": r.SlackHandle,
		"active":       r.Active,
	}
}

// TeamMemberFromRecord builds a team member from a stored head
func TeamMemberFromRecord(rec audit.HeadRecord) TeamMember {
	member := TeamMember{
		Head:      rec.Head,
		DateAdded: rec.Fields.Time("date_added"),
	}
	if rec.Current != nil {
		rev := TeamMemberRevisionFromRecord(*rec.Current)
		member.Current = &rev
	}
	return member
}

// TeamMemberRevisionFromRecord builds a revision from a stored row
func TeamMemberRevisionFromRecord(rec audit.RevisionRecord) TeamMemberRevision {
	return TeamMemberRevision{
		Revision:    rec.Revision,
		Name:        rec.Fields.String("name"),
		SlackHandle: rec.Fields.String("slack_handle"),
		Active:      rec.Fields.Bool("active"),
	}
}

// TeamMemberForm represents form data for creating/updating team members
type TeamMemberForm struct {
	Name        string `json:"name"`
	SlackHandle string `json:"slack_handle"`
	Active      bool   `json:"active"`
}

// Validate validates the team member form data
func (f *TeamMemberForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Name) == "" {
		errors = append(errors, "Name is required")
	}

	if len(f.Name) > 100 {
		errors = append(errors, "Name must be less than 100 characters")
	}

	if len(f.SlackHandle) > 80 {
		errors = append(errors, "Slack handle must be less than 80 characters")
	}

	if f.SlackHandle != "" && !isValidSlackHandle(f.SlackHandle) {
		errors = append(errors, "Slack handle must start with @ and contain no spaces")
	}

	return errors
}

// isValidSlackHandle checks for a leading @ and no whitespace
func isValidSlackHandle(handle string) bool {
	if len(handle) < 2 || handle[0] != '@' {
		return false
	}
	return !strings.ContainsAny(handle, " \t\n")
}
