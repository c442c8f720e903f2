package audit

import (
	"fmt"
	"strings"
)

// Scope filters heads by the deletion flag of their current revision.
type Scope int

const (
	// ScopeAll returns every head.
	ScopeAll Scope = iota
	// ScopePublished returns heads whose current revision is not deleted.
	ScopePublished
	// ScopeDeleted returns heads whose current revision is deleted.
	ScopeDeleted
)

func (s Scope) String() string {
	switch s {
	case ScopePublished:
		return "published"
	case ScopeDeleted:
		return "deleted"
	default:
		return "all"
	}
}

// ParseScope parses "all", "published" or "deleted". Empty means all.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "published":
		return ScopePublished, nil
	case "deleted":
		return ScopeDeleted, nil
	}
	return ScopeAll, fmt.Errorf("unknown scope %q", s)
}

// Where returns the SQL condition for the scope against the revision table
// aliased as alias, or "" when the scope does not filter.
func (s Scope) Where(alias string) string {
	switch s {
	case ScopePublished:
		return alias + ".is_deleted = 0"
	case ScopeDeleted:
		return alias + ".is_deleted = 1"
	}
	return ""
}
