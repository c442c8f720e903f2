package audit

import (
	"fmt"
	"time"
)

// Head is the stable-identity record of a tracked model.
type Head struct {
	ID                int64     `json:"id"`
	CurrentRevisionID *int64    `json:"current_revision_id,omitempty"`
	CreatedBy         *string   `json:"created_by,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// SetCreatedBy implements Stamper
func (h *Head) SetCreatedBy(user *string) { h.CreatedBy = user }

// Revision is one append-only snapshot of a tracked model.
type Revision struct {
	ID             int64     `json:"id"`
	TrackedModelID int64     `json:"tracked_model_id"`
	CreatedBy      *string   `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	IsDeleted      bool      `json:"is_deleted"`
}

// SetCreatedBy implements Stamper
func (r *Revision) SetCreatedBy(user *string) { r.CreatedBy = user }

// RevisionRecord is a revision together with its tracked column values.
type RevisionRecord struct {
	Revision
	Fields Values `json:"fields"`
}

// HeadRecord is a head joined with its current revision, if any.
type HeadRecord struct {
	Head
	Fields  Values          `json:"fields"`
	Current *RevisionRecord `json:"current,omitempty"`
}

// IsDeleted reports the deletion flag of the current revision.
func (h *HeadRecord) IsDeleted() bool {
	return h.Current != nil && h.Current.IsDeleted
}

// Schema describes the two tables of one tracked model.
//
// HeadColumns and RevisionColumns list the domain columns only; the
// bookkeeping columns (id, current_revision_id, tracked_model_id, created_by,
// created_at, is_deleted) are managed by the Store.
type Schema struct {
	HeadTable       string
	HeadColumns     []string
	RevisionTable   string
	RevisionColumns []string

	// Defaults seeds the first revision created for a new head.
	Defaults Values
}

// Validate checks that the schema names both tables.
func (s Schema) Validate() error {
	if s.HeadTable == "" {
		return fmt.Errorf("schema: head table is required")
	}
	if s.RevisionTable == "" {
		return fmt.Errorf("schema: revision table is required (head %s)", s.HeadTable)
	}
	return nil
}
