// Package audit keeps an append-only history for database rows.
//
// A tracked model is split in two tables. The head table holds the stable
// identity and the columns that never change, plus a nullable
// current_revision_id. The revision table holds the mutable columns; every
// save inserts a new row and repoints the head at it, and deleting only flips
// is_deleted on a fresh revision. Nothing in a revision table is ever updated
// or removed.
//
// Typical use from a repository:
//
//	head := &audit.Head{}
//	if err := store.SaveHead(ctx, schema, head, audit.Values{"date_added": now}); err != nil {
//		return err
//	}
//	current, err := store.CurrentRevision(ctx, schema, head.ID)
//	if err != nil {
//		return err
//	}
//	current.Fields["name"] = "Jane"
//	err = store.SaveRevision(ctx, schema, &current.Revision, current.Fields)
//
// The acting user is stamped through pre-save hooks bound to the context, see
// WithPreSave.
package audit
