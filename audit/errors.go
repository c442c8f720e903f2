package audit

import "errors"

var (
	// ErrNotFound is returned when a head or revision row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoTrackedModel is returned when saving a revision that is not attached to a head.
	ErrNoTrackedModel = errors.New("revision has no tracked model")

	// ErrSameRevision is returned by Diff when both snapshots are the same revision.
	ErrSameRevision = errors.New("cannot diff a revision against itself")
)
