package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Observer is notified after revisions are committed.
type Observer interface {
	RevisionSaved(table string)
	RevisionDeleted(table string)
}

type nopObserver struct{}

func (nopObserver) RevisionSaved(string)   {}
func (nopObserver) RevisionDeleted(string) {}

// Option configures a Store.
type Option func(*Store)

// WithObserver reports committed revisions to o.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock overrides the clock used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store maintains head and revision rows for any Schema.
type Store struct {
	db       *sql.DB
	now      func() time.Time
	observer Observer
}

// NewStore creates a store over db.
func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:       db,
		now:      time.Now,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveHead inserts head when it has no ID yet, otherwise updates its columns.
// A head left without a current revision gets a first revision built from
// schema.Defaults.
func (s *Store) SaveHead(ctx context.Context, schema Schema, head *Head, fields Values) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	prev := *head
	var created bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if head.ID == 0 {
			if err := s.insertHead(ctx, tx, schema, head, fields); err != nil {
				return err
			}
		} else if err := s.updateHead(ctx, tx, schema, head, fields); err != nil {
			return err
		}

		if head.CurrentRevisionID != nil {
			return nil
		}

		rev := &Revision{TrackedModelID: head.ID}
		if err := s.insertRevision(ctx, tx, schema, rev, schema.Defaults); err != nil {
			return fmt.Errorf("failed to create first revision: %w", err)
		}
		head.CurrentRevisionID = &rev.ID
		created = true
		return nil
	})
	if err != nil {
		*head = prev
		return err
	}

	if created {
		s.observer.RevisionSaved(schema.RevisionTable)
	}
	return nil
}

// SaveRevision stores rev as a brand new row, whatever its current ID, and
// points the tracked head at it. On success rev carries the new ID.
func (s *Store) SaveRevision(ctx context.Context, schema Schema, rev *Revision, fields Values) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if rev.TrackedModelID == 0 {
		return ErrNoTrackedModel
	}

	prev := *rev
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return s.insertRevision(ctx, tx, schema, rev, fields)
	})
	if err != nil {
		*rev = prev
		return err
	}

	s.observer.RevisionSaved(schema.RevisionTable)
	return nil
}

// DeleteRevision flags rev as deleted by saving a new revision with
// is_deleted set. Already deleted revisions are left alone.
func (s *Store) DeleteRevision(ctx context.Context, schema Schema, rev *Revision, fields Values) error {
	if rev.IsDeleted {
		return nil
	}

	rev.IsDeleted = true
	if err := s.SaveRevision(ctx, schema, rev, fields); err != nil {
		rev.IsDeleted = false
		return err
	}

	s.observer.RevisionDeleted(schema.RevisionTable)
	return nil
}

// DeleteHead soft-deletes the head's current revision. The head row stays.
func (s *Store) DeleteHead(ctx context.Context, schema Schema, headID int64) error {
	current, err := s.CurrentRevision(ctx, schema, headID)
	if err != nil {
		return err
	}
	return s.DeleteRevision(ctx, schema, &current.Revision, current.Fields)
}

// LoadRevision reads one revision by ID.
func (s *Store) LoadRevision(ctx context.Context, schema Schema, id int64) (*RevisionRecord, error) {
	query := revisionSelect(schema) + " WHERE id = ?"

	rec, err := scanRevision(s.db.QueryRowContext(ctx, query, id), schema)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("revision %d in %s: %w", id, schema.RevisionTable, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load revision: %w", err)
	}
	return rec, nil
}

// CurrentRevision reads the revision the head currently points at.
func (s *Store) CurrentRevision(ctx context.Context, schema Schema, headID int64) (*RevisionRecord, error) {
	query := fmt.Sprintf("SELECT current_revision_id FROM %s WHERE id = ?", schema.HeadTable)

	var current sql.NullInt64
	err := s.db.QueryRowContext(ctx, query, headID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %d: %w", schema.HeadTable, headID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current revision: %w", err)
	}
	if !current.Valid {
		return nil, fmt.Errorf("%s %d has no current revision: %w", schema.HeadTable, headID, ErrNotFound)
	}

	return s.LoadRevision(ctx, schema, current.Int64)
}

// Revisions returns the whole chain of a head, oldest first.
func (s *Store) Revisions(ctx context.Context, schema Schema, headID int64) ([]RevisionRecord, error) {
	query := revisionSelect(schema) + " WHERE tracked_model_id = ? ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, headID)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	var revisions []RevisionRecord
	for rows.Next() {
		rec, err := scanRevision(rows, schema)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		revisions = append(revisions, *rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revisions: %w", err)
	}

	return revisions, nil
}

// Values returns every column of a revision row, bookkeeping included.
func (s *Store) Values(ctx context.Context, schema Schema, revisionID int64) (Values, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = ?", schema.RevisionTable)

	rows, err := s.db.QueryContext(ctx, query, revisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query revision values: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read revision columns: %w", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading revision values: %w", err)
		}
		return nil, fmt.Errorf("revision %d in %s: %w", revisionID, schema.RevisionTable, ErrNotFound)
	}

	raw := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan revision values: %w", err)
	}

	values := make(Values, len(columns))
	for i, col := range columns {
		values[col] = normalize(raw[i])
	}
	return values, nil
}

// LoadHead reads one head joined with its current revision.
func (s *Store) LoadHead(ctx context.Context, schema Schema, id int64) (*HeadRecord, error) {
	query := headSelect(schema) + " WHERE h.id = ?"

	rec, err := scanHead(s.db.QueryRowContext(ctx, query, id), schema)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %d: %w", schema.HeadTable, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", schema.HeadTable, err)
	}
	return rec, nil
}

// ListHeads returns the heads matching scope, ordered by ID.
func (s *Store) ListHeads(ctx context.Context, schema Schema, scope Scope) ([]HeadRecord, error) {
	query := headSelect(schema)
	if where := scope.Where("r"); where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY h.id ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", schema.HeadTable, err)
	}
	defer rows.Close()

	var heads []HeadRecord
	for rows.Next() {
		rec, err := scanHead(rows, schema)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", schema.HeadTable, err)
		}
		heads = append(heads, *rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", schema.HeadTable, err)
	}

	return heads, nil
}

// Count returns the number of heads matching scope.
func (s *Store) Count(ctx context.Context, schema Schema, scope Scope) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s h LEFT JOIN %s r ON r.id = h.current_revision_id",
		schema.HeadTable, schema.RevisionTable)
	if where := scope.Where("r"); where != "" {
		query += " WHERE " + where
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", schema.HeadTable, err)
	}
	return count, nil
}

func (s *Store) insertHead(ctx context.Context, tx *sql.Tx, schema Schema, head *Head, fields Values) error {
	RunPreSave(ctx, head)
	head.CreatedAt = s.now()

	columns := append([]string{"created_by", "created_at"}, schema.HeadColumns...)
	args := []any{head.CreatedBy, head.CreatedAt}
	for _, col := range schema.HeadColumns {
		args = append(args, fields[col])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.HeadTable, strings.Join(columns, ", "), placeholders(len(columns)))

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", schema.HeadTable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	head.ID = id
	return nil
}

func (s *Store) updateHead(ctx context.Context, tx *sql.Tx, schema Schema, head *Head, fields Values) error {
	query := fmt.Sprintf("SELECT current_revision_id FROM %s WHERE id = ?", schema.HeadTable)

	var current sql.NullInt64
	err := tx.QueryRowContext(ctx, query, head.ID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", schema.HeadTable, head.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", schema.HeadTable, err)
	}
	// the stored pointer wins over whatever the caller holds
	if current.Valid {
		id := current.Int64
		head.CurrentRevisionID = &id
	} else {
		head.CurrentRevisionID = nil
	}

	if len(schema.HeadColumns) == 0 {
		return nil
	}

	sets := make([]string, 0, len(schema.HeadColumns))
	args := make([]any, 0, len(schema.HeadColumns)+1)
	for _, col := range schema.HeadColumns {
		sets = append(sets, col+" = ?")
		args = append(args, fields[col])
	}
	args = append(args, head.ID)

	query = fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", schema.HeadTable, strings.Join(sets, ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update %s: %w", schema.HeadTable, err)
	}
	return nil
}

func (s *Store) insertRevision(ctx context.Context, tx *sql.Tx, schema Schema, rev *Revision, fields Values) error {
	if rev.TrackedModelID == 0 {
		return ErrNoTrackedModel
	}

	RunPreSave(ctx, rev)
	rev.CreatedAt = s.now()

	columns := append([]string{"tracked_model_id", "created_by", "created_at", "is_deleted"}, schema.RevisionColumns...)
	args := []any{rev.TrackedModelID, rev.CreatedBy, rev.CreatedAt, rev.IsDeleted}
	for _, col := range schema.RevisionColumns {
		args = append(args, fields[col])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.RevisionTable, strings.Join(columns, ", "), placeholders(len(columns)))

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", schema.RevisionTable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	query = fmt.Sprintf("UPDATE %s SET current_revision_id = ? WHERE id = ?", schema.HeadTable)
	result, err = tx.ExecContext(ctx, query, id, rev.TrackedModelID)
	if err != nil {
		return fmt.Errorf("failed to repoint %s: %w", schema.HeadTable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", schema.HeadTable, rev.TrackedModelID, ErrNotFound)
	}

	rev.ID = id
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func revisionSelect(schema Schema) string {
	columns := append([]string{"id", "tracked_model_id", "created_by", "created_at", "is_deleted"}, schema.RevisionColumns...)
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), schema.RevisionTable)
}

func scanRevision(row scanner, schema Schema) (*RevisionRecord, error) {
	var (
		rec       RevisionRecord
		createdBy sql.NullString
	)

	raw := make([]any, len(schema.RevisionColumns))
	dest := []any{&rec.ID, &rec.TrackedModelID, &createdBy, &rec.CreatedAt, &rec.IsDeleted}
	for i := range raw {
		dest = append(dest, &raw[i])
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if createdBy.Valid {
		rec.CreatedBy = &createdBy.String
	}
	rec.Fields = make(Values, len(raw))
	for i, col := range schema.RevisionColumns {
		rec.Fields[col] = normalize(raw[i])
	}
	return &rec, nil
}

func headSelect(schema Schema) string {
	columns := []string{"h.id", "h.current_revision_id", "h.created_by", "h.created_at"}
	for _, col := range schema.HeadColumns {
		columns = append(columns, "h."+col)
	}
	columns = append(columns, "r.id", "r.tracked_model_id", "r.created_by", "r.created_at", "r.is_deleted")
	for _, col := range schema.RevisionColumns {
		columns = append(columns, "r."+col)
	}

	return fmt.Sprintf("SELECT %s FROM %s h LEFT JOIN %s r ON r.id = h.current_revision_id",
		strings.Join(columns, ", "), schema.HeadTable, schema.RevisionTable)
}

func scanHead(row scanner, schema Schema) (*HeadRecord, error) {
	var (
		rec           HeadRecord
		currentID     sql.NullInt64
		headCreatedBy sql.NullString
		revID         sql.NullInt64
		revTracked    sql.NullInt64
		revCreatedBy  sql.NullString
		revCreatedAt  sql.NullTime
		revDeleted    sql.NullBool
	)

	headRaw := make([]any, len(schema.HeadColumns))
	revRaw := make([]any, len(schema.RevisionColumns))

	dest := []any{&rec.ID, &currentID, &headCreatedBy, &rec.CreatedAt}
	for i := range headRaw {
		dest = append(dest, &headRaw[i])
	}
	dest = append(dest, &revID, &revTracked, &revCreatedBy, &revCreatedAt, &revDeleted)
	for i := range revRaw {
		dest = append(dest, &revRaw[i])
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if currentID.Valid {
		rec.CurrentRevisionID = &currentID.Int64
	}
	if headCreatedBy.Valid {
		rec.CreatedBy = &headCreatedBy.String
	}
	rec.Fields = make(Values, len(headRaw))
	for i, col := range schema.HeadColumns {
		rec.Fields[col] = normalize(headRaw[i])
	}

	if !revID.Valid {
		return &rec, nil
	}

	current := &RevisionRecord{
		Revision: Revision{
			ID:             revID.Int64,
			TrackedModelID: revTracked.Int64,
			CreatedAt:      revCreatedAt.Time,
			IsDeleted:      revDeleted.Bool,
		},
		Fields: make(Values, len(revRaw)),
	}
	if revCreatedBy.Valid {
		current.CreatedBy = &revCreatedBy.String
	}
	for i, col := range schema.RevisionColumns {
		current.Fields[col] = normalize(revRaw[i])
	}
	rec.Current = current
	return &rec, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
