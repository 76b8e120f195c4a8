package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/lenk/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
)

// DBFile is the database file name inside the data directory.
const DBFile = "lenk.db"

// Store is the SQLite-backed storage for lenk.
type Store struct {
	db   *sqlx.DB
	path string
	now  func() time.Time
}

// Option configures the store.
type Option func(*Store)

// WithClock sets the time source used for annotation CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lenk/data/lenk.db.
func NewStore(dataDir string, opts ...Option) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lenk", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)

	// WAL lets the HTTP server read while a CLI process writes.
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AnnotationStore returns an AnnotationStore interface backed by this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	if err := s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_annotations.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Beginx()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// unavailable marks err as a backing-store failure.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistenceUnavailable, err)
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

// annotationRow mirrors the annotations table.
type annotationRow struct {
	ID            string        `db:"id"`
	DocumentPath  string        `db:"document_path"`
	HeadingLabel  string        `db:"heading_label"`
	Signature     string        `db:"signature"`
	CellIndex     int           `db:"cell_index"`
	Body          string        `db:"body"`
	CreatedAt     int64         `db:"created_at"`
	LastMatchedAt sql.NullInt64 `db:"last_matched_at"`
	Confidence    string        `db:"confidence"`
}

func (r annotationRow) toDomain() domain.Annotation {
	a := domain.Annotation{
		ID:           r.ID,
		DocumentPath: r.DocumentPath,
		HeadingLabel: r.HeadingLabel,
		Signature:    r.Signature,
		CellIndex:    r.CellIndex,
		Body:         r.Body,
		CreatedAt:    time.Unix(0, r.CreatedAt).UTC(),
		Confidence:   domain.Confidence(r.Confidence),
	}
	if r.LastMatchedAt.Valid {
		at := time.Unix(0, r.LastMatchedAt.Int64).UTC()
		a.LastMatchedAt = &at
	}
	return a
}

const annotationColumns = `id, document_path, heading_label, signature, cell_index, body,
	created_at, last_matched_at, confidence`

// Add stores a new annotation.
func (s *annotationStore) Add(
	ctx context.Context, documentPath, headingLabel, signature string, cellIndex int, body string,
) (*domain.Annotation, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrInvalidInput
	}

	row := annotationRow{
		ID:           uuid.New().String(),
		DocumentPath: documentPath,
		HeadingLabel: headingLabel,
		Signature:    signature,
		CellIndex:    cellIndex,
		Body:         body,
		CreatedAt:    s.store.now().UTC().UnixNano(),
		Confidence:   string(domain.ConfidenceExact),
	}

	_, err := s.store.db.NamedExecContext(ctx, `
		INSERT INTO annotations (`+annotationColumns+`)
		VALUES (:id, :document_path, :heading_label, :signature, :cell_index, :body,
			:created_at, :last_matched_at, :confidence)
	`, row)
	if err != nil {
		return nil, unavailable("saving annotation", err)
	}

	a := row.toDomain()
	return &a, nil
}

// QueryExact returns annotations matching heading label and signature.
func (s *annotationStore) QueryExact(
	ctx context.Context, documentPath, headingLabel, signature string,
) ([]domain.Annotation, error) {
	return s.query(ctx, "querying exact annotations", `
		SELECT `+annotationColumns+` FROM annotations
		WHERE document_path = ? AND heading_label = ? AND signature = ?
		ORDER BY created_at, seq
	`, documentPath, headingLabel, signature)
}

// QueryByHeading returns annotations matching heading label.
func (s *annotationStore) QueryByHeading(
	ctx context.Context, documentPath, headingLabel string,
) ([]domain.Annotation, error) {
	return s.query(ctx, "querying annotations by heading", `
		SELECT `+annotationColumns+` FROM annotations
		WHERE document_path = ? AND heading_label = ?
		ORDER BY created_at, seq
	`, documentPath, headingLabel)
}

// List returns every annotation of a document.
func (s *annotationStore) List(ctx context.Context, documentPath string) ([]domain.Annotation, error) {
	return s.query(ctx, "listing annotations", `
		SELECT `+annotationColumns+` FROM annotations
		WHERE document_path = ?
		ORDER BY created_at, seq
	`, documentPath)
}

// Delete removes an annotation.
func (s *annotationStore) Delete(ctx context.Context, documentPath, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM annotations WHERE document_path = ? AND id = ?", documentPath, id)
	if err != nil {
		return unavailable("deleting annotation", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("deleting annotation", err)
	}
	if n == 0 {
		return domain.ErrAnnotationNotFound
	}
	return nil
}

// RefreshConfidence records the latest match of an annotation.
// Unknown ids are ignored.
func (s *annotationStore) RefreshConfidence(
	ctx context.Context, documentPath, id string, confidence domain.Confidence, now time.Time,
) error {
	_, err := s.store.db.ExecContext(ctx, `
		UPDATE annotations SET confidence = ?, last_matched_at = ?
		WHERE document_path = ? AND id = ?
	`, string(confidence), now.UTC().UnixNano(), documentPath, id)
	if err != nil {
		return unavailable("refreshing annotation", err)
	}
	return nil
}

// Close closes the underlying store.
func (s *annotationStore) Close() error {
	return s.store.Close()
}

func (s *annotationStore) query(ctx context.Context, op, query string, args ...any) ([]domain.Annotation, error) {
	var rows []annotationRow
	if err := s.store.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, unavailable(op, err)
	}

	out := make([]domain.Annotation, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
