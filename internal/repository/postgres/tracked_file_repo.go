package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"filetags/internal/domain"
)

// Schema creates the tables read by TrackedFileRepository.
const Schema = `
CREATE TABLE IF NOT EXISTS tracked_files (
	root       TEXT        NOT NULL,
	path       TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (root, path)
);
CREATE TABLE IF NOT EXISTS tracked_file_tags (
	root TEXT NOT NULL,
	path TEXT NOT NULL,
	tag  TEXT NOT NULL,
	PRIMARY KEY (root, path, tag),
	FOREIGN KEY (root, path) REFERENCES tracked_files (root, path) ON DELETE CASCADE
);
`

// rootFilter matches every row when no roots are configured.
const rootFilter = `(cardinality($1::text[]) = 0 OR root = ANY($1::text[]))`

// TrackedFileRepository lists tracked files and their seed tags from
// Postgres. It implements domain.SeedSource.
type TrackedFileRepository struct {
	DB    *sql.DB
	roots []string
}

// NewTrackedFileRepository returns a repository scoped to the given roots.
// With no roots, every tracked file is listed.
func NewTrackedFileRepository(db *sql.DB, roots ...string) *TrackedFileRepository {
	if roots == nil {
		roots = []string{}
	}
	return &TrackedFileRepository{DB: db, roots: roots}
}

var _ domain.SeedSource = (*TrackedFileRepository)(nil)

// EnsureSchema creates the tracked file tables if they do not exist.
func (r *TrackedFileRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ListFiles returns tracked paths ordered by path.
func (r *TrackedFileRepository) ListFiles(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT DISTINCT path FROM tracked_files WHERE `+rootFilter+` ORDER BY path`,
		pq.Array(r.roots))
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Assignments returns the stored tag assignments, one per tag, ordered by
// tag name.
func (r *TrackedFileRepository) Assignments(ctx context.Context) ([]domain.TagAssignment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT tag, array_agg(DISTINCT path ORDER BY path) FROM tracked_file_tags WHERE `+rootFilter+` GROUP BY tag ORDER BY tag`,
		pq.Array(r.roots))
	if err != nil {
		return nil, fmt.Errorf("failed to list tag assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.TagAssignment
	for rows.Next() {
		var a domain.TagAssignment
		if err := rows.Scan(&a.Tag, pq.Array(&a.Files)); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Track records paths under root. Paths already tracked are skipped. It
// returns the number of newly tracked paths.
func (r *TrackedFileRepository) Track(ctx context.Context, root string, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO tracked_files (root, path) SELECT $1, unnest($2::text[]) ON CONFLICT (root, path) DO NOTHING`,
		root, pq.Array(paths))
	if err != nil {
		return 0, fmt.Errorf("failed to track files: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
