// Package store keeps snapshots of loaded catalogs in PostgreSQL.
//
// Each successful catalog load is written under its load ID with the course
// order preserved, so a past load can be inspected or restored without the
// course file.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/coursecatalog/internal/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TableName is the snapshot table.
const TableName = "catalog_courses"

// copyColumns lists the snapshot columns in the order copyRows emits them.
var copyColumns = []string{"load_id", "position", "course_id", "title", "prerequisites", "amount"}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS catalog_courses (
	load_id       uuid    NOT NULL,
	position      integer NOT NULL,
	course_id     text    NOT NULL,
	title         text    NOT NULL,
	prerequisites text    NOT NULL,
	amount        double precision NOT NULL DEFAULT 0,
	saved_at      timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (load_id, position)
)`

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Store writes and reads catalog snapshots.
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// New creates a Store on an open pool. timeout bounds each snapshot write;
// zero means no extra bound beyond the caller's context.
func New(pool *pgxpool.Pool, timeout time.Duration) *Store {
	return &Store{pool: pool, timeout: timeout}
}

// Connect parses url, applies the pool limits and pings the database.
func Connect(ctx context.Context, url string, maxConns, minConns int, maxLifetime, maxIdle time.Duration) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = int32(minConns)
	poolConfig.MaxConnLifetime = maxLifetime
	poolConfig.MaxConnIdleTime = maxIdle

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the snapshot table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create %s: %w", TableName, err)
	}
	return nil
}

// SaveSnapshot replaces the snapshot for loadID with courses in one
// transaction, using COPY for the rows.
func (s *Store) SaveSnapshot(ctx context.Context, loadID uuid.UUID, courses []core.Course) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if err := deleteSnapshot(ctx, tx, loadID); err != nil {
		return err
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{TableName}, copyColumns, pgx.CopyFromRows(copyRows(loadID, courses)))
	if err != nil {
		return fmt.Errorf("copy courses: %w", err)
	}
	if int(n) != len(courses) {
		return fmt.Errorf("copy courses: wrote %d of %d rows", n, len(courses))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the courses saved for loadID in their saved order.
// It returns core.ErrSnapshotNotFound when no snapshot exists.
func (s *Store) LoadSnapshot(ctx context.Context, loadID uuid.UUID) ([]core.Course, error) {
	return loadSnapshot(ctx, s.pool, loadID)
}

// LatestLoadID returns the load ID of the most recently saved snapshot.
// It returns core.ErrSnapshotNotFound when no snapshot was saved.
func (s *Store) LatestLoadID(ctx context.Context) (uuid.UUID, error) {
	var id pgtype.UUID
	err := s.pool.QueryRow(ctx,
		`SELECT load_id FROM catalog_courses ORDER BY saved_at DESC, load_id LIMIT 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, core.ErrSnapshotNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func deleteSnapshot(ctx context.Context, db DBTX, loadID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM catalog_courses WHERE load_id = $1`, toPgUUID(loadID)); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", loadID, err)
	}
	return nil
}

func loadSnapshot(ctx context.Context, db DBTX, loadID uuid.UUID) ([]core.Course, error) {
	rows, err := db.Query(ctx, `
		SELECT course_id, title, prerequisites, amount
		FROM catalog_courses
		WHERE load_id = $1
		ORDER BY position`, toPgUUID(loadID))
	if err != nil {
		return nil, fmt.Errorf("query snapshot %s: %w", loadID, err)
	}

	courses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Course, error) {
		var c core.Course
		err := row.Scan(&c.ID, &c.Title, &c.Prerequisites, &c.Amount)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan snapshot %s: %w", loadID, err)
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("snapshot %s: %w", loadID, core.ErrSnapshotNotFound)
	}
	return courses, nil
}

// copyRows converts courses to COPY rows matching copyColumns.
func copyRows(loadID uuid.UUID, courses []core.Course) [][]any {
	id := toPgUUID(loadID)
	rows := make([][]any, len(courses))
	for i, c := range courses {
		rows[i] = []any{id, int32(i), c.ID, c.Title, c.Prerequisites, c.Amount}
	}
	return rows
}

func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
