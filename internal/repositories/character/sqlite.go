package character

import (
	"context"
	"database/sql"
	_ "embed"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
)

//go:embed schema.sql
var schema string

// SQLiteConfig contains configuration for the SQLite character repository
type SQLiteConfig struct {
	// Path is the database file; ":memory:" keeps everything in process
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("storage path is required")
	}
	return nil
}

// SQLiteRepository stores one row per character. Close releases the handle.
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLite opens the database and applies the embedded schema
func NewSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := cfg.Path
	if dsn != ":memory:" {
		dsn = filepath.Clean(dsn) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping sqlite db")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to apply schema")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the SQLite handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// Create inserts one record
func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	record := copyRecord(input.Record)
	now := fromMillis(toMillis(r.clock.Now()))
	record.Version = 1
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO characters (id, player_token_id, name, document, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.PlayerTokenID, record.Name, string(record.Document),
		record.Version, toMillis(record.CreatedAt), toMillis(record.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("character with ID %s already exists", record.ID)
		}
		return nil, errors.Wrapf(err, "failed to create character")
	}

	slog.DebugContext(ctx, "created character row", "character_id", record.ID)
	return &CreateOutput{Record: record}, nil
}

// Get reads one record
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRecordIDEmpty)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, player_token_id, name, document, version, created_at, updated_at
		 FROM characters WHERE id = ?`, input.ID)
	record, err := scanRecord(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}
	return &GetOutput{Record: record}, nil
}

// Update overwrites the row and bumps its version in one statement
func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	record := input.Record
	res, err := r.db.ExecContext(ctx,
		`UPDATE characters
		 SET player_token_id = ?, name = ?, document = ?, version = version + 1, updated_at = ?
		 WHERE id = ?`,
		record.PlayerTokenID, record.Name, string(record.Document), toMillis(r.clock.Now()), record.ID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	} else if n == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", record.ID)
	}

	out, err := r.Get(ctx, GetInput{ID: record.ID})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "updated character row",
		"character_id", record.ID,
		"version", out.Record.Version)
	return &UpdateOutput{Record: out.Record}, nil
}

// Delete removes one row
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRecordIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	} else if n == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}
	return &DeleteOutput{}, nil
}

// List returns every row ordered by creation time
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, player_token_id, name, document, version, created_at, updated_at
		 FROM characters ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}
	defer func() { _ = rows.Close() }()

	records := make([]*Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan character")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}
	return &ListOutput{Records: records}, nil
}

// DeleteAll empties the table
func (r *SQLiteRepository) DeleteAll(ctx context.Context, _ DeleteAllInput) (*DeleteAllOutput, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM characters`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete characters")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete characters")
	}

	slog.InfoContext(ctx, "deleted all character rows", "count", n)
	return &DeleteAllOutput{Deleted: int(n)}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		record    Record
		document  string
		createdAt int64
		updatedAt int64
	)
	if err := s.Scan(&record.ID, &record.PlayerTokenID, &record.Name, &document,
		&record.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.Document = []byte(document)
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return &record, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
