package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/store"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
        seq        BIGSERIAL PRIMARY KEY,
        collection TEXT  NOT NULL,
        id         TEXT  NOT NULL,
        data       JSONB NOT NULL,
        UNIQUE (collection, id)
    )`,
	`CREATE INDEX IF NOT EXISTS documents_lifecycle_idx
        ON documents (collection, (data->>'repeatMode'), (data->>'completed'))`,
	`CREATE INDEX IF NOT EXISTS documents_created_idx
        ON documents (collection, (data->'createdAt') DESC)`,
}

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity within ctx.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the documents table and its indexes if missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Bootstrap performs a connectivity and schema check against dsn.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return EnsureSchema(ctx, db)
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *pgStore) Close() error { return s.db.Close() }

func (s *pgStore) Create(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	if err := store.ValidateDocument(data); err != nil {
		return "", err
	}
	id := uuid.New().String()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1,$2,$3::jsonb)`,
		collection, id, string(data)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *pgStore) List(ctx context.Context, collection string, q store.Query) ([]store.Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var sb strings.Builder
	args := []any{collection}
	sb.WriteString(`SELECT id, data FROM documents WHERE collection=$1`)
	for _, w := range q.Where {
		args = append(args, w.Field, w.Value)
		fmt.Fprintf(&sb, ` AND data->>($%d::text) = $%d`, len(args)-1, len(args))
	}
	if q.OrderBy != "" {
		args = append(args, q.OrderBy)
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, ` ORDER BY data->($%d::text) %s, seq ASC`, len(args), dir)
	} else {
		sb.WriteString(` ORDER BY seq ASC`)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []store.Snapshot
	for rows.Next() {
		var snap store.Snapshot
		var data []byte
		if err := rows.Scan(&snap.ID, &data); err != nil {
			return nil, err
		}
		snap.Data = data
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *pgStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	b := s.Batch()
	b.Update(collection, id, fields)
	return b.Commit(ctx)
}

func (s *pgStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection=$1 AND id=$2`, collection, id)
	return err
}

func (s *pgStore) Batch() store.Batch { return &batch{db: s.db} }

type batch struct {
	store.StagedOps
	db *sql.DB
}

func (b *batch) Commit(ctx context.Context) error {
	if err := b.Validate(); err != nil {
		return err
	}
	tx, err := b.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, op := range b.Ops {
		switch op.Kind {
		case store.OpDelete:
			if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE collection=$1 AND id=$2`, op.Collection, op.ID); err != nil {
				return err
			}
		case store.OpUpdate:
			patch, err := json.Marshal(op.Fields)
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx,
				`UPDATE documents SET data = data || $1::jsonb WHERE collection=$2 AND id=$3`,
				string(patch), op.Collection, op.ID)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("update %s/%s: %w", op.Collection, op.ID, model.ErrNotFound)
			}
		}
	}
	return tx.Commit()
}
