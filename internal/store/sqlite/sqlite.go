// Package sqlite is the local-build store.Store driver backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/store"
)

type sqliteStore struct{ db *sql.DB }

// New opens the database at path, applies the schema and returns the store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return NewWithDB(db), nil
}

// NewWithDB wires a store around an existing connection whose schema is in place.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

func (s *sqliteStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *sqliteStore) Close() error { return s.db.Close() }

func (s *sqliteStore) Create(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	if err := store.ValidateDocument(data); err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO documents (collection, id, data) VALUES (?,?,json(?))`, collection, id, string(data))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *sqliteStore) List(ctx context.Context, collection string, q store.Query) ([]store.Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var sb strings.Builder
	args := []any{collection}
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = ?`)
	for _, w := range q.Where {
		sb.WriteString(` AND json_extract(data, ?) = ?`)
		args = append(args, "$."+w.Field, w.Value)
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, ` ORDER BY json_extract(data, ?) %s, seq ASC`, dir)
		args = append(args, "$."+q.OrderBy)
	} else {
		sb.WriteString(` ORDER BY seq ASC`)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []store.Snapshot
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		out = append(out, store.Snapshot{ID: id, Data: json.RawMessage(data)})
	}
	return out, rows.Err()
}

func (s *sqliteStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	b := s.Batch()
	b.Update(collection, id, fields)
	return b.Commit(ctx)
}

func (s *sqliteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	return err
}

func (s *sqliteStore) Batch() store.Batch { return &batch{db: s.db} }

type batch struct {
	store.StagedOps
	db *sql.DB
}

func (b *batch) Commit(ctx context.Context) error {
	if err := b.Validate(); err != nil {
		return err
	}
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, op := range b.Ops {
		switch op.Kind {
		case store.OpDelete:
			if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, op.Collection, op.ID); err != nil {
				return err
			}
		case store.OpUpdate:
			patch, err := json.Marshal(op.Fields)
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, `UPDATE documents SET data = json_patch(data, ?) WHERE collection = ? AND id = ?`, string(patch), op.Collection, op.ID)
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
