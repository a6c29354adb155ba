// Package memory is an in-process store.Store used for tests and throwaway
// local runs.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/store"
)

type document struct {
	seq  uint64
	data map[string]any
}

// Store keeps every collection in memory behind a single lock.
type Store struct {
	mu          sync.RWMutex
	seq         uint64
	collections map[string]map[string]*document
}

// New returns an empty Store.
func New() *Store {
	return &Store{collections: map[string]map[string]*document{}}
}

func (s *Store) HealthPing(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Create stores data under a fresh uuid.
func (s *Store) Create(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc, err := decode(data)
	if err != nil {
		return "", fmt.Errorf("decode document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.seq++
	col := s.collection(collection)
	col[id] = &document{seq: s.seq, data: doc}
	return id, nil
}

// List returns matching documents, ordered by q.OrderBy when set and by
// insertion order otherwise.
func (s *Store) List(ctx context.Context, collection string, q store.Query) ([]store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	type row struct {
		id  string
		doc *document
	}
	var rows []row
	for id, doc := range s.collections[collection] {
		if matches(doc.data, q.Where) {
			rows = append(rows, row{id: id, doc: doc})
		}
	}
	out := make([]store.Snapshot, 0, len(rows))
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].doc.seq < rows[j].doc.seq })
	if q.OrderBy != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := number(rows[i].doc.data[q.OrderBy]), number(rows[j].doc.data[q.OrderBy])
			if q.Descending {
				return a > b
			}
			return a < b
		})
	}
	for _, r := range rows {
		b, err := json.Marshal(r.doc.data)
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		out = append(out, store.Snapshot{ID: r.id, Data: b})
	}
	s.mu.RUnlock()
	return out, nil
}

// Update merges fields into the stored document.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	b := s.Batch()
	b.Update(collection, id, fields)
	return b.Commit(ctx)
}

// Delete removes a document if present.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

// Batch starts a new batch against s.
func (s *Store) Batch() store.Batch {
	return &batch{s: s}
}

type batch struct {
	store.StagedOps
	s *Store
}

// Commit checks every staged op before applying any of them.
func (b *batch) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	patches := make([]map[string]any, len(b.Ops))
	for i, op := range b.Ops {
		if op.Kind != store.OpUpdate {
			continue
		}
		raw, err := json.Marshal(op.Fields)
		if err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		if patches[i], err = decode(raw); err != nil {
			return err
		}
	}

	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	gone := map[string]bool{}
	for _, op := range b.Ops {
		key := op.Collection + "/" + op.ID
		switch op.Kind {
		case store.OpDelete:
			gone[key] = true
		case store.OpUpdate:
			if _, ok := b.s.collections[op.Collection][op.ID]; !ok || gone[key] {
				return fmt.Errorf("update %s: %w", key, model.ErrNotFound)
			}
		}
	}
	for i, op := range b.Ops {
		switch op.Kind {
		case store.OpDelete:
			delete(b.s.collections[op.Collection], op.ID)
		case store.OpUpdate:
			doc := b.s.collections[op.Collection][op.ID]
			for k, v := range patches[i] {
				doc.data[k] = v
			}
		}
	}
	return nil
}

func (s *Store) collection(name string) map[string]*document {
	col, ok := s.collections[name]
	if !ok {
		col = map[string]*document{}
		s.collections[name] = col
	}
	return col
}

func decode(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("document must be a JSON object")
	}
	return m, nil
}

func matches(doc map[string]any, where []store.Eq) bool {
	for _, w := range where {
		v, ok := doc[w.Field].(string)
		if !ok || v != w.Value {
			return false
		}
	}
	return true
}

func number(v any) float64 {
	if n, ok := v.(json.Number); ok {
		f, _ := n.Float64()
		return f
	}
	return 0
}
