package store

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
)

// Store is a generic document store. Documents are JSON objects addressed by
// (collection, id). Implementations live under internal/store/<driver>/.
type Store interface {
	// Create persists data under a new store-assigned id.
	Create(ctx context.Context, collection string, data json.RawMessage) (string, error)
	// List returns the documents matching q.
	List(ctx context.Context, collection string, q Query) ([]Snapshot, error)
	// Update shallow-merges fields into an existing document.
	// Returns model.ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes a document. Deleting a missing document is a no-op.
	Delete(ctx context.Context, collection, id string) error
	// Batch starts an all-or-nothing group of writes.
	Batch() Batch

	HealthPing(ctx context.Context) error
	Close() error
}

// Batch stages writes and applies them atomically on Commit.
// An update staged against a missing document fails the whole batch.
type Batch interface {
	Delete(collection, id string)
	Update(collection, id string, fields map[string]any)
	Len() int
	Commit(ctx context.Context) error
}

// Snapshot is one stored document.
type Snapshot struct {
	ID   string
	Data json.RawMessage
}

// Eq filters documents whose top-level string field equals Value.
type Eq struct {
	Field string
	Value string
}

// Query narrows and orders a listing. OrderBy must name a numeric field.
type Query struct {
	Where      []Eq
	OrderBy    string
	Descending bool
}

var fieldRx = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateField rejects names that cannot be used as a top-level document key.
func ValidateField(name string) error {
	if !fieldRx.MatchString(name) {
		return fmt.Errorf("invalid field name %q", name)
	}
	return nil
}

// ValidateFields checks an update payload. Nil values are rejected: an update
// never clears a field.
func ValidateFields(fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("update has no fields")
	}
	for k, v := range fields {
		if err := ValidateField(k); err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("field %q has no value", k)
		}
	}
	return nil
}

// Validate checks every field name referenced by q.
func (q Query) Validate() error {
	for _, w := range q.Where {
		if err := ValidateField(w.Field); err != nil {
			return err
		}
	}
	if q.OrderBy != "" {
		return ValidateField(q.OrderBy)
	}
	return nil
}

// OpKind identifies a staged batch write.
type OpKind int

const (
	OpDelete OpKind = iota
	OpUpdate
)

// Op is a staged batch write. Drivers embed StagedOps to collect them.
type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Fields     map[string]any
}

// StagedOps is the shared staging half of a Batch implementation.
type StagedOps struct {
	Ops []Op
}

func (s *StagedOps) Delete(collection, id string) {
	s.Ops = append(s.Ops, Op{Kind: OpDelete, Collection: collection, ID: id})
}

func (s *StagedOps) Update(collection, id string, fields map[string]any) {
	s.Ops = append(s.Ops, Op{Kind: OpUpdate, Collection: collection, ID: id, Fields: fields})
}

func (s *StagedOps) Len() int { return len(s.Ops) }

// Validate checks every staged update.
func (s *StagedOps) Validate() error {
	for _, op := range s.Ops {
		if op.Kind != OpUpdate {
			continue
		}
		if err := ValidateFields(op.Fields); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDocument checks that data is a JSON object.
func ValidateDocument(data json.RawMessage) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return fmt.Errorf("document must be a JSON object")
	}
	return nil
}
