// Package docstore is a small document-database abstraction: collections of JSON documents
// addressed by id, with equality-filtered queries. Documents are encoded with encoding/json so
// every backend stores the same shape regardless of driver.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is implemented by every document backend.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Snapshot, error)
	Set(ctx context.Context, collection, id string, doc interface{}) error
	Add(ctx context.Context, collection string, doc interface{}) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]Snapshot, error)
}

// Filter is a single equality condition on a top-level field.
type Filter struct {
	Field string
	Value interface{}
}

// Where builds an equality filter.
func Where(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

// Query narrows a collection scan. A zero Limit means unbounded.
type Query struct {
	Filters []Filter
	Limit   int
}

// Snapshot is a raw stored document.
type Snapshot struct {
	ID   string
	Data []byte
}

// DataTo decodes the document into dest.
func (s Snapshot) DataTo(dest interface{}) error {
	if err := json.Unmarshal(s.Data, dest); err != nil {
		return fmt.Errorf("decode document %s: %w", s.ID, err)
	}
	return nil
}

// Decode maps snapshots into typed values, letting setID stamp the document id.
func Decode[T any](snaps []Snapshot, setID func(*T, string)) ([]T, error) {
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		var item T
		if err := snap.DataTo(&item); err != nil {
			return nil, err
		}
		if setID != nil {
			setID(&item, snap.ID)
		}
		out = append(out, item)
	}
	return out, nil
}

func encode(doc interface{}) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

func toMap(doc interface{}) (map[string]interface{}, error) {
	raw, err := encode(doc)
	if err != nil {
		return nil, err
	}
	m := make(map[string]interface{})
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("document must encode to an object: %w", err)
	}
	return m, nil
}

// normalize converts a Go value into its JSON-decoded form so comparisons match stored data.
func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func filterObject(filters []Filter) (map[string]interface{}, error) {
	obj := make(map[string]interface{}, len(filters))
	for _, f := range filters {
		if f.Field == "" {
			return nil, errors.New("filter field required")
		}
		v, err := normalize(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode filter %s: %w", f.Field, err)
		}
		obj[f.Field] = v
	}
	return obj, nil
}
