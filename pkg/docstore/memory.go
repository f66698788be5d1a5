package docstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryEntry struct {
	data []byte
	seq  uint64
}

// Memory is a goroutine-safe in-process Store used for tests and local development.
type Memory struct {
	mu          sync.RWMutex
	seq         uint64
	collections map[string]map[string]memoryEntry
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]memoryEntry)}
}

func (m *Memory) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Snapshot{ID: id, Data: entry.data}, nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, doc interface{}) error {
	raw, err := encode(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(collection, id, raw)
	return nil
}

func (m *Memory) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.NewString()
	if err := m.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	current := make(map[string]interface{})
	if err := json.Unmarshal(entry.data, &current); err != nil {
		return err
	}
	for k, v := range fields {
		nv, err := normalize(v)
		if err != nil {
			return err
		}
		current[k] = nv
	}
	raw, err := encode(current)
	if err != nil {
		return err
	}
	entry.data = raw
	m.collections[collection][id] = entry
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], id)
	return nil
}

// Query returns matching documents in insertion order.
func (m *Memory) Query(ctx context.Context, collection string, q Query) ([]Snapshot, error) {
	want, err := filterObject(q.Filters)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	type hit struct {
		snap Snapshot
		seq  uint64
	}
	hits := make([]hit, 0)
	for id, entry := range m.collections[collection] {
		var doc map[string]interface{}
		if err := json.Unmarshal(entry.data, &doc); err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		if matches(doc, want) {
			hits = append(hits, hit{snap: Snapshot{ID: id, Data: entry.data}, seq: entry.seq})
		}
	}
	m.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool { return hits[i].seq < hits[j].seq })
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	out := make([]Snapshot, len(hits))
	for i, h := range hits {
		out[i] = h.snap
	}
	return out, nil
}

func (m *Memory) put(collection, id string, raw []byte) {
	docs, ok := m.collections[collection]
	if !ok {
		docs = make(map[string]memoryEntry)
		m.collections[collection] = docs
	}
	if existing, ok := docs[id]; ok {
		docs[id] = memoryEntry{data: raw, seq: existing.seq}
		return
	}
	m.seq++
	docs[id] = memoryEntry{data: raw, seq: m.seq}
}

func matches(doc, want map[string]interface{}) bool {
	for field, value := range want {
		got, ok := doc[field]
		if !ok {
			if value == nil {
				continue
			}
			return false
		}
		if !reflect.DeepEqual(got, value) {
			return false
		}
	}
	return true
}
