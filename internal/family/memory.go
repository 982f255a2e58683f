package family

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a DocumentStore held in process memory. It is used when no
// database is configured and in tests.
//
// MemoryStore is safe for concurrent use by multiple goroutines.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[Collection]*memCollection
}

type memCollection struct {
	order []string
	docs  map[string]map[string]json.RawMessage
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[Collection]*memCollection)}
}

var _ DocumentStore = (*MemoryStore)(nil)

func (s *MemoryStore) collection(coll Collection) *memCollection {
	c, ok := s.collections[coll]
	if !ok {
		c = &memCollection{docs: make(map[string]map[string]json.RawMessage)}
		s.collections[coll] = c
	}
	return c
}

func decodeObject(data json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("document must be a JSON object, got null")
	}
	return fields, nil
}

// Create stores data under a new random ID.
func (s *MemoryStore) Create(_ context.Context, coll Collection, data json.RawMessage) (string, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(coll)
	c.order = append(c.order, id)
	c.docs[id] = fields
	return id, nil
}

// Get returns the stored document.
func (s *MemoryStore) Get(_ context.Context, coll Collection, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[coll]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", coll, id, ErrNotFound)
	}
	fields, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", coll, id, ErrNotFound)
	}
	return json.Marshal(fields)
}

// Update merges patch into the stored document.
func (s *MemoryStore) Update(_ context.Context, coll Collection, id string, patch json.RawMessage) error {
	changes, err := decodeObject(patch)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[coll]
	if !ok {
		return fmt.Errorf("%s/%s: %w", coll, id, ErrNotFound)
	}
	fields, ok := c.docs[id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", coll, id, ErrNotFound)
	}
	for k, v := range changes {
		fields[k] = v
	}
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *MemoryStore) Delete(_ context.Context, coll Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[coll]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, docID := range c.order {
		if docID == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns every document in the collection.
func (s *MemoryStore) List(_ context.Context, coll Collection) ([]Document, error) {
	return s.filter(coll, func(map[string]json.RawMessage) bool { return true })
}

// Find returns the documents whose field holds the string value.
func (s *MemoryStore) Find(_ context.Context, coll Collection, field, value string) ([]Document, error) {
	return s.filter(coll, func(fields map[string]json.RawMessage) bool {
		raw, ok := fields[field]
		if !ok {
			return false
		}
		var got string
		return json.Unmarshal(raw, &got) == nil && got == value
	})
}

func (s *MemoryStore) filter(coll Collection, keep func(map[string]json.RawMessage) bool) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := []Document{}
	c, ok := s.collections[coll]
	if !ok {
		return docs, nil
	}
	for _, id := range c.order {
		fields := c.docs[id]
		if !keep(fields) {
			continue
		}
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: id, Data: data})
	}
	return docs, nil
}
