package family

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when a document or entity does not exist.
var ErrNotFound = errors.New("not found")

// Collection names a set of documents of one kind.
type Collection string

const (
	Worlds        Collection = "worlds"
	Houses        Collection = "houses"
	Sims          Collection = "sims"
	Relationships Collection = "relationships"
	Diary         Collection = "diary"
)

// Document is a stored JSON object and its ID.
type Document struct {
	ID   string
	Data json.RawMessage
}

// DocumentStore keeps schemaless JSON documents grouped in collections.
//
// Data must be a JSON object. Update merges the top-level keys of patch into
// the stored object, replacing keys that already exist. List and Find return
// documents in creation order.
type DocumentStore interface {
	Create(ctx context.Context, coll Collection, data json.RawMessage) (string, error)
	Get(ctx context.Context, coll Collection, id string) (json.RawMessage, error)
	Update(ctx context.Context, coll Collection, id string, patch json.RawMessage) error
	Delete(ctx context.Context, coll Collection, id string) error
	List(ctx context.Context, coll Collection) ([]Document, error)

	// Find returns the documents whose string field equals value.
	Find(ctx context.Context, coll Collection, field, value string) ([]Document, error)
}
