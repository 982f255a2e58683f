package family

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps documents in a single SQLite file. It is the store for
// running the server on one machine without a database server.
type SQLiteStore struct {
	db *sql.DB
}

var _ DocumentStore = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database file at path and makes
// sure the documents table exists. ":memory:" gives a private in-memory
// database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS documents (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data TEXT NOT NULL,
		UNIQUE (collection, id)
	)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("family: migrate: %w", err)
	}
	return nil
}

// Create inserts data under a new random ID.
func (s *SQLiteStore) Create(ctx context.Context, coll Collection, data json.RawMessage) (string, error) {
	if _, err := decodeObject(data); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)`,
		string(coll), id, string(data))
	if err != nil {
		return "", fmt.Errorf("family: create %s: %w", coll, err)
	}
	return id, nil
}

// Get returns one document.
func (s *SQLiteStore) Get(ctx context.Context, coll Collection, id string) (json.RawMessage, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`,
		string(coll), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", coll, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("family: get %s/%s: %w", coll, id, err)
	}
	return json.RawMessage(data), nil
}

// Update merges the top-level keys of patch into the stored document. The
// merge happens in Go inside a transaction; SQLite's json_patch would also
// merge nested objects and drop null keys.
func (s *SQLiteStore) Update(ctx context.Context, coll Collection, id string, patch json.RawMessage) error {
	changes, err := decodeObject(patch)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("family: update %s/%s: %w", coll, id, err)
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`,
		string(coll), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s/%s: %w", coll, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("family: update %s/%s: %w", coll, id, err)
	}

	fields, err := decodeObject(json.RawMessage(data))
	if err != nil {
		return fmt.Errorf("family: update %s/%s: %w", coll, id, err)
	}
	for k, v := range changes {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET data = ? WHERE collection = ? AND id = ?`,
		string(merged), string(coll), id); err != nil {
		return fmt.Errorf("family: update %s/%s: %w", coll, id, err)
	}
	return tx.Commit()
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, coll Collection, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		string(coll), id); err != nil {
		return fmt.Errorf("family: delete %s/%s: %w", coll, id, err)
	}
	return nil
}

// List returns every document in the collection in creation order.
func (s *SQLiteStore) List(ctx context.Context, coll Collection) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = ? ORDER BY seq ASC`,
		string(coll))
	if err != nil {
		return nil, fmt.Errorf("family: list %s: %w", coll, err)
	}
	defer rows.Close()
	return scanSQLiteDocuments(rows)
}

// Find returns the documents whose field holds the string value.
func (s *SQLiteStore) Find(ctx context.Context, coll Collection, field, value string) ([]Document, error) {
	path, err := json.Marshal(field)
	if err != nil {
		return nil, err
	}
	// The quoted key keeps field names with dots or brackets literal.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents
		 WHERE collection = ? AND json_type(data, ?) = 'text' AND json_extract(data, ?) = ?
		 ORDER BY seq ASC`,
		string(coll), "$."+string(path), "$."+string(path), value)
	if err != nil {
		return nil, fmt.Errorf("family: find %s: %w", coll, err)
	}
	defer rows.Close()
	return scanSQLiteDocuments(rows)
}

func scanSQLiteDocuments(rows *sql.Rows) ([]Document, error) {
	docs := []Document{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("family: scan document: %w", err)
		}
		docs = append(docs, Document{ID: id, Data: json.RawMessage(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("family: read documents: %w", err)
	}
	return docs, nil
}
