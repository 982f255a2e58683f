package family

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultTableName is the table used when no custom name is provided.
const defaultTableName = "documents"

// Querier abstracts the pgx methods PostgresStore needs. *pgxpool.Pool,
// *pgx.Conn and pgx.Tx all satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps documents in one PostgreSQL table with a JSONB data
// column. Update uses the JSONB || operator, which has the same top-level
// merge semantics as MemoryStore.
type PostgresStore struct {
	db        Querier
	tableName string
}

var _ DocumentStore = (*PostgresStore)(nil)

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTableName overrides the default table name. The name is quoted with
// pgx.Identifier because it is interpolated into the SQL text.
func WithTableName(name string) PostgresOption {
	return func(s *PostgresStore) {
		s.tableName = pgx.Identifier{name}.Sanitize()
	}
}

// NewPostgresStore creates a store on db.
func NewPostgresStore(db Querier, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, tableName: defaultTableName}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenPostgres connects a pool to databaseURL and makes sure the table
// exists. The caller closes the returned pool.
func OpenPostgres(ctx context.Context, databaseURL string, opts ...PostgresOption) (*PostgresStore, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := NewPostgresStore(pool, opts...)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return s, pool, nil
}

// Migrate creates the documents table and its index if they are missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		seq BIGSERIAL,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data JSONB NOT NULL,
		PRIMARY KEY (collection, id)
	)`, s.tableName)
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("family: migrate: %w", err)
	}
	return nil
}

// Create inserts data under a new random ID.
func (s *PostgresStore) Create(ctx context.Context, coll Collection, data json.RawMessage) (string, error) {
	if _, err := decodeObject(data); err != nil {
		return "", err
	}

	id := uuid.NewString()
	query := fmt.Sprintf(`INSERT INTO %s (collection, id, data) VALUES ($1, $2, $3)`, s.tableName)
	if _, err := s.db.Exec(ctx, query, string(coll), id, []byte(data)); err != nil {
		return "", fmt.Errorf("family: create %s: %w", coll, err)
	}
	return id, nil
}

// Get returns one document.
func (s *PostgresStore) Get(ctx context.Context, coll Collection, id string) (json.RawMessage, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE collection = $1 AND id = $2`, s.tableName)

	var data []byte
	if err := s.db.QueryRow(ctx, query, string(coll), id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s/%s: %w", coll, id, ErrNotFound)
		}
		return nil, fmt.Errorf("family: get %s/%s: %w", coll, id, err)
	}
	return data, nil
}

// Update merges patch into the stored document.
func (s *PostgresStore) Update(ctx context.Context, coll Collection, id string, patch json.RawMessage) error {
	if _, err := decodeObject(patch); err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`, s.tableName)
	tag, err := s.db.Exec(ctx, query, string(coll), id, []byte(patch))
	if err != nil {
		return fmt.Errorf("family: update %s/%s: %w", coll, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", coll, id, ErrNotFound)
	}
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *PostgresStore) Delete(ctx context.Context, coll Collection, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE collection = $1 AND id = $2`, s.tableName)
	if _, err := s.db.Exec(ctx, query, string(coll), id); err != nil {
		return fmt.Errorf("family: delete %s/%s: %w", coll, id, err)
	}
	return nil
}

// List returns every document in the collection in creation order.
func (s *PostgresStore) List(ctx context.Context, coll Collection) ([]Document, error) {
	query := fmt.Sprintf(`SELECT id, data FROM %s WHERE collection = $1 ORDER BY seq ASC`, s.tableName)

	rows, err := s.db.Query(ctx, query, string(coll))
	if err != nil {
		return nil, fmt.Errorf("family: list %s: %w", coll, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Find returns the documents whose field holds the string value.
func (s *PostgresStore) Find(ctx context.Context, coll Collection, field, value string) ([]Document, error) {
	query := fmt.Sprintf(`SELECT id, data FROM %s WHERE collection = $1 AND data->>$2 = $3 ORDER BY seq ASC`, s.tableName)

	rows, err := s.db.Query(ctx, query, string(coll), field, value)
	if err != nil {
		return nil, fmt.Errorf("family: find %s: %w", coll, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func scanDocuments(rows pgx.Rows) ([]Document, error) {
	docs := []Document{}
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("family: scan document: %w", err)
		}
		docs = append(docs, Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("family: read documents: %w", err)
	}
	return docs, nil
}
