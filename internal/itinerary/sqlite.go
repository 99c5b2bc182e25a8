package itinerary

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores the serialized session document in a single
// table keyed by session id. An alternative to FileRepository for
// deployments that prefer one database file over a directory of JSON
// documents.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database and
// initializes the schema.
func NewSQLiteRepository(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	// WAL mode allows a reader alongside the single writer
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS itineraries (
		id         TEXT PRIMARY KEY,
		document   TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Load retrieves and unmarshals the document for the session id.
func (r *SQLiteRepository) Load(ctx context.Context, id string) (*Session, error) {
	var document string
	query := `SELECT document FROM itineraries WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, &SessionNotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StorageError{Op: "load", ID: id, Err: err}
	}

	var session Session
	if err := json.Unmarshal([]byte(document), &session); err != nil {
		return nil, &StorageError{Op: "load", ID: id, Err: fmt.Errorf("corrupt document: %w", err)}
	}
	return &session, nil
}

// Save upserts the full document. The single-statement upsert keeps
// the write atomic with respect to concurrent readers.
func (r *SQLiteRepository) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return &StorageError{Op: "save", ID: session.ID, Err: fmt.Errorf("failed to marshal session: %w", err)}
	}

	query := `
		INSERT INTO itineraries (id, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, session.ID, string(data), session.UpdatedAt.Unix()); err != nil {
		return &StorageError{Op: "save", ID: session.ID, Err: err}
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
