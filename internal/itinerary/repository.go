package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Repository is the durable storage contract for itinerary documents.
// Lookups are always by exact session id; there are no secondary
// indexes. Load returns a SessionNotFoundError when no document
// exists for the id.
type Repository interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Close() error
}

// FileRepository persists one pretty-printed JSON document per session
// id under a base directory.
type FileRepository struct {
	basePath string
}

// NewFileRepository creates the base directory if needed.
// dataPath is typically <config dir>/voyager.
func NewFileRepository(dataPath string) (*FileRepository, error) {
	basePath := filepath.Join(dataPath, "itineraries")
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create itinerary directory: %w", err)
	}
	return &FileRepository{basePath: basePath}, nil
}

func (r *FileRepository) sessionFile(id string) string {
	return filepath.Join(r.basePath, fmt.Sprintf("%s.json", id))
}

// Load reads and unmarshals the session document.
func (r *FileRepository) Load(ctx context.Context, id string) (*Session, error) {
	data, err := os.ReadFile(r.sessionFile(id))
	if os.IsNotExist(err) {
		return nil, &SessionNotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StorageError{Op: "load", ID: id, Err: err}
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, &StorageError{Op: "load", ID: id, Err: fmt.Errorf("corrupt document: %w", err)}
	}
	return &session, nil
}

// Save writes the full document to a temporary file and renames it
// into place, so an interrupted write leaves either the previous or
// the fully-applied document on disk, never a half-written file.
func (r *FileRepository) Save(ctx context.Context, session *Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", ID: session.ID, Err: fmt.Errorf("failed to marshal session: %w", err)}
	}

	target := r.sessionFile(session.ID)
	tmp, err := os.CreateTemp(r.basePath, fmt.Sprintf(".%s-*.tmp", session.ID))
	if err != nil {
		return &StorageError{Op: "save", ID: session.ID, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "save", ID: session.ID, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", ID: session.ID, Err: err}
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", ID: session.ID, Err: err}
	}
	return nil
}

// Close is a no-op for the file-backed repository.
func (r *FileRepository) Close() error { return nil }
