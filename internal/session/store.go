// Package session persists conversation transcripts so a planning
// dialogue can resume across runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store handles persistence of sessions.
type Store struct {
	basePath string
}

// NewStore creates a new session store.
// dataPath is typically <config dir>/voyager.
func NewStore(dataPath string) *Store {
	return &Store{
		basePath: filepath.Join(dataPath, "sessions"),
	}
}

func (s *Store) sessionFile(id string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s.json", id))
}

// Save persists a session to disk.
func (s *Store) Save(session *Session) error {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.sessionFile(session.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a specific session.
func (s *Store) Load(id string) (*Session, error) {
	data, err := os.ReadFile(s.sessionFile(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Exists reports whether a transcript is stored for the id.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.sessionFile(id))
	return err == nil
}

// List returns all stored sessions, newest first.
func (s *Store) List() ([]SessionMeta, error) {
	entries, err := os.ReadDir(s.basePath)
	if os.IsNotExist(err) {
		return []SessionMeta{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list session directory: %w", err)
	}

	var sessions []SessionMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.basePath, entry.Name()))
		if err != nil {
			continue // Skip unreadable files
		}

		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue // Skip invalid files
		}

		sessions = append(sessions, SessionMeta{
			ID:        sess.ID,
			Title:     sess.Title,
			CreatedAt: sess.CreatedAt,
			UpdatedAt: sess.UpdatedAt,
			Messages:  len(sess.History),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}
