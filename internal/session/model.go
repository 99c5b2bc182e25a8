package session

import (
	"time"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
)

// Session is one persisted planning conversation: the transcript the
// agent resumes from, separate from the itinerary document it edits.
type Session struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	History   []engine.ChatMessage `json:"history"`
}

// SessionMeta is a lightweight representation for listing.
type SessionMeta struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  int       `json:"messages"`
}
