package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/DeafMist/guestpost-report/internal/pipeline"
)

// Upload is the dataset a session is currently looking at.
type Upload struct {
	FileName   string
	UploadedAt time.Time
	Dataset    *pipeline.Dataset
}

// Store keeps one upload per session. Entries expire ttl after they were stored and the
// least recently used session is dropped once capacity is exceeded.
type Store struct {
	uploads *expirable.LRU[string, *Upload]
}

// NewStore creates a store with the provided capacity and ttl.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{uploads: expirable.NewLRU[string, *Upload](capacity, nil, ttl)}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Get returns the session's upload if it has not expired.
func (s *Store) Get(id string) (*Upload, bool) {
	if id == "" {
		return nil, false
	}
	return s.uploads.Get(id)
}

// Put replaces whatever the session held before.
func (s *Store) Put(id string, upload *Upload) {
	s.uploads.Add(id, upload)
}

// Delete forgets a session.
func (s *Store) Delete(id string) {
	s.uploads.Remove(id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.uploads.Len()
}
