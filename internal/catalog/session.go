// Package catalog keeps the topics of the last extracted document in memory
// and answers search, filter and facet queries over them.
package catalog

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/horizon-topics/internal/topics"
)

// ErrNoSession is returned when no document has been extracted yet.
var ErrNoSession = errors.New("no document loaded: extract a work programme first")

// Session is one loaded document and its extraction result.
type Session struct {
	ID       uuid.UUID                `json:"id"`
	Source   string                   `json:"source"`
	LoadedAt time.Time                `json:"loaded_at"`
	Result   *topics.ExtractionResult `json:"result"`
}

// Records returns the session's topic records.
func (s *Session) Records() []topics.TopicRecord {
	if s == nil || s.Result == nil {
		return nil
	}
	return s.Result.Records
}

// Catalog holds at most one session. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	current *Session
	now     func() time.Time
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{now: time.Now}
}

// Load replaces the current session with a new one built from result.
func (c *Catalog) Load(source string, result *topics.ExtractionResult) *Session {
	if result == nil {
		result = &topics.ExtractionResult{Records: []topics.TopicRecord{}}
	}

	session := &Session{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: c.now(),
		Result:   result,
	}

	c.mu.Lock()
	c.current = session
	c.mu.Unlock()

	return session
}

// Current returns the loaded session or ErrNoSession.
func (c *Catalog) Current() (*Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil, ErrNoSession
	}
	return c.current, nil
}

// Clear drops the current session.
func (c *Catalog) Clear() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
