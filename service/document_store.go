package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"go.uber.org/zap"
)

// documentCacheSize bounds the content-addressed extraction cache. Eviction
// is strict FIFO on insertion order, not LRU.
const documentCacheSize = 10

// DefaultMaxSessions bounds the session map so a long-running process does
// not accumulate sessions forever; the oldest-registered session is dropped
// when the cap is exceeded.
const DefaultMaxSessions = 1000

// Extractor turns raw document bytes into plain text.
type Extractor interface {
	Extract(name, mimeType string, data []byte) (string, error)
}

// DocumentStore owns the two pieces of shared mutable state: a
// content-addressed cache of extracted text keyed by the sha256 of the raw
// bytes, and a map from session id to that session's active document text.
// A single mutex serializes all access; extraction for a cache miss runs
// under the lock so identical bytes never run the extractor twice.
type DocumentStore struct {
	extractor   Extractor
	maxSessions int
	logger      *zap.Logger

	mu           sync.Mutex
	cache        map[string]string
	cacheOrder   []string
	sessions     map[string]string
	sessionOrder []string
}

func NewDocumentStore(extractor Extractor, maxSessions int, logger *zap.Logger) *DocumentStore {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &DocumentStore{
		extractor:   extractor,
		maxSessions: maxSessions,
		logger:      logger,
		cache:       make(map[string]string),
		sessions:    make(map[string]string),
	}
}

func contentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Resolve returns the extracted text for the given raw document bytes,
// reusing the cached result when identical content was extracted before.
// Extraction failures propagate unchanged and are never cached.
func (s *DocumentStore) Resolve(name, mimeType string, raw []byte) (string, error) {
	key := contentHash(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	if text, ok := s.cache[key]; ok {
		s.logger.Debug("document cache hit", zap.String("name", name))
		return text, nil
	}

	text, err := s.extractor.Extract(name, mimeType, raw)
	if err != nil {
		return "", err
	}

	s.cache[key] = text
	s.cacheOrder = append(s.cacheOrder, key)
	if len(s.cacheOrder) > documentCacheSize {
		oldest := s.cacheOrder[0]
		s.cacheOrder = s.cacheOrder[1:]
		delete(s.cache, oldest)
	}

	return text, nil
}

// SetActiveDocument makes text the session's active document, replacing any
// previous one. New sessions past the cap evict the oldest-registered one.
func (s *DocumentStore) SetActiveDocument(sessionID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		s.sessionOrder = append(s.sessionOrder, sessionID)
		if len(s.sessionOrder) > s.maxSessions {
			oldest := s.sessionOrder[0]
			s.sessionOrder = s.sessionOrder[1:]
			delete(s.sessions, oldest)
			s.logger.Warn("session cap exceeded, dropped oldest session",
				zap.String("session_id", oldest))
		}
	}
	s.sessions[sessionID] = text
}

func (s *DocumentStore) GetActiveDocument(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, ok := s.sessions[sessionID]
	return text, ok
}

// ClearActiveDocument removes the session's document and reports whether
// one existed.
func (s *DocumentStore) ClearActiveDocument(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	for i, id := range s.sessionOrder {
		if id == sessionID {
			s.sessionOrder = append(s.sessionOrder[:i], s.sessionOrder[i+1:]...)
			break
		}
	}
	return true
}

func (s *DocumentStore) ActiveSessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Reset drops all cached and session state. Intended for tests.
func (s *DocumentStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]string)
	s.cacheOrder = nil
	s.sessions = make(map[string]string)
	s.sessionOrder = nil
}
