package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"chargearm-server/game/engine"
	"chargearm-server/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// Manager tracks live simulation sessions. Session IDs are matched
// case-insensitively; the map key is always the lowercased ID. When a
// SessionPersistence is attached, creations and access updates are mirrored
// to storage and cache misses fall through to it.
type Manager struct {
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates an in-memory-only session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a session manager backed by storage.
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// lookupLocked finds a session under either the lowercased or the verbatim
// key. Callers must hold at least a read lock. The verbatim fallback keeps
// sessions created before case-insensitive matching reachable.
func (m *Manager) lookupLocked(id string) (*service.Session, bool) {
	if sess, ok := m.sessions[strings.ToLower(id)]; ok {
		return sess, true
	}
	sess, ok := m.sessions[id]
	return sess, ok
}

// Create builds a fresh engine from the config and registers a session for
// it. An empty ID gets a generated 4-character one.
func (m *Manager) Create(id string, config *engine.SceneConfig) (*service.Session, error) {
	if id == "" {
		id = m.generateSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.lookupLocked(id); exists {
		return nil, ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := time.Now()
	sess := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[strings.ToLower(id)] = sess

	m.persist(sess, "create")

	return sess, nil
}

// Get retrieves a session by ID, falling back to persisted storage on a
// memory miss.
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	sess, exists := m.lookupLocked(id)
	m.mu.RUnlock()

	if exists {
		return sess, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		sess, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		m.sessions[strings.ToLower(id)] = sess
		m.mu.Unlock()

		return sess, nil
	}

	return nil, ErrSessionNotFound
}

// GetOrCreate returns the existing session or creates one from the config.
func (m *Manager) GetOrCreate(id string, config *engine.SceneConfig) (*service.Session, error) {
	sess, err := m.Get(id)
	if err == nil {
		return sess, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}
	return nil, err
}

// List returns all sessions currently held in memory.
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Delete removes a session from memory and, when configured, from storage.
// A session that exists only in storage is still deleted there.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inMemory := m.evictLocked(id)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory drops a session from the in-memory map without touching
// storage. Used by the filesystem sync when a session file disappears.
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.evictLocked(id) {
		return ErrSessionNotFound
	}
	return nil
}

// evictLocked removes the session under either key form. Callers must hold
// the write lock.
func (m *Manager) evictLocked(id string) bool {
	for _, key := range []string{strings.ToLower(id), id} {
		if _, exists := m.sessions[key]; exists {
			delete(m.sessions, key)
			return true
		}
	}
	return false
}

// UpdateLastAccessed stamps the session's access time and mirrors it to
// storage so restarts keep expiry ordering intact.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.lookupLocked(id)
	if !exists {
		return ErrSessionNotFound
	}

	sess.LastAccessedAt = time.Now()
	m.persist(sess, "access update")

	return nil
}

// Save writes one session to storage. A manager without persistence treats
// this as a no-op.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sess, exists := m.lookupLocked(id)
	m.mu.RUnlock()

	if !exists {
		return ErrSessionNotFound
	}
	return m.persistence.Save(sess)
}

// CleanupExpiredSessions drops sessions whose last access is older than
// maxAge and reports how many were removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of in-memory sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID produces a random 4-hex-character ID.
func (m *Manager) generateSessionID() string {
	buf := make([]byte, 2)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// persist mirrors a session to storage, logging failures instead of
// propagating them so gameplay never stalls on disk errors. Callers must
// hold the write lock.
func (m *Manager) persist(sess *service.Session, reason string) {
	if m.persistence == nil {
		return
	}
	if err := m.persistence.Save(sess); err != nil {
		logrus.WithError(err).WithField("session", sess.ID).Warnf("Failed to persist session on %s", reason)
	}
}

// LoadPersistedSessions pulls every stored session into memory, skipping IDs
// that are already loaded.
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range sessionIDs {
		if _, exists := m.sessions[strings.ToLower(id)]; exists {
			continue
		}

		sess, err := m.persistence.Load(id)
		if err != nil {
			logrus.WithError(err).WithField("session", id).Warn("Failed to load persisted session")
			continue
		}

		m.sessions[strings.ToLower(id)] = sess
		loaded++
	}

	if loaded > 0 {
		logrus.Infof("Loaded %d persisted sessions from storage", loaded)
	}

	return nil
}

// SaveAllSessions flushes every in-memory session to storage, used on
// shutdown. It keeps going past individual failures and reports a single
// aggregate error.
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.RUnlock()

	failures := 0
	for _, sess := range sessions {
		if err := m.persistence.Save(sess); err != nil {
			logrus.WithError(err).WithField("session", sess.ID).Warn("Failed to save session")
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("failed to save %d sessions", failures)
	}
	return nil
}
