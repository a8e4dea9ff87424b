// Package sessionstore provides an in-memory auth.Store. Sessions do not
// survive a restart; swap in a shared store for multi-node deployments.
package sessionstore

import (
	"sync"

	"github.com/trezcool/darasa/core/auth"
)

type memoryStore struct {
	mutex sync.RWMutex
	table map[string]auth.Session
}

var _ auth.Store = (*memoryStore)(nil)

func NewMemoryStore() *memoryStore {
	return &memoryStore{table: make(map[string]auth.Session)}
}

func (s *memoryStore) Load(token string) (auth.Session, error) {
	s.mutex.RLock()
	sess, ok := s.table[token]
	s.mutex.RUnlock()

	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	if sess.Expired() {
		_ = s.Destroy(token)
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return sess, nil
}

func (s *memoryStore) Save(sess auth.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.table[sess.Token] = sess
	return nil
}

func (s *memoryStore) Destroy(token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.table[token]; !ok {
		return auth.ErrSessionNotFound
	}
	delete(s.table, token)
	return nil
}
