package memory

import (
	"sync"

	"quizpulse/internal/domain"
)

// MetaStore is the in-memory implementation of score.MetaStore, the
// client-side stand-in for the browser's local storage.
type MetaStore struct {
	mu   sync.RWMutex
	meta map[int]domain.QuestionMeta
}

func NewMetaStore() *MetaStore {
	return &MetaStore{meta: make(map[int]domain.QuestionMeta)}
}

func (s *MetaStore) Set(questionID int, meta domain.QuestionMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[questionID] = meta
	return nil
}

func (s *MetaStore) Get(questionID int) (domain.QuestionMeta, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.meta[questionID]
	return meta, ok, nil
}

// Len reports how many questions have cached meta.
func (s *MetaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meta)
}
