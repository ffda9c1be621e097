package store

import (
	"context"
	"sync"

	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
)

type InMemoryModelStore struct {
	mu     sync.RWMutex
	models map[string]chatModel.ModelRecord
}

func InitInMemoryModelStore(seed []chatModel.ModelRecord) *InMemoryModelStore {
	s := &InMemoryModelStore{
		models: make(map[string]chatModel.ModelRecord),
	}
	for _, m := range seed {
		s.models[m.Name] = m
	}
	return s
}

func (s *InMemoryModelStore) GetModelApiKey(ctx context.Context, modelName string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[modelName]
	if !ok || !m.Enabled {
		return "", chatModel.ErrModelNotFound
	}
	return m.ApiKey, nil
}

func (s *InMemoryModelStore) UpdateModel(ctx context.Context, model chatModel.ModelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[model.Name] = model
	return nil
}
