package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
)

type InMemoryChatStore struct {
	mu    sync.RWMutex
	chats map[string]chatModel.ChatHistoryRecord
}

func InitInMemoryChatStore() *InMemoryChatStore {
	return &InMemoryChatStore{
		chats: make(map[string]chatModel.ChatHistoryRecord),
	}
}

func (s *InMemoryChatStore) SaveChat(ctx context.Context, chat chatModel.ChatHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chat.Id] = chat
	return nil
}

func (s *InMemoryChatStore) GetChat(ctx context.Context, chatId string) (chatModel.ChatHistoryRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chats[chatId]
	return c, ok
}

func (s *InMemoryChatStore) GetUserChats(ctx context.Context, userId string) ([]chatModel.ChatHistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []chatModel.ChatHistoryRecord
	for _, c := range s.chats {
		if c.UserId == userId {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryChatStore) SetFeatured(ctx context.Context, chatId string, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[chatId]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatId, chatModel.ErrChatNotFound)
	}
	c.Featured = featured
	s.chats[chatId] = c
	return nil
}
