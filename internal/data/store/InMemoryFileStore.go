package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem Store")

// InMemoryFileStore keeps file records and cleanup markers in process
// memory. Used when no database is configured, and by tests.
type InMemoryFileStore struct {
	mu       sync.RWMutex
	files    map[string]fileModel.FileRecord
	cleanups map[string]fileModel.CleanupMarker
}

func InitInMemoryFileStore() *InMemoryFileStore {
	return &InMemoryFileStore{
		files:    make(map[string]fileModel.FileRecord),
		cleanups: make(map[string]fileModel.CleanupMarker),
	}
}

func (s *InMemoryFileStore) SaveFile(ctx context.Context, file fileModel.FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[file.Id] = file
	inMemLogger.Debug("saved file record", "fileId", file.Id)
	return nil
}

func (s *InMemoryFileStore) GetFile(ctx context.Context, fileId string) (fileModel.FileRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[fileId]
	return f, ok
}

func (s *InMemoryFileStore) GetUserFiles(ctx context.Context, ownerId string) ([]fileModel.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []fileModel.FileRecord
	for _, f := range s.files {
		if f.OwnerId == ownerId && !f.Removed {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *InMemoryFileStore) UpdateChunksAndPages(ctx context.Context, fileId string, chunks int, pages int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[fileId]
	if !ok || f.Removed {
		return fmt.Errorf("file %s not found", fileId)
	}
	f.TotalChunks = chunks
	f.TotalPages = pages
	s.files[fileId] = f
	return nil
}

func (s *InMemoryFileStore) UpdateTags(ctx context.Context, fileId string, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[fileId]
	if !ok || f.Removed {
		return fmt.Errorf("file %s not found", fileId)
	}
	f.Tags = tags
	s.files[fileId] = f
	return nil
}

func (s *InMemoryFileStore) RemoveFile(ctx context.Context, fileId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[fileId]
	if !ok || f.Removed {
		return fmt.Errorf("file %s not found", fileId)
	}
	f.Removed = true
	s.files[fileId] = f
	return nil
}

func (s *InMemoryFileStore) AddCleanupMarker(ctx context.Context, marker fileModel.CleanupMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups[marker.FileId] = marker
	return nil
}

func (s *InMemoryFileStore) ListCleanupMarkers(ctx context.Context) ([]fileModel.CleanupMarker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []fileModel.CleanupMarker
	for _, m := range s.cleanups {
		out = append(out, m)
	}
	return out, nil
}

func (s *InMemoryFileStore) ClearCleanupMarker(ctx context.Context, fileId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cleanups, fileId)
	return nil
}
