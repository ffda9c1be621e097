package handlers

import (
	"strings"
	"sync"

	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
	"github.com/akolanti/DocChatAPI/internal/ingestion"
	"github.com/akolanti/DocChatAPI/internal/query"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var (
	ingestService *ingestion.Service
	queryService  *query.Service
	modelStore    chatModel.ModelStore
	once          sync.Once
	logH          *logger_i.Logger
)

func InitHandlers(ingest *ingestion.Service, queries *query.Service, models chatModel.ModelStore) {
	once.Do(func() {
		ingestService = ingest
		queryService = queries
		modelStore = models

		logH = logger_i.NewLogger("Handlers")
		logH.Info("Starting request handlers")
	})
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
