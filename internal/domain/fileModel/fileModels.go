package fileModel

import (
	"context"
	"time"
)

type SubscriptionPlan string

const (
	PlanBasic    SubscriptionPlan = "Basic"
	PlanStandard SubscriptionPlan = "Standard"
	PlanPremium  SubscriptionPlan = "Premium"
)

// FileRecord is the durable bookkeeping entry for one uploaded document.
// StoredName is an opaque server-generated name; the client-supplied name is
// kept only for display. Removed records are soft-deleted and excluded from
// quota accounting and resolution.
type FileRecord struct {
	Id           string    `json:"id" db:"id"`
	OwnerId      string    `json:"owner_id" db:"owner_id"`
	OriginalName string    `json:"original_name" db:"original_name"`
	StoredName   string    `json:"stored_name" db:"stored_name"`
	SizeBytes    int64     `json:"size_bytes" db:"size_bytes"`
	FileType     string    `json:"file_type" db:"file_type"`
	Tags         []string  `json:"tags" db:"-"`
	TotalPages   int       `json:"total_pages" db:"total_pages"`
	TotalChunks  int       `json:"total_chunks" db:"total_chunks"`
	Removed      bool      `json:"removed" db:"removed"`
	CreatedTime  time.Time `json:"created_time" db:"created_time"`
}

// PageRange is half-open: Start inclusive, End exclusive.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SelectedDocument scopes one file within a query. Transient, never stored.
type SelectedDocument struct {
	FileId     string      `json:"fileId"`
	PageRanges []PageRange `json:"pageRanges"`
}

// CleanupMarker flags an upload whose bytes could not be unlinked after the
// metadata update succeeded. A sweep retries the unlink until the marker
// clears.
type CleanupMarker struct {
	FileId   string    `json:"file_id" db:"file_id"`
	Path     string    `json:"path" db:"path"`
	MarkedAt time.Time `json:"marked_at" db:"marked_at"`
}

type FileStore interface {
	SaveFile(ctx context.Context, file FileRecord) error
	GetFile(ctx context.Context, fileId string) (FileRecord, bool)
	GetUserFiles(ctx context.Context, ownerId string) ([]FileRecord, error)
	UpdateChunksAndPages(ctx context.Context, fileId string, chunks int, pages int) error
	UpdateTags(ctx context.Context, fileId string, tags []string) error
	RemoveFile(ctx context.Context, fileId string) error

	AddCleanupMarker(ctx context.Context, marker CleanupMarker) error
	ListCleanupMarkers(ctx context.Context) ([]CleanupMarker, error)
	ClearCleanupMarker(ctx context.Context, fileId string) error
}
