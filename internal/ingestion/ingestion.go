package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/DocChatAPI/internal/adapter/utils"
	"github.com/akolanti/DocChatAPI/internal/admission"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/internal/engine"
	"github.com/akolanti/DocChatAPI/internal/metrics"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

// ErrDisallowedType rejects uploads whose extension is not a document
// format the engine can chunk.
var ErrDisallowedType = errors.New("file type is not allowed")

// ErrUnreadableDocument rejects uploads that fail the parse preflight,
// before any engine process is spawned.
var ErrUnreadableDocument = errors.New("document could not be parsed")

// CleanupError reports the inconsistency window where the metadata update
// succeeded but the transient upload bytes could not be deleted. The record
// and the physical copy disagree until the sweep clears the marker.
type CleanupError struct {
	FileId string
	Path   string
	Err    error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("processed file %s but failed to delete upload %s: %v", e.FileId, e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {}, ".txt": {}, ".epub": {},
	".html": {}, ".md": {}, ".odp": {}, ".odt": {}, ".ods": {},
	".ppt": {}, ".pptx": {}, ".rtf": {}, ".mobi": {}, ".xlsx": {},
}

type Upload struct {
	OriginalName string
	SizeBytes    int64
	Content      io.Reader
	Tags         []string
}

// Service runs the upload pipeline: admission, durable storage under an
// opaque name, engine dispatch, count persistence, transient-byte cleanup.
type Service struct {
	files     fileModel.FileStore
	gate      *admission.Controller
	invoker   engine.Invoker
	uploadDir string
	logger    *logger_i.Logger
}

func NewService(files fileModel.FileStore, gate *admission.Controller, invoker engine.Invoker, uploadDir string) *Service {
	return &Service{
		files:     files,
		gate:      gate,
		invoker:   invoker,
		uploadDir: uploadDir,
		logger:    logger_i.NewLogger("Ingestion"),
	}
}

func (s *Service) IngestUpload(ctx context.Context, userId string, plan fileModel.SubscriptionPlan, up Upload) (fileModel.FileRecord, error) {
	log := s.logger.With("userId", userId, "file", up.OriginalName)

	ext := strings.ToLower(filepath.Ext(up.OriginalName))
	if _, ok := allowedExtensions[ext]; !ok {
		log.Warn("disallowed file type", "ext", ext)
		metrics.CaptureUploadOutcome("bad_type")
		return fileModel.FileRecord{}, ErrDisallowedType
	}

	// Quota runs against committed files only, with the incoming size as a
	// look-ahead, before anything is durably linked to the user.
	if err := s.gate.QuotaOK(ctx, userId, plan, up.SizeBytes); err != nil {
		metrics.CaptureUploadOutcome("quota")
		return fileModel.FileRecord{}, err
	}

	// Never trust the client-supplied name for the stored path.
	storedName := utils.GetNewUUID() + ext
	storedPath := filepath.Join(s.uploadDir, storedName)
	written, err := s.storeBytes(storedPath, up.Content)
	if err != nil {
		metrics.CaptureUploadOutcome("storage_error")
		return fileModel.FileRecord{}, err
	}

	if err := preflight(storedPath, ext); err != nil {
		log.Warn("preflight rejected upload", "error", err)
		os.Remove(storedPath)
		metrics.CaptureUploadOutcome("unreadable")
		return fileModel.FileRecord{}, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	record := fileModel.FileRecord{
		Id:           utils.GetNewUUID(),
		OwnerId:      userId,
		OriginalName: up.OriginalName,
		StoredName:   storedName,
		SizeBytes:    written,
		FileType:     ext,
		Tags:         up.Tags,
		CreatedTime:  time.Now(),
	}
	if err := s.files.SaveFile(ctx, record); err != nil {
		os.Remove(storedPath)
		metrics.CaptureUploadOutcome("storage_error")
		return fileModel.FileRecord{}, err
	}

	absPath, err := filepath.Abs(storedPath)
	if err != nil {
		absPath = storedPath
	}
	request := engine.IngestRequest{
		UserId: userId,
		FileInfo: engine.IngestFileInfo{
			FileId:     record.Id,
			FilePath:   absPath,
			FileFormat: record.FileType,
		},
	}
	var response engine.IngestResponse
	if err := s.invoker.Invoke(ctx, request, &response); err != nil {
		log.Error("engine ingest failed", "fileId", record.Id, "error", err)
		os.Remove(storedPath)
		metrics.CaptureUploadOutcome("engine_error")
		return fileModel.FileRecord{}, err
	}

	if err := s.files.UpdateChunksAndPages(ctx, record.Id, response.Chunks, response.Pages); err != nil {
		metrics.CaptureUploadOutcome("storage_error")
		return fileModel.FileRecord{}, err
	}
	record.TotalChunks = response.Chunks
	record.TotalPages = response.Pages

	// The upload bytes are transient: the engine has extracted everything
	// it needs. Mark before unlinking so a failed unlink is retried by the
	// sweep instead of leaking the file forever.
	marker := fileModel.CleanupMarker{FileId: record.Id, Path: storedPath, MarkedAt: time.Now()}
	if err := s.files.AddCleanupMarker(ctx, marker); err != nil {
		log.Error("failed to record cleanup marker", "fileId", record.Id, "error", err)
	}
	if err := os.Remove(storedPath); err != nil {
		log.Error("failed to delete transient upload", "path", storedPath, "error", err)
		metrics.CaptureUploadOutcome("cleanup_error")
		return record, &CleanupError{FileId: record.Id, Path: storedPath, Err: err}
	}
	if err := s.files.ClearCleanupMarker(ctx, record.Id); err != nil {
		log.Error("failed to clear cleanup marker", "fileId", record.Id, "error", err)
	}

	log.Info("file ingested", "fileId", record.Id, "chunks", record.TotalChunks, "pages", record.TotalPages)
	metrics.CaptureUploadOutcome("ok")
	return record, nil
}

func (s *Service) storeBytes(path string, content io.Reader) (int64, error) {
	if err := os.MkdirAll(s.uploadDir, 0750); err != nil {
		return 0, err
	}
	dst, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	written, err := io.Copy(dst, content)
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return written, nil
}
