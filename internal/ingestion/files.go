package ingestion

import (
	"context"
	"errors"

	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
)

var ErrFileNotFound = errors.New("file not found")

func (s *Service) ListFiles(ctx context.Context, userId string) ([]fileModel.FileRecord, error) {
	return s.files.GetUserFiles(ctx, userId)
}

// DeleteFile soft-deletes: the record is flagged removed and drops out of
// quota accounting and resolution, but is never physically purged here.
func (s *Service) DeleteFile(ctx context.Context, userId string, fileId string) error {
	if err := s.ownedBy(ctx, userId, fileId); err != nil {
		return err
	}
	return s.files.RemoveFile(ctx, fileId)
}

func (s *Service) UpdateFileTags(ctx context.Context, userId string, fileId string, tags []string) error {
	if err := s.ownedBy(ctx, userId, fileId); err != nil {
		return err
	}
	return s.files.UpdateTags(ctx, fileId, tags)
}

// FileExistence reports whether the caller already stores a file under a
// candidate name.
type FileExistence struct {
	Filename      string
	AlreadyExists bool
}

// EvaluateFiles lets clients probe candidate names before uploading, so a
// duplicate can be caught without spending the upload.
func (s *Service) EvaluateFiles(ctx context.Context, userId string, names []string) ([]FileExistence, error) {
	existing, err := s.files.GetUserFiles(ctx, userId)
	if err != nil {
		return nil, err
	}

	have := make(map[string]struct{}, len(existing))
	for _, f := range existing {
		if !f.Removed {
			have[f.OriginalName] = struct{}{}
		}
	}

	out := make([]FileExistence, 0, len(names))
	for _, name := range names {
		_, exists := have[name]
		out = append(out, FileExistence{Filename: name, AlreadyExists: exists})
	}
	return out, nil
}

func (s *Service) ownedBy(ctx context.Context, userId string, fileId string) error {
	f, found := s.files.GetFile(ctx, fileId)
	if !found || f.Removed || f.OwnerId != userId {
		return ErrFileNotFound
	}
	return nil
}
