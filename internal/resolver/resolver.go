package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

// ErrNoDocuments means the precedence chain produced nothing; queries must
// fail rather than run against zero documents.
var ErrNoDocuments = errors.New("no document found or selected")

// ErrKnowledgeBaseUnsupported fails the reserved knowledge-base path closed
// so callers cannot mistake "feature absent" for "no matching documents".
var ErrKnowledgeBaseUnsupported = errors.New("knowledge base resolution is not supported")

// ErrInvalidPageRange rejects caller-supplied ranges that break the
// half-open [start, end) convention.
var ErrInvalidPageRange = errors.New("invalid page range")

// Resolver turns a query's document-selection hints into a concrete list of
// (file, page-range) pairs. Precedence: explicit selection, then tag match,
// then knowledge base. First non-empty source wins.
type Resolver struct {
	files  fileModel.FileStore
	logger *logger_i.Logger
}

func NewResolver(files fileModel.FileStore) *Resolver {
	return &Resolver{
		files:  files,
		logger: logger_i.NewLogger("Resolver"),
	}
}

func (r *Resolver) Resolve(ctx context.Context, userId string, explicit []fileModel.SelectedDocument, tags []string, knowledgeBaseId string) ([]fileModel.SelectedDocument, error) {
	if len(explicit) > 0 {
		if err := validateRanges(explicit); err != nil {
			return nil, err
		}
		return explicit, nil
	}

	if len(tags) > 0 {
		docs, err := r.resolveByTags(ctx, userId, tags)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, ErrNoDocuments
		}
		return docs, nil
	}

	if knowledgeBaseId != "" {
		return nil, ErrKnowledgeBaseUnsupported
	}

	return nil, ErrNoDocuments
}

// resolveByTags keeps every non-removed file whose tag set intersects the
// requested tags, spanning each file's full page range. Files without a
// persisted page count never made it through processing and cannot span a
// valid range, so they are skipped.
func (r *Resolver) resolveByTags(ctx context.Context, userId string, tags []string) ([]fileModel.SelectedDocument, error) {
	userFiles, err := r.files.GetUserFiles(ctx, userId)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		wanted[t] = struct{}{}
	}

	var docs []fileModel.SelectedDocument
	for _, f := range userFiles {
		if f.Removed || f.TotalPages < 1 || !hasAnyTag(f.Tags, wanted) {
			continue
		}
		docs = append(docs, fileModel.SelectedDocument{
			FileId:     f.Id,
			PageRanges: []fileModel.PageRange{{Start: 0, End: f.TotalPages}},
		})
	}
	return docs, nil
}

func hasAnyTag(fileTags []string, wanted map[string]struct{}) bool {
	for _, t := range fileTags {
		if _, ok := wanted[t]; ok {
			return true
		}
	}
	return false
}

// validateRanges enforces the half-open [start, end) convention on
// caller-supplied selections.
func validateRanges(docs []fileModel.SelectedDocument) error {
	for _, doc := range docs {
		if doc.FileId == "" {
			return fmt.Errorf("%w: selected document without file id", ErrNoDocuments)
		}
		for _, pr := range doc.PageRanges {
			if pr.Start < 0 || pr.End <= pr.Start {
				return fmt.Errorf("%w: [%d, %d) for file %s", ErrInvalidPageRange, pr.Start, pr.End, doc.FileId)
			}
		}
	}
	return nil
}
