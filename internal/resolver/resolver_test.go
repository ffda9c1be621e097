package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
)

type stubFiles struct {
	files []fileModel.FileRecord
	err   error
}

func (s *stubFiles) SaveFile(ctx context.Context, f fileModel.FileRecord) error { return nil }
func (s *stubFiles) GetFile(ctx context.Context, id string) (fileModel.FileRecord, bool) {
	return fileModel.FileRecord{}, false
}
func (s *stubFiles) GetUserFiles(ctx context.Context, ownerId string) ([]fileModel.FileRecord, error) {
	return s.files, s.err
}
func (s *stubFiles) UpdateChunksAndPages(ctx context.Context, id string, chunks, pages int) error {
	return nil
}
func (s *stubFiles) UpdateTags(ctx context.Context, id string, tags []string) error { return nil }
func (s *stubFiles) RemoveFile(ctx context.Context, id string) error                { return nil }
func (s *stubFiles) AddCleanupMarker(ctx context.Context, marker fileModel.CleanupMarker) error {
	return nil
}
func (s *stubFiles) ListCleanupMarkers(ctx context.Context) ([]fileModel.CleanupMarker, error) {
	return nil, nil
}
func (s *stubFiles) ClearCleanupMarker(ctx context.Context, id string) error { return nil }

func TestResolve_Precedence(t *testing.T) {
	userFiles := []fileModel.FileRecord{
		{Id: "f-tagged", Tags: []string{"contracts"}, TotalPages: 12},
	}
	explicit := []fileModel.SelectedDocument{
		{FileId: "f-explicit", PageRanges: []fileModel.PageRange{{Start: 0, End: 3}}},
	}

	tests := []struct {
		name        string
		explicit    []fileModel.SelectedDocument
		tags        []string
		kbId        string
		wantFileIds []string
		wantErr     error
	}{
		{
			name:        "explicit wins over tags and kb",
			explicit:    explicit,
			tags:        []string{"contracts"},
			kbId:        "kb-1",
			wantFileIds: []string{"f-explicit"},
		},
		{
			name:        "tags win over kb",
			tags:        []string{"contracts"},
			kbId:        "kb-1",
			wantFileIds: []string{"f-tagged"},
		},
		{
			name:    "kb alone fails closed",
			kbId:    "kb-1",
			wantErr: ErrKnowledgeBaseUnsupported,
		},
		{
			name:    "nothing selected",
			wantErr: ErrNoDocuments,
		},
		{
			name:    "tags matching nothing",
			tags:    []string{"no-such-tag"},
			wantErr: ErrNoDocuments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&stubFiles{files: userFiles})

			docs, err := r.Resolve(context.Background(), "user-1", tt.explicit, tt.tags, tt.kbId)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve error got %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			if len(docs) != len(tt.wantFileIds) {
				t.Fatalf("got %d docs, want %d", len(docs), len(tt.wantFileIds))
			}
			for i, id := range tt.wantFileIds {
				if docs[i].FileId != id {
					t.Errorf("doc %d got file %s, want %s", i, docs[i].FileId, id)
				}
			}
		})
	}
}

func TestResolve_TagMatchSpansFullRange(t *testing.T) {
	r := NewResolver(&stubFiles{files: []fileModel.FileRecord{
		{Id: "f-1", Tags: []string{"a", "b"}, TotalPages: 40},
		{Id: "f-2", Tags: []string{"c"}, TotalPages: 7},
		{Id: "f-removed", Tags: []string{"a"}, TotalPages: 9, Removed: true},
	}})

	docs, err := r.Resolve(context.Background(), "user-1", nil, []string{"a", "c"}, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2 (removed files excluded)", len(docs))
	}
	for _, doc := range docs {
		if len(doc.PageRanges) != 1 || doc.PageRanges[0].Start != 0 {
			t.Errorf("tag match for %s should span from page 0, got %+v", doc.FileId, doc.PageRanges)
		}
	}
	if docs[0].PageRanges[0].End != 40 || docs[1].PageRanges[0].End != 7 {
		t.Errorf("tag match should span each file's full page count, got %+v and %+v",
			docs[0].PageRanges, docs[1].PageRanges)
	}
}

func TestResolve_TagMatchSkipsUnprocessedFiles(t *testing.T) {
	// a stored record whose engine run failed keeps zero counts; it cannot
	// span a valid half-open range and must not reach the engine
	r := NewResolver(&stubFiles{files: []fileModel.FileRecord{
		{Id: "f-unprocessed", Tags: []string{"work"}, TotalPages: 0},
		{Id: "f-processed", Tags: []string{"work"}, TotalPages: 5},
	}})

	docs, err := r.Resolve(context.Background(), "user-1", nil, []string{"work"}, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(docs) != 1 || docs[0].FileId != "f-processed" {
		t.Fatalf("unprocessed file should be skipped, got %+v", docs)
	}

	// every resolved range must survive the resolver's own validation
	if _, err := r.Resolve(context.Background(), "user-1", docs, nil, ""); err != nil {
		t.Errorf("tag-resolved docs should be valid as an explicit selection: %v", err)
	}

	// only unprocessed matches left: fail closed, not a degenerate range
	r = NewResolver(&stubFiles{files: []fileModel.FileRecord{
		{Id: "f-unprocessed", Tags: []string{"work"}, TotalPages: 0},
	}})
	if _, err := r.Resolve(context.Background(), "user-1", nil, []string{"work"}, ""); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("want ErrNoDocuments when only unprocessed files match, got %v", err)
	}
}

func TestResolve_ExplicitRangeValidation(t *testing.T) {
	r := NewResolver(&stubFiles{})

	tests := []struct {
		name    string
		docs    []fileModel.SelectedDocument
		wantErr error
	}{
		{
			name: "valid half-open range",
			docs: []fileModel.SelectedDocument{
				{FileId: "f-1", PageRanges: []fileModel.PageRange{{Start: 0, End: 1}}},
			},
		},
		{
			name: "empty range rejected",
			docs: []fileModel.SelectedDocument{
				{FileId: "f-1", PageRanges: []fileModel.PageRange{{Start: 3, End: 3}}},
			},
			wantErr: ErrInvalidPageRange,
		},
		{
			name: "inverted range rejected",
			docs: []fileModel.SelectedDocument{
				{FileId: "f-1", PageRanges: []fileModel.PageRange{{Start: 5, End: 2}}},
			},
			wantErr: ErrInvalidPageRange,
		},
		{
			name: "negative start rejected",
			docs: []fileModel.SelectedDocument{
				{FileId: "f-1", PageRanges: []fileModel.PageRange{{Start: -1, End: 2}}},
			},
			wantErr: ErrInvalidPageRange,
		},
		{
			name: "missing file id rejected",
			docs: []fileModel.SelectedDocument{
				{PageRanges: []fileModel.PageRange{{Start: 0, End: 2}}},
			},
			wantErr: ErrNoDocuments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), "user-1", tt.docs, nil, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve error got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolve_StoreError(t *testing.T) {
	storeErr := errors.New("db down")
	r := NewResolver(&stubFiles{err: storeErr})

	if _, err := r.Resolve(context.Background(), "user-1", nil, []string{"a"}, ""); !errors.Is(err, storeErr) {
		t.Errorf("store error should propagate, got %v", err)
	}
}
