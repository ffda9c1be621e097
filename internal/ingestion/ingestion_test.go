package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/DocChatAPI/internal/admission"
	"github.com/akolanti/DocChatAPI/internal/data/store"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/internal/engine"
)

// MockInvoker stands in for the engine subprocess bridge.
type MockInvoker struct {
	OnInvoke func(ctx context.Context, request any, response any) error
	Calls    int
}

func (m *MockInvoker) Invoke(ctx context.Context, request any, response any) error {
	m.Calls++
	if m.OnInvoke != nil {
		return m.OnInvoke(ctx, request, response)
	}
	return nil
}

func newTestService(t *testing.T, invoker engine.Invoker) (*Service, *store.InMemoryFileStore) {
	t.Helper()
	files := store.InitInMemoryFileStore()
	gate := admission.NewController(admission.InitInMemoryWindowStore(), files)
	return NewService(files, gate, invoker, t.TempDir()), files
}

func mdUpload(name string, body string, tags ...string) Upload {
	return Upload{
		OriginalName: name,
		SizeBytes:    int64(len(body)),
		Content:      strings.NewReader(body),
		Tags:         tags,
	}
}

func TestIngestUpload_Success(t *testing.T) {
	var gotRequest engine.IngestRequest
	invoker := &MockInvoker{
		OnInvoke: func(ctx context.Context, request any, response any) error {
			gotRequest = request.(engine.IngestRequest)
			*(response.(*engine.IngestResponse)) = engine.IngestResponse{Chunks: 12, Pages: 3}
			return nil
		},
	}
	svc, files := newTestService(t, invoker)

	record, err := svc.IngestUpload(context.Background(), "user-1", fileModel.PlanBasic,
		mdUpload("notes.md", "# hello\nsome text", "work"))
	if err != nil {
		t.Fatalf("IngestUpload failed: %v", err)
	}

	if record.TotalChunks != 12 || record.TotalPages != 3 {
		t.Errorf("counts got chunks=%d pages=%d, want 12/3", record.TotalChunks, record.TotalPages)
	}
	if record.OriginalName != "notes.md" || record.FileType != ".md" {
		t.Errorf("record metadata wrong: %+v", record)
	}
	if record.StoredName == "notes.md" || !strings.HasSuffix(record.StoredName, ".md") {
		t.Errorf("stored name must be opaque but keep the extension, got %s", record.StoredName)
	}

	// the engine saw the stored copy, not the client name
	if gotRequest.UserId != "user-1" || gotRequest.FileInfo.FileId != record.Id {
		t.Errorf("engine request wrong: %+v", gotRequest)
	}
	if !filepath.IsAbs(gotRequest.FileInfo.FilePath) {
		t.Errorf("engine should get an absolute path, got %s", gotRequest.FileInfo.FilePath)
	}
	if gotRequest.FileInfo.FileFormat != ".md" {
		t.Errorf("file format got %s, want .md", gotRequest.FileInfo.FileFormat)
	}

	// transient bytes are gone and the counts were persisted
	if _, err := os.Stat(gotRequest.FileInfo.FilePath); !os.IsNotExist(err) {
		t.Error("transient upload should be deleted after processing")
	}
	saved, found := files.GetFile(context.Background(), record.Id)
	if !found || saved.TotalChunks != 12 || saved.TotalPages != 3 {
		t.Errorf("persisted record wrong: %+v found=%v", saved, found)
	}
	if markers, _ := files.ListCleanupMarkers(context.Background()); len(markers) != 0 {
		t.Errorf("no cleanup markers should remain, got %d", len(markers))
	}
}

func TestIngestUpload_DisallowedType(t *testing.T) {
	invoker := &MockInvoker{}
	svc, files := newTestService(t, invoker)

	_, err := svc.IngestUpload(context.Background(), "user-1", fileModel.PlanBasic,
		mdUpload("payload.exe", "MZ"))
	if !errors.Is(err, ErrDisallowedType) {
		t.Fatalf("want ErrDisallowedType, got %v", err)
	}
	if invoker.Calls != 0 {
		t.Error("engine must not run for a rejected type")
	}
	if all, _ := files.GetUserFiles(context.Background(), "user-1"); len(all) != 0 {
		t.Error("no record should be saved for a rejected type")
	}
}

func TestIngestUpload_QuotaDeniedBeforePersisting(t *testing.T) {
	const mb = 1000 * 1000
	invoker := &MockInvoker{}
	svc, files := newTestService(t, invoker)

	files.SaveFile(context.Background(), fileModel.FileRecord{
		Id: "existing", OwnerId: "user-1", SizeBytes: 95 * mb,
	})

	up := mdUpload("big.md", "x")
	up.SizeBytes = 6 * mb
	_, err := svc.IngestUpload(context.Background(), "user-1", fileModel.PlanBasic, up)
	if !errors.Is(err, admission.ErrQuotaExceeded) {
		t.Fatalf("want ErrQuotaExceeded, got %v", err)
	}
	if invoker.Calls != 0 {
		t.Error("engine must not run for a quota-denied upload")
	}
	if all, _ := files.GetUserFiles(context.Background(), "user-1"); len(all) != 1 {
		t.Error("the denied upload must not be recorded")
	}
}

func TestIngestUpload_PreflightRejectsEmptyFile(t *testing.T) {
	invoker := &MockInvoker{}
	svc, _ := newTestService(t, invoker)

	_, err := svc.IngestUpload(context.Background(), "user-1", fileModel.PlanBasic,
		mdUpload("empty.md", ""))
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Fatalf("want ErrUnreadableDocument, got %v", err)
	}
	if invoker.Calls != 0 {
		t.Error("engine must not run for an unreadable upload")
	}
}

func TestIngestUpload_EngineFailureLeavesNoCounts(t *testing.T) {
	engineErr := &engine.ProcessError{ExitCode: 3}
	invoker := &MockInvoker{
		OnInvoke: func(ctx context.Context, request any, response any) error {
			return engineErr
		},
	}
	svc, files := newTestService(t, invoker)

	_, err := svc.IngestUpload(context.Background(), "user-1", fileModel.PlanBasic,
		mdUpload("doc.md", "content"))

	var procErr *engine.ProcessError
	if !errors.As(err, &procErr) || procErr.ExitCode != 3 {
		t.Fatalf("engine failure should propagate, got %v", err)
	}

	all, _ := files.GetUserFiles(context.Background(), "user-1")
	for _, f := range all {
		if f.TotalChunks != 0 || f.TotalPages != 0 {
			t.Errorf("counts must stay zero after an engine failure: %+v", f)
		}
	}
}

func TestRunCleanupSweep_ClearsStaleMarkers(t *testing.T) {
	svc, files := newTestService(t, &MockInvoker{})
	ctx := context.Background()

	// path already gone: the sweep treats the unlink as done
	files.AddCleanupMarker(ctx, fileModel.CleanupMarker{FileId: "f-1", Path: filepath.Join(t.TempDir(), "gone.md")})

	// path still present: the sweep deletes it
	dir := t.TempDir()
	stuck := filepath.Join(dir, "stuck.md")
	if err := os.WriteFile(stuck, []byte("leftover"), 0600); err != nil {
		t.Fatal(err)
	}
	files.AddCleanupMarker(ctx, fileModel.CleanupMarker{FileId: "f-2", Path: stuck})

	svc.RunCleanupSweep(ctx)

	if markers, _ := files.ListCleanupMarkers(ctx); len(markers) != 0 {
		t.Errorf("all markers should be cleared, %d remain", len(markers))
	}
	if _, err := os.Stat(stuck); !os.IsNotExist(err) {
		t.Error("sweep should have deleted the leftover upload")
	}
}

func TestEvaluateFiles(t *testing.T) {
	svc, files := newTestService(t, &MockInvoker{})
	ctx := context.Background()

	files.SaveFile(ctx, fileModel.FileRecord{Id: "f-1", OwnerId: "user-1", OriginalName: "report.pdf"})
	files.SaveFile(ctx, fileModel.FileRecord{Id: "f-2", OwnerId: "user-1", OriginalName: "old.pdf", Removed: true})
	files.SaveFile(ctx, fileModel.FileRecord{Id: "f-3", OwnerId: "user-2", OriginalName: "theirs.pdf"})

	evaluations, err := svc.EvaluateFiles(ctx, "user-1", []string{"report.pdf", "old.pdf", "theirs.pdf", "new.pdf"})
	if err != nil {
		t.Fatalf("EvaluateFiles failed: %v", err)
	}

	want := map[string]bool{
		"report.pdf": true,  //already stored
		"old.pdf":    false, //soft-deleted, name is free again
		"theirs.pdf": false, //another user's file does not collide
		"new.pdf":    false,
	}
	if len(evaluations) != len(want) {
		t.Fatalf("got %d evaluations, want %d", len(evaluations), len(want))
	}
	for _, e := range evaluations {
		if e.AlreadyExists != want[e.Filename] {
			t.Errorf("%s: alreadyExists got %v, want %v", e.Filename, e.AlreadyExists, want[e.Filename])
		}
	}
}

func TestFileOwnership(t *testing.T) {
	svc, files := newTestService(t, &MockInvoker{})
	ctx := context.Background()

	files.SaveFile(ctx, fileModel.FileRecord{Id: "f-1", OwnerId: "user-1"})

	if err := svc.DeleteFile(ctx, "user-2", "f-1"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("deleting another user's file should fail as not found, got %v", err)
	}
	if err := svc.UpdateFileTags(ctx, "user-2", "f-1", []string{"x"}); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("tagging another user's file should fail as not found, got %v", err)
	}

	if err := svc.DeleteFile(ctx, "user-1", "f-1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	// soft-deleted files behave as gone
	if err := svc.DeleteFile(ctx, "user-1", "f-1"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("double delete should report not found, got %v", err)
	}
}
