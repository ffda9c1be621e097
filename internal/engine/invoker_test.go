package engine

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

// The subprocess tests drive a real child through /bin/sh so the full
// spawn, stream, wait, parse path is exercised.
func shEngine(t *testing.T, script string, timeout time.Duration) *Engine {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests shell out via sh")
	}
	return NewEngine("sh", []string{"-c", script}, "test", timeout, NewSlots(2))
}

func TestInvoke_RoundTrip(t *testing.T) {
	// echo stdin back: the response is the request
	e := shEngine(t, "cat", 10*time.Second)

	request := IngestRequest{
		UserId: "user-1",
		FileInfo: IngestFileInfo{
			FileId:     "f-1",
			FilePath:   "/tmp/f-1.pdf",
			FileFormat: ".pdf",
		},
	}
	var response IngestRequest
	if err := e.Invoke(context.Background(), request, &response); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if response != request {
		t.Errorf("round trip mismatch: got %+v, want %+v", response, request)
	}
}

func TestInvoke_ParsesResponseAfterExit(t *testing.T) {
	e := shEngine(t, `cat >/dev/null; echo '{"chunks": 42, "pages": 7}'`, 10*time.Second)

	var response IngestResponse
	if err := e.Invoke(context.Background(), IngestRequest{UserId: "u"}, &response); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if response.Chunks != 42 || response.Pages != 7 {
		t.Errorf("got %+v, want chunks=42 pages=7", response)
	}
}

func TestInvoke_StderrIsNotParsed(t *testing.T) {
	e := shEngine(t, `cat >/dev/null; echo 'progress 50%' >&2; echo '{"chunks": 1, "pages": 1}'`, 10*time.Second)

	var response IngestResponse
	if err := e.Invoke(context.Background(), IngestRequest{UserId: "u"}, &response); err != nil {
		t.Fatalf("diagnostic stderr must not fail the call: %v", err)
	}
	if response.Chunks != 1 {
		t.Errorf("got %+v, want chunks=1", response)
	}
}

func TestInvoke_NonzeroExit(t *testing.T) {
	e := shEngine(t, "cat >/dev/null; exit 2", 10*time.Second)

	var response IngestResponse
	err := e.Invoke(context.Background(), IngestRequest{UserId: "u"}, &response)

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("want ProcessError, got %v", err)
	}
	if procErr.ExitCode != 2 {
		t.Errorf("exit code got %d, want 2", procErr.ExitCode)
	}
}

func TestInvoke_MalformedOutput(t *testing.T) {
	e := shEngine(t, `cat >/dev/null; echo 'not json'`, 10*time.Second)

	var response IngestResponse
	err := e.Invoke(context.Background(), IngestRequest{UserId: "u"}, &response)
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("want ErrMalformedOutput, got %v", err)
	}
}

func TestInvoke_Timeout(t *testing.T) {
	e := shEngine(t, "sleep 5", 100*time.Millisecond)

	var response IngestResponse
	err := e.Invoke(context.Background(), IngestRequest{UserId: "u"}, &response)
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("want ErrTimedOut, got %v", err)
	}
}

func TestInvoke_CanceledBeforeSlot(t *testing.T) {
	slots := NewSlots(1)
	slots <- struct{}{} // pool exhausted

	e := NewEngine("sh", []string{"-c", "cat"}, "test", time.Second, slots)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var response IngestResponse
	err := e.Invoke(ctx, IngestRequest{UserId: "u"}, &response)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled while waiting for a slot, got %v", err)
	}
}

func TestInvoke_SlotsBoundConcurrency(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("tests shell out via sh")
	}
	slots := NewSlots(1)
	e := NewEngine("sh", []string{"-c", "cat >/dev/null; sleep 0.2; echo '{}'"}, "test", 10*time.Second, slots)

	start := time.Now()
	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			var out map[string]any
			done <- e.Invoke(context.Background(), IngestRequest{UserId: "u"}, &out)
		}()
	}
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}

	// serialized calls take at least two sleeps
	if elapsed := time.Since(start); elapsed < 400*time.Millisecond {
		t.Errorf("calls overlapped despite a single slot, elapsed %v", elapsed)
	}
}
