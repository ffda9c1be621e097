package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/akolanti/DocChatAPI/internal/metrics"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

// ErrTimedOut marks an invocation whose deadline expired; the child was
// killed before producing a complete response.
var ErrTimedOut = errors.New("engine call timed out")

// ErrMalformedOutput marks a clean exit whose stdout was not the expected
// JSON value.
var ErrMalformedOutput = errors.New("engine output is not valid JSON")

// ProcessError carries the child's nonzero exit code.
type ProcessError struct {
	ExitCode int
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("engine process exited with code %d", e.ExitCode)
}

// Invoker is the one-shot request/response bridge to an external engine:
// serialize the request, stream it to a fresh child process, accumulate
// stdout, parse the response after exit. Single attempt, no retry.
type Invoker interface {
	Invoke(ctx context.Context, request any, response any) error
}

// Slots bounds concurrent child processes across every engine sharing it.
type Slots chan struct{}

func NewSlots(n int) Slots {
	return make(Slots, n)
}

type Engine struct {
	command string
	args    []string
	shape   string
	timeout time.Duration
	slots   Slots
	logger  *logger_i.Logger
}

func NewEngine(command string, args []string, shape string, timeout time.Duration, slots Slots) *Engine {
	return &Engine{
		command: command,
		args:    args,
		shape:   shape,
		timeout: timeout,
		slots:   slots,
		logger:  logger_i.NewLogger("Engine " + shape),
	}
}

func (e *Engine) Invoke(ctx context.Context, request any, response any) error {
	select {
	case e.slots <- struct{}{}:
		defer func() { <-e.slots }()
	case <-ctx.Done():
		return ctx.Err()
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshal engine request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	metrics.IncrementLiveEngineProcesses()
	defer metrics.DecrementLiveEngineProcesses()

	cmd := exec.CommandContext(callCtx, e.command, e.args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// Diagnostic text on stderr is logged, never parsed.
	if diag := strings.TrimSpace(stderr.String()); diag != "" {
		e.logger.Warn("engine stderr", "output", diag)
	}

	if runErr != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			e.logger.Error("engine call timed out", "timeout", e.timeout)
			metrics.CaptureEngineCall(e.shape, "timeout", time.Since(start))
			return ErrTimedOut
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			e.logger.Error("engine exited with error", "code", exitErr.ExitCode())
			metrics.CaptureEngineCall(e.shape, "exit_error", time.Since(start))
			return &ProcessError{ExitCode: exitErr.ExitCode()}
		}
		metrics.CaptureEngineCall(e.shape, "spawn_error", time.Since(start))
		return fmt.Errorf("start engine process: %w", runErr)
	}

	if err := json.Unmarshal(stdout.Bytes(), response); err != nil {
		e.logger.Error("engine output parse failed", "error", err)
		metrics.CaptureEngineCall(e.shape, "parse_error", time.Since(start))
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	metrics.CaptureEngineCall(e.shape, "ok", time.Since(start))
	return nil
}
