package server

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestShutDownHandler_SignalBeforeServerStarts(t *testing.T) {
	gracefulShutdown := make(chan os.Signal, 1)
	stopExecution := make(chan bool, 1)
	_, cancel := context.WithCancel(context.Background())

	gracefulShutdown <- syscall.SIGTERM

	done := make(chan struct{})
	go func() {
		ShutDownHandler(ShutdownParams{
			GracefulShutdown: gracefulShutdown,
			StopExecution:    stopExecution,
			CloseServices:    cancel,
		})
		close(done)
	}()

	select {
	case <-stopExecution:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown with no server running should still release the main goroutine")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ShutDownHandler should return")
	}
}
