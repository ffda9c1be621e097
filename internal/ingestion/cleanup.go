package ingestion

import (
	"context"
	"os"
	"time"
)

// RunCleanupSweep retries the unlink for every upload whose delete failed
// after its metadata update succeeded. Idempotent: a path that is already
// gone clears its marker.
func (s *Service) RunCleanupSweep(ctx context.Context) {
	markers, err := s.files.ListCleanupMarkers(ctx)
	if err != nil {
		s.logger.Error("cleanup sweep could not list markers", "error", err)
		return
	}

	for _, m := range markers {
		err := os.Remove(m.Path)
		if err != nil && !os.IsNotExist(err) {
			s.logger.Warn("cleanup retry failed", "path", m.Path, "error", err)
			continue
		}
		if err := s.files.ClearCleanupMarker(ctx, m.FileId); err != nil {
			s.logger.Error("failed to clear cleanup marker", "fileId", m.FileId, "error", err)
		}
	}
}

// StartCleanupSweeper runs the sweep on a fixed interval until ctx is done.
func (s *Service) StartCleanupSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.RunCleanupSweep(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
