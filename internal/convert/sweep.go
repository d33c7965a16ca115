package convert

import (
	"context"
	"time"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// Sweep evicts jobs older than the configured TTL on a fixed interval,
// regardless of status, and removes their directories. It also removes
// orphaned directories under the downloads root left behind by a prior run.
// Blocks until ctx is cancelled.
func (s *Service) Sweep(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Service) sweepOnce() {
	cutoff := time.Now().Add(-s.jobTTL)

	var expired []string
	s.store.ForEach(func(job model.Job) {
		if job.CreatedAt.Before(cutoff) {
			expired = append(expired, job.ID)
		}
	})

	for _, id := range expired {
		s.evict(id)
	}

	s.removeOrphans()
}

// evict terminates the job's worker if still running, drops the registry
// entry, and deletes the job directory. A download already streaming from the
// directory keeps its open file handle; the name just disappears.
func (s *Service) evict(id string) {
	s.cancelJob(id)
	s.store.Delete(id)
	if err := platform.RemoveDirectory(s.jobDir(id)); err != nil {
		s.logger.Error("failed to remove job directory", "job", id, "error", err)
		return
	}
	s.logger.Info("job expired", "job", id)
}

// removeOrphans deletes stale directories with no matching registry entry.
// These arise from process restarts leaving directories behind.
func (s *Service) removeOrphans() {
	stale, err := platform.ListStaleSubdirectories(s.downloadsRoot, s.jobTTL)
	if err != nil {
		return
	}
	for _, name := range stale {
		if s.store.Has(name) {
			continue
		}
		if err := platform.RemoveDirectory(s.jobDir(name)); err != nil {
			s.logger.Error("failed to remove orphaned directory", "dir", name, "error", err)
			continue
		}
		s.logger.Info("orphaned directory removed", "dir", name)
	}
}
