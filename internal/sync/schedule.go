package sync

import (
	"context"
	"time"
)

// Schedule runs RunAll immediately and then every interval until ctx is
// done. After each run, report (if set) receives the outcomes.
func (s *Syncer) Schedule(ctx context.Context, interval time.Duration, report func([]Outcome)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		outcomes := s.RunAll(ctx)
		if report != nil {
			report(outcomes)
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
			if ctx.Err() == nil {
				continue
			}
		}
		s.logger.Info("Scheduler stopped")
		return nil
	}
}
