package session

import (
	"context"
	"sync"
	"time"
)

// RefreshJob periodically revalidates the Manager's session against the
// backend so the client notices server-side expiry or deactivation between
// user actions. The job is idle until Start is called.
type RefreshJob struct {
	manager  *Manager
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a RefreshJob for manager. If interval is zero or
// negative it defaults to 5 minutes.
func NewRefreshJob(manager *Manager, interval time.Duration) *RefreshJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RefreshJob{manager: manager, interval: interval}
}

// Start stops any previously running job, then launches a background
// goroutine that calls Manager.Refresh on every interval tick. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *RefreshJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_ = j.manager.Refresh(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *RefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
