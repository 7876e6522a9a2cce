package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/mock"
	"github.com/mintid/mintid/models"
)

// newTickingManager returns a Manager holding an established session whose
// backend counts CurrentSession calls.
func newTickingManager(t *testing.T, calls *atomic.Int64) *Manager {
	t.Helper()

	ctrl := gomock.NewController(t)
	backend := mock.NewMockBackendAdapter(ctrl)
	backend.EXPECT().
		CurrentSession(gomock.Any()).
		DoAndReturn(func(context.Context) (models.SessionResponse, error) {
			calls.Add(1)
			return models.SessionResponse{UserID: "user-manager-1"}, nil
		}).
		AnyTimes()

	m := NewManager(backend, nil, identity.NewOperators(nil), logger.Nop())
	m.state = State{
		Phase:   PhaseAuthenticated,
		Session: managerSession(),
	}

	return m
}

func TestRefreshJobTicks(t *testing.T) {
	var calls atomic.Int64
	job := NewRefreshJob(newTickingManager(t, &calls), 10*time.Millisecond)

	job.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int64(3))
}

func TestRefreshJobStopHaltsTicks(t *testing.T) {
	var calls atomic.Int64
	job := NewRefreshJob(newTickingManager(t, &calls), 10*time.Millisecond)

	job.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestRefreshJobStopBeforeStart(t *testing.T) {
	job := NewRefreshJob(NewManager(nil, nil, identity.NewOperators(nil), logger.Nop()), 0)

	assert.NotPanics(t, func() { job.Stop() })
	assert.NotPanics(t, func() { job.Stop() })
}

func TestRefreshJobDefaultInterval(t *testing.T) {
	var calls atomic.Int64
	job := NewRefreshJob(newTickingManager(t, &calls), 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// interval <= 0 defaults to 5 minutes, so nothing fires in 20ms.
	job.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	job.Stop()

	assert.Equal(t, int64(0), calls.Load())
}

func TestRefreshJobContextCancel(t *testing.T) {
	var calls atomic.Int64
	job := NewRefreshJob(newTickingManager(t, &calls), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}
