// Package workers provides abstractions for managing and running
// background jobs in the client application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple jobs in a unified way.
package workers

import "context"

// Worker is the interface implemented by any background job.
//
// Start launches the job's background processing; implementations are
// expected to spawn goroutines internally and return. Stop blocks until the
// job has fully wound down and must be safe to call when the job is not
// running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
