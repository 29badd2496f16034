// Package workers provides the application's background jobs: the
// registry sweep that evicts expired one-time codes and reset tokens, the
// periodic reshuffle of the recommendation order, and the keep-alive self
// ping. It defines the Job interface and a Workers aggregate that manages
// their shared lifecycle.
package workers

import "context"

// Job is a periodic background task.
//
// Start launches the task's goroutine; it returns immediately. The
// goroutine exits when ctx is cancelled or Stop is called. Stop blocks
// until the goroutine has fully exited and is safe to call on an idle job.
type Job interface {
	Start(ctx context.Context)
	Stop()
}
