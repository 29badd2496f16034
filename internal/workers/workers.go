package workers

import "context"

// Workers manages the lifecycle of the application's background jobs as
// one unit. Nil jobs (disabled features) are skipped.
type Workers struct {
	jobs []Job
}

func NewWorkers(jobs ...Job) *Workers {
	w := &Workers{}
	for _, job := range jobs {
		if job != nil {
			w.jobs = append(w.jobs, job)
		}
	}
	return w
}

// StartAll launches every job. The jobs stop when ctx is cancelled or
// StopAll is called.
func (w *Workers) StartAll(ctx context.Context) {
	for _, job := range w.jobs {
		job.Start(ctx)
	}
}

// StopAll stops every job and blocks until all their goroutines exit.
func (w *Workers) StopAll() {
	for _, job := range w.jobs {
		job.Stop()
	}
}
