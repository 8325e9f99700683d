package workers

import (
	"context"
	"time"
)

// Workers runs a fixed set of workers together.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws. Nil entries are skipped, so optional workers can be
// passed unconditionally.
func NewWorkers(ws ...Worker) *Workers {
	out := make([]Worker, 0, len(ws))
	for _, w := range ws {
		if w != nil {
			out = append(out, w)
		}
	}
	return &Workers{workers: out}
}

// Run starts every worker in order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// periodic is the part of service.ClientSyncJob a worker drives.
type periodic interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

type syncJobWorker struct {
	job      periodic
	interval time.Duration
}

// NewSyncJobWorker adapts a sync job to [Worker], starting it with interval.
func NewSyncJobWorker(job periodic, interval time.Duration) Worker {
	return &syncJobWorker{job: job, interval: interval}
}

func (s *syncJobWorker) Run(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *syncJobWorker) Stop() {
	s.job.Stop()
}
