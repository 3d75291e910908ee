package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Henry-Tercero-MH/Generador-Facturas/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

type namedJob struct {
	name string
	run  Job
}

// Worker runs receipt side effects (emails, audit rows, cleanups) off the request path
type Worker struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup // pool goroutines
	schedWg   sync.WaitGroup // scheduled jobs
	queue     chan namedJob
	closeMu   sync.RWMutex
	closed    bool
	workers   int
	stats     WorkerStats
	statsMu   sync.RWMutex
	queueSize int
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
	Workers       int   `json:"workers"`
}

// NewWorker creates a worker with numWorkers concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:       ctx,
		cancel:    cancel,
		queueSize: 100,
		workers:   numWorkers,
	}
	w.queue = make(chan namedJob, w.queueSize)

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the pool. A full queue runs the job on the caller's goroutine;
// a stopped worker drops it and reports false.
func (w *Worker) Enqueue(name string, job Job) bool {
	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		logger.Warn("job dropped, worker stopped", "job", name)
		return false
	}

	select {
	case w.queue <- namedJob{name: name, run: job}:
	default:
		logger.Warn("job queue full, running synchronously", "job", name)
		w.run(-1, namedJob{name: name, run: job})
	}
	return true
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for job := range w.queue {
		w.run(workerID, job)
	}
}

func (w *Worker) run(workerID int, job namedJob) {
	w.trackJobStart()
	defer w.trackJobEnd()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panic", "job", job.name, "worker", workerID, "panic", fmt.Sprint(r))
			w.trackJobFailure()
		}
	}()

	start := time.Now()
	if err := job.run(w.ctx); err != nil {
		logger.Error("job failed", "job", job.name, "worker", workerID, "error", err)
		w.trackJobFailure()
		return
	}
	logger.Debug("job completed", "job", job.name, "worker", workerID, "duration", time.Since(start))
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedWg.Add(1)
	go func() {
		defer w.schedWg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run(-1, namedJob{name: name, run: job})
			}
		}
	}()
}

// Shutdown drains queued jobs, stops schedules and waits for everything to finish
func (w *Worker) Shutdown() {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.closeMu.Unlock()

	w.wg.Wait()
	w.cancel()
	w.schedWg.Wait()
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.Workers = w.workers
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// trackJobEnd counts every finished job; FailedJobs is the failing subset
func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
