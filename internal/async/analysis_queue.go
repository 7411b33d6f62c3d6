package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/pipeline"
)

// AnalysisQueue runs jobs through an Analyzer on a fixed pool of workers.
type AnalysisQueue struct {
	analyzer Analyzer
	handle   Handler
	logger   *slog.Logger
	workers  int
	timeout  time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.RWMutex
	closed bool
}

type Option func(*AnalysisQueue)

func WithWorkers(n int) Option {
	return func(q *AnalysisQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *AnalysisQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *AnalysisQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewAnalysisQueue(an Analyzer, handle Handler, logger *slog.Logger, opts ...Option) *AnalysisQueue {
	if logger == nil {
		logger = slog.Default()
	}
	if handle == nil {
		handle = func(Job, pipeline.Response) {}
	}
	q := &AnalysisQueue{
		analyzer: an,
		handle:   handle,
		logger:   logger,
		workers:  4,
		timeout:  3 * time.Minute,
		ch:       make(chan Job, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *AnalysisQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Debug("async.worker.started", "worker_id", workerID)
				for job := range q.ch {
					q.process(workerID, job)
				}
				q.logger.Debug("async.worker.stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *AnalysisQueue) process(workerID int, job Job) {
	ctx, cancel := context.WithTimeout(common.WithRequestID(context.Background(), job.ID), q.timeout)
	defer cancel()

	start := time.Now()
	resp := q.analyzer.Analyze(ctx, job.Text)
	if resp.Success {
		q.logger.Info("async.job.ok", "worker_id", workerID, "req_id", job.ID, "name", job.Name,
			"elapsed_ms", time.Since(start).Milliseconds())
	} else {
		q.logger.Warn("async.job.failed", "worker_id", workerID, "req_id", job.ID, "name", job.Name,
			"error", resp.Error)
	}
	q.handle(job, resp)
}

// Enqueue blocks while the queue is full, until ctx ends.
func (q *AnalysisQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}
	select {
	case q.ch <- job:
		q.logger.Debug("async.job.queued", "req_id", job.ID, "name", job.Name)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops intake and waits for queued jobs to drain.
func (q *AnalysisQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("async.shutdown.interrupted")
		return ctx.Err()
	case <-done:
		q.logger.Debug("async.shutdown.drained")
		return nil
	}
}
