package async

import (
	"context"
	"errors"
	"time"

	"github.com/joseph-ayodele/text-structurer/internal/pipeline"
)

var ErrQueueClosed = errors.New("async: queue is shutting down")

// Job is one text to analyze. Name identifies it in logs and results.
type Job struct {
	ID          string
	Name        string
	Text        string
	SubmittedAt time.Time
}

// Analyzer is the slice of the pipeline a queue needs.
type Analyzer interface {
	Analyze(ctx context.Context, text string) pipeline.Response
}

// Handler receives each finished job. It is called from worker goroutines.
type Handler func(job Job, resp pipeline.Response)

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context) error
}
