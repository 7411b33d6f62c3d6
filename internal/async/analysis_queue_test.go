package async

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/pipeline"
)

type analyzerFunc func(ctx context.Context, text string) pipeline.Response

func (f analyzerFunc) Analyze(ctx context.Context, text string) pipeline.Response {
	return f(ctx, text)
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestAnalysisQueue_ProcessesAll(t *testing.T) {
	var calls atomic.Int32
	an := analyzerFunc(func(ctx context.Context, text string) pipeline.Response {
		calls.Add(1)
		if text == "bad" {
			return pipeline.Failure("nope")
		}
		return pipeline.Success(&pipeline.Result{RequestID: common.RequestIDFromContext(ctx), Summary: text})
	})

	var mu sync.Mutex
	got := map[string]pipeline.Response{}
	q := NewAnalysisQueue(an, func(job Job, resp pipeline.Response) {
		mu.Lock()
		defer mu.Unlock()
		got[job.Name] = resp
	}, quiet(), WithWorkers(3), WithQueueSize(2))

	names := []string{"a", "b", "c", "d", "bad"}
	for _, n := range names {
		if err := q.Enqueue(context.Background(), Job{ID: "id-" + n, Name: n, Text: n}); err != nil {
			t.Fatalf("enqueue %s: %v", n, err)
		}
	}
	if err := q.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if calls.Load() != int32(len(names)) {
		t.Errorf("got %d calls, want %d", calls.Load(), len(names))
	}
	if len(got) != len(names) {
		t.Fatalf("got %d results, want %d", len(got), len(names))
	}
	if r := got["a"]; !r.Success || r.Data.RequestID != "id-a" {
		t.Errorf("job a: got %+v", r)
	}
	if r := got["bad"]; r.Success || r.Error != "nope" {
		t.Errorf("job bad: got %+v", r)
	}
}

func TestAnalysisQueue_EnqueueAfterShutdown(t *testing.T) {
	q := NewAnalysisQueue(analyzerFunc(func(context.Context, string) pipeline.Response {
		return pipeline.Failure("x")
	}), nil, quiet())
	if err := q.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := q.Enqueue(context.Background(), Job{Text: "t"}); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("got %v, want ErrQueueClosed", err)
	}
	if err := q.Shutdown(context.Background()); err != nil {
		t.Errorf("second shutdown: %v", err)
	}
}

func TestAnalysisQueue_EnqueueRespectsContext(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	an := analyzerFunc(func(context.Context, string) pipeline.Response {
		started <- struct{}{}
		<-release
		return pipeline.Failure("x")
	})
	q := NewAnalysisQueue(an, nil, quiet(), WithWorkers(1), WithQueueSize(1))

	// one job occupies the worker, one fills the buffer
	_ = q.Enqueue(context.Background(), Job{Text: "1"})
	<-started
	_ = q.Enqueue(context.Background(), Job{Text: "2"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := q.Enqueue(ctx, Job{Text: "3"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want deadline exceeded", err)
	}

	close(release)
	if err := q.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
