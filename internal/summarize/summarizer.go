// Package summarize produces a short prose summary through the generative
// service, degrading to a fixed placeholder on any failure.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/llm"
)

type Options struct {
	MaxInputChars int
	Model         string
	MaxTokens     int
	Temperature   float32
}

func DefaultOptions() Options {
	return Options{
		MaxInputChars: constants.SummaryInputChars,
		MaxTokens:     256,
		Temperature:   0.3,
	}
}

type Summarizer struct {
	client llm.Client
	opts   Options
	logger *slog.Logger
}

func New(client llm.Client, opts Options, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxInputChars <= 0 {
		opts.MaxInputChars = constants.SummaryInputChars
	}
	return &Summarizer{client: client, opts: opts, logger: logger}
}

// Summarize never fails. A call that errors yields SummaryUnavailable; a
// call that returns nothing usable, or panics, yields SummaryFailed.
func (s *Summarizer) Summarize(ctx context.Context, text string) (summary string) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("summarize.panic", "req_id", rid, "panic", fmt.Sprint(r))
			summary = constants.SummaryFailed
		}
	}()

	if s.client == nil {
		return constants.SummaryUnavailable
	}

	temp := s.opts.Temperature
	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Model:       s.opts.Model,
		Messages:    llm.BuildSummaryMessages(Truncate(text, s.opts.MaxInputChars)),
		MaxTokens:   s.opts.MaxTokens,
		Temperature: &temp,
	})
	if err != nil {
		s.logger.Warn("summarize.unavailable", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return constants.SummaryUnavailable
	}

	summary = strings.TrimSpace(resp)
	if summary == "" {
		s.logger.Warn("summarize.empty", "req_id", rid)
		return constants.SummaryFailed
	}
	s.logger.Info("summarize.ok", "req_id", rid, "chars", len(summary),
		"elapsed_ms", time.Since(start).Milliseconds())
	return summary
}

// Truncate keeps the first n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
