// Package pipeline runs one text analysis end to end: validate, classify,
// summarize and extract, fall back when extraction yields nothing, then score.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/classify"
	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/document"
	"github.com/joseph-ayodele/text-structurer/internal/extract"
	"github.com/joseph-ayodele/text-structurer/internal/fallback"
	"github.com/joseph-ayodele/text-structurer/internal/llm"
	"github.com/joseph-ayodele/text-structurer/internal/score"
	"github.com/joseph-ayodele/text-structurer/internal/summarize"
)

// Config carries the analysis limits plus the generation parameters passed
// on every service call.
type Config struct {
	common.PipelineConfig
	Model       string
	MaxTokens   int
	Temperature float32
}

// DefaultConfig returns the documented limits with no model override.
func DefaultConfig() Config {
	return Config{PipelineConfig: common.DefaultPipelineConfig(), Temperature: 0.1}
}

// ConfigFrom builds a pipeline Config from the loaded application config.
func ConfigFrom(c *common.Config) Config {
	return Config{
		PipelineConfig: c.Pipeline,
		Model:          c.LLM.Model,
		MaxTokens:      c.LLM.MaxTokens,
		Temperature:    c.LLM.Temperature,
	}
}

type Pipeline struct {
	Logger     *slog.Logger
	Cfg        Config
	Extractor  *extract.Extractor
	Summarizer *summarize.Summarizer
	Fallback   *fallback.Analyzer
}

// New wires the pipeline stages around client. A nil client is allowed; every
// run then takes the fallback path with a placeholder summary.
func New(cfg Config, client llm.Client, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.PipelineConfig.Validate(); err != nil {
		return nil, err
	}

	ex, err := extract.New(client, extract.Options{
		ChunkSize:      cfg.ChunkSize,
		MaxChunks:      cfg.MaxChunks,
		ConflictPolicy: document.KeepFirst,
		Model:          cfg.Model,
		MaxTokens:      cfg.MaxTokens,
		Temperature:    cfg.Temperature,
	}, logger)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfig, "build extractor", err)
	}

	sumOpts := summarize.DefaultOptions()
	sumOpts.MaxInputChars = cfg.SummaryChars
	sumOpts.Model = cfg.Model

	return &Pipeline{
		Logger:     logger,
		Cfg:        cfg,
		Extractor:  ex,
		Summarizer: summarize.New(client, sumOpts, logger),
		Fallback:   fallback.New(nil),
	}, nil
}

// Validate checks text against the input limits. The first failing rule wins:
// empty, then too short, then too long.
func (p *Pipeline) Validate(text string) error {
	return common.NewValidator().
		Field("text", text,
			common.Required(constants.MsgNoText),
			common.MinWords(p.Cfg.MinWords, constants.MsgTooShort),
			common.MaxLength(p.Cfg.MaxInputChars, constants.MsgTooLong),
		).
		Error()
}

// Run analyzes text. Errors are *common.AppError with CodeValidation for
// rejected input and CodeAnalysis for anything else.
func (p *Pipeline) Run(ctx context.Context, text string) (*Result, error) {
	start := time.Now()
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.NewString()
		ctx = common.WithRequestID(ctx, rid)
	}

	text = norm.NFC.String(text)
	if err := p.Validate(text); err != nil {
		p.Logger.Info("pipeline.validate.rejected", "req_id", rid, "reason", err)
		return nil, err
	}

	ct, rule := classify.Explain(text)
	p.Logger.Info("pipeline.start",
		"req_id", rid,
		"chars", len(text),
		"content_type", ct,
		"rule", rule,
	)

	summary, outcome, err := p.generate(ctx, text, ct)
	if err != nil {
		p.Logger.Error("pipeline.run.failed", "req_id", rid, "error", err)
		return nil, common.NewAppError(common.CodeAnalysis, err.Error(), err)
	}

	doc := outcome.Document
	method := constants.MethodLLM
	if outcome.UseFallback || doc == nil {
		p.Logger.Info("pipeline.fallback", "req_id", rid, "reason", outcome.Reason)
		doc = p.Fallback.Analyze(text, ct)
		method = constants.MethodFallback
	}

	res := &Result{
		Data:            doc,
		Fields:          document.Fields(doc, p.Cfg.FieldMaxDepth),
		ContentType:     ct,
		ConfidenceScore: score.Confidence(doc, text),
		Summary:         summary,
		WordCount:       len(strings.Fields(text)),
		RequestID:       rid,
		AnalysisMethod:  method,
		ProcessingMS:    time.Since(start).Milliseconds(),
	}

	p.Logger.Info("pipeline.run.ok",
		"req_id", rid,
		"method", method,
		"fields", len(res.Fields),
		"confidence", res.ConfidenceScore,
		"elapsed_ms", res.ProcessingMS,
	)
	return res, nil
}

// generate runs the summary and extraction calls. Neither stage returns an
// error of its own, so err is only the group's cancellation cause.
func (p *Pipeline) generate(ctx context.Context, text string, ct constants.ContentType) (string, extract.Outcome, error) {
	var (
		summary string
		outcome extract.Outcome
	)

	if !p.Cfg.Parallel {
		summary = p.Summarizer.Summarize(ctx, text)
		outcome = p.Extractor.Extract(ctx, text, ct)
		return summary, outcome, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary = p.Summarizer.Summarize(gctx, text)
		return nil
	})
	g.Go(func() error {
		outcome = p.Extractor.Extract(gctx, text, ct)
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", extract.Outcome{}, fmt.Errorf("generate: %w", err)
	}
	return summary, outcome, nil
}

// Analyze wraps Run in the response envelope. It never panics.
func (p *Pipeline) Analyze(ctx context.Context, text string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Error("pipeline.panic", "panic", fmt.Sprint(r))
			resp = Failure(constants.MsgUnexpected)
		}
	}()

	res, err := p.Run(ctx, text)
	if err != nil {
		return FailureFromError(err)
	}
	return Success(res)
}
