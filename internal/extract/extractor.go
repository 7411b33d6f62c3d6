// Package extract turns text into a structured document by asking the
// generative service to structure each chunk and merging the results.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/chunk"
	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/document"
	"github.com/joseph-ayodele/text-structurer/internal/llm"
)

// Options tune chunking, the chunk cap and the merge policy.
type Options struct {
	ChunkSize      int
	MaxChunks      int // later chunks are dropped
	ConflictPolicy document.ConflictPolicy
	Model          string
	MaxTokens      int
	Temperature    float32
}

func DefaultOptions() Options {
	return Options{
		ChunkSize:      constants.DefaultChunkSize,
		MaxChunks:      constants.DefaultMaxChunks,
		ConflictPolicy: document.KeepFirst,
		Temperature:    0.1,
	}
}

// Outcome is either a merged document or an explicit request to fall back.
type Outcome struct {
	Document        *document.Mapping
	UseFallback     bool
	Reason          string
	ChunksTotal     int
	ChunksProcessed int
	ChunksParsed    int
}

func fallbackOutcome(reason string) Outcome {
	return Outcome{UseFallback: true, Reason: reason}
}

type Extractor struct {
	client llm.Client
	opts   Options
	schema *jsonschema.Schema
	logger *slog.Logger
}

func New(client llm.Client, opts Options, logger *slog.Logger) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultOptions()
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = def.ChunkSize
	}
	if opts.MaxChunks <= 0 {
		opts.MaxChunks = def.MaxChunks
	}
	schema, err := llm.CompileSchema(llm.ChunkResponseSchema())
	if err != nil {
		return nil, fmt.Errorf("chunk response schema: %w", err)
	}
	return &Extractor{client: client, opts: opts, schema: schema, logger: logger}, nil
}

// Extract never returns an error: transport, parse and unexpected failures
// all end in an Outcome with UseFallback set.
func (e *Extractor) Extract(ctx context.Context, text string, ct constants.ContentType) (out Outcome) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extract.panic", "req_id", rid, "panic", r)
			out = fallbackOutcome(fmt.Sprintf("extraction panicked: %v", r))
		}
	}()

	if e.client == nil {
		return fallbackOutcome("no generative client configured")
	}

	chunks := chunk.Split(text, e.opts.ChunkSize)
	selected := chunks
	if len(selected) > e.opts.MaxChunks {
		e.logger.Info("extract.chunks.truncated",
			"req_id", rid, "total", len(chunks), "kept", e.opts.MaxChunks)
		selected = selected[:e.opts.MaxChunks]
	}

	out.ChunksTotal = len(chunks)
	var acc *document.Mapping
	for _, c := range selected {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("extract.cancelled", "req_id", rid, "chunk", c.Index, "error", err)
			break
		}
		out.ChunksProcessed++
		if c.Empty() {
			continue
		}

		doc, err := e.extractChunk(ctx, c, ct, len(selected))
		if err != nil {
			e.logger.Warn("extract.chunk.skipped", "req_id", rid, "chunk", c.Index, "error", err)
			continue
		}
		out.ChunksParsed++
		if acc == nil {
			acc = doc
			continue
		}
		document.Merge(acc, doc, e.opts.ConflictPolicy)
	}

	if acc == nil || acc.Len() == 0 {
		reason := fmt.Sprintf("no usable output from %d chunk(s)", out.ChunksProcessed)
		e.logger.Warn("extract.fallback", "req_id", rid, "reason", reason,
			"elapsed_ms", time.Since(start).Milliseconds())
		fb := fallbackOutcome(reason)
		fb.ChunksTotal, fb.ChunksProcessed = out.ChunksTotal, out.ChunksProcessed
		return fb
	}

	out.Document = acc
	e.logger.Info("extract.ok",
		"req_id", rid,
		"chunks_total", out.ChunksTotal,
		"chunks_parsed", out.ChunksParsed,
		"keys", acc.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func (e *Extractor) extractChunk(ctx context.Context, c chunk.Chunk, ct constants.ContentType, total int) (*document.Mapping, error) {
	temp := e.opts.Temperature
	resp, err := e.client.Complete(ctx, llm.CompletionRequest{
		Model:       e.opts.Model,
		Messages:    llm.BuildExtractionMessages(c.Text, ct, c.Index, total),
		MaxTokens:   e.opts.MaxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return nil, common.WrapError(err, "complete")
	}

	doc, err := llm.ParseDocument(resp)
	if err != nil {
		return nil, common.WrapError(err, "parse")
	}
	if err := llm.ValidateDocument(e.schema, doc); err != nil {
		return nil, common.WrapError(err, "validate")
	}
	return doc, nil
}
