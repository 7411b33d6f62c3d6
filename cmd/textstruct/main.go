// Command textstruct analyzes text files (or stdin) and prints the response
// envelope as JSON. Several files are analyzed concurrently.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/async"
	"github.com/joseph-ayodele/text-structurer/internal/classify"
	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/export"
	"github.com/joseph-ayodele/text-structurer/internal/ingest"
	"github.com/joseph-ayodele/text-structurer/internal/llm/workersai"
	"github.com/joseph-ayodele/text-structurer/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

type namedResponse struct {
	Name     string            `json:"name"`
	Response pipeline.Response `json:"response"`
}

func main() {
	var (
		xlsxOut = flag.String("xlsx", "", "write the result workbook to this path (single input only)")
		explain = flag.Bool("explain", false, "print the content-type rule that matched to stderr")
		workers = flag.Int("workers", 4, "concurrent analyses when several files are given")
		verbose = flag.Bool("v", false, "log pipeline events to stderr")
		dir     = flag.String("dir", "", "also analyze every text file under this directory")
		exts    = flag.String("ext", "", "comma-separated extensions collected by -dir (default txt,md,text)")
		watch   = flag.Bool("watch", false, "with -dir, keep running and analyze files as they appear")
		types   = flag.Bool("types", false, "list the content types and the rules that detect them, then exit")
	)
	flag.Usage = func() {
		printError("usage: textstruct [-xlsx out.xlsx] [-explain] [-types] [-workers n] [-dir path [-watch]] [file ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *types {
		listTypes()
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var extList []string
	if *exts != "" {
		extList = strings.Split(*exts, ",")
	}
	if *watch {
		if *dir == "" {
			printError("Error: -watch needs -dir\n")
			os.Exit(2)
		}
		p, err := buildPipeline(cfg, logger)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(2)
		}
		os.Exit(runWatch(ctx, p, *dir, extList, *workers, logger))
	}

	paths := flag.Args()
	if *dir != "" {
		files, stats, err := ingest.CollectDirectory(ctx, *dir, ingest.Options{Extensions: extList, SkipHidden: true})
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("ingest.directory.ok", "root", *dir, "matched", stats.Matched,
			"deduplicated", stats.Deduplicated, "failed", stats.Failed)
		for _, f := range files {
			if !f.Deduplicated {
				paths = append(paths, f.Path)
			}
		}
		if len(paths) == 0 {
			printError("Error: no matching files under %s\n", *dir)
			os.Exit(1)
		}
	}
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	if *xlsxOut != "" && len(paths) > 1 {
		printError("Error: -xlsx needs exactly one input\n")
		os.Exit(2)
	}

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}

	if len(paths) == 1 {
		os.Exit(runOne(ctx, p, paths[0], *xlsxOut, *explain, logger))
	}
	os.Exit(runMany(ctx, p, paths, *workers, *explain, logger))
}

func buildPipeline(cfg *common.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	client := workersai.NewClient(workersai.ConfigFromCommon(cfg.LLM), logger)
	return pipeline.New(pipeline.ConfigFrom(cfg), client, logger)
}

func runOne(ctx context.Context, p *pipeline.Pipeline, path, xlsxOut string, explain bool, logger *slog.Logger) int {
	text, err := readInput(path)
	if err != nil {
		printError("Error: %v\n", err)
		return 1
	}
	if explain {
		explainType(path, text)
	}

	resp := p.Analyze(ctx, text)
	if err := writeJSON(resp); err != nil {
		printError("Error: %v\n", err)
		return 1
	}
	if !resp.Success {
		return 1
	}

	if xlsxOut != "" {
		b, err := export.NewService(logger).ResultXLSX(resp.Data)
		if err != nil {
			printError("Error: export: %v\n", err)
			return 1
		}
		if err := os.WriteFile(xlsxOut, b, 0o644); err != nil {
			printError("Error: write %s: %v\n", xlsxOut, err)
			return 1
		}
	}
	return 0
}

func runMany(ctx context.Context, p *pipeline.Pipeline, paths []string, workers int, explain bool, logger *slog.Logger) int {
	index := make(map[string]int, len(paths))
	out := make([]namedResponse, len(paths))

	var mu sync.Mutex
	q := async.NewAnalysisQueue(p, func(job async.Job, resp pipeline.Response) {
		mu.Lock()
		defer mu.Unlock()
		out[index[job.ID]] = namedResponse{Name: job.Name, Response: resp}
	}, logger, async.WithWorkers(workers))

	code := 0
	for i, path := range paths {
		name := filepath.Base(path)
		text, err := readInput(path)
		if err != nil {
			out[i] = namedResponse{Name: name, Response: pipeline.Failure(err.Error())}
			code = 1
			continue
		}
		if explain {
			explainType(path, text)
		}
		id := fmt.Sprintf("%s#%d", name, i)
		mu.Lock()
		index[id] = i
		mu.Unlock()
		if err := q.Enqueue(ctx, async.Job{ID: id, Name: name, Text: text}); err != nil {
			out[i] = namedResponse{Name: name, Response: pipeline.Failure(err.Error())}
			code = 1
			break
		}
	}
	if err := q.Shutdown(context.Background()); err != nil {
		printError("Error: %v\n", err)
		code = 1
	}

	for i := range out {
		if out[i].Name == "" {
			out[i] = namedResponse{Name: filepath.Base(paths[i]), Response: pipeline.Failure("not analyzed")}
		}
		if !out[i].Response.Success {
			code = 1
		}
	}
	if err := writeJSON(out); err != nil {
		printError("Error: %v\n", err)
		return 1
	}
	return code
}

// runWatch analyzes files under dir as they appear and prints one compact
// JSON line per file until interrupted.
func runWatch(ctx context.Context, p *pipeline.Pipeline, dir string, exts []string, workers int, logger *slog.Logger) int {
	events, errs, err := ingest.Watch(ctx, ingest.WatchConfig{
		Roots:       []string{dir},
		Options:     ingest.Options{Extensions: exts, SkipHidden: true},
		InitialScan: true,
		Debounce:    250 * time.Millisecond,
	}, logger)
	if err != nil {
		printError("Error: %v\n", err)
		return 1
	}

	var mu sync.Mutex
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	q := async.NewAnalysisQueue(p, func(job async.Job, resp pipeline.Response) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(namedResponse{Name: job.Name, Response: resp}); err != nil {
			printError("Error: %v\n", err)
		}
	}, logger, async.WithWorkers(workers))

	seen := map[string]string{}
	for path := range events {
		sum, err := ingest.HashFile(path)
		if err != nil {
			logger.Warn("watch.hash_failed", "path", path, "error", err)
			continue
		}
		if seen[path] == sum {
			continue
		}
		seen[path] = sum

		text, err := readInput(path)
		if err != nil {
			logger.Warn("watch.read_failed", "path", path, "error", err)
			continue
		}
		if err := q.Enqueue(ctx, async.Job{Name: path, Text: text}); err != nil {
			break
		}
	}
	for err := range errs {
		logger.Warn("watch.error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := q.Shutdown(shutdownCtx); err != nil {
		printError("Error: %v\n", err)
		return 1
	}
	return 0
}

// listTypes prints every content type with the rules that can produce it,
// in evaluation order.
func listTypes() {
	byLabel := map[constants.ContentType][]string{constants.GeneralText: {"default"}}
	for _, r := range classify.Rules() {
		byLabel[r.Label] = append(byLabel[r.Label], r.Name)
	}
	for _, ct := range constants.AllContentTypes() {
		fmt.Printf("%s\t%s\n", ct, strings.Join(byLabel[ct], ","))
	}
}

func explainType(path, text string) {
	ct, rule := classify.Explain(text)
	printError("%s: %s (rule: %s)\n", path, ct, rule)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
