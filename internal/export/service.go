package export

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/text-structurer/internal/document"
	"github.com/joseph-ayodele/text-structurer/internal/pipeline"
)

const (
	SummarySheet = "Summary"
	FieldsSheet  = "Fields"

	maxCellChars = 32767 // excelize rejects longer cell text
)

// Service renders analysis results as XLSX workbooks.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultXLSX returns a workbook with a Summary sheet of result metadata and a
// Fields sheet listing every dotted field path with its kind and value.
func (s *Service) ResultXLSX(res *pipeline.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("nil result")
	}
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	summary := [][2]any{
		{"Request ID", res.RequestID},
		{"Content Type", string(res.ContentType)},
		{"Confidence", res.ConfidenceScore},
		{"Word Count", res.WordCount},
		{"Analysis Method", string(res.AnalysisMethod)},
		{"Summary", truncate(res.Summary, maxCellChars)},
	}
	for i, kv := range summary {
		row := i + 1
		_ = f.SetCellValue(SummarySheet, cellName(1, row), kv[0])
		_ = f.SetCellValue(SummarySheet, cellName(2, row), kv[1])
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 18)
	_ = f.SetColWidth(SummarySheet, "B", "B", 80)

	if _, err := f.NewSheet(FieldsSheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	for i, h := range []string{"Field", "Kind", "Value"} {
		_ = f.SetCellValue(FieldsSheet, cellName(i+1, 1), h)
	}

	row := 2
	for _, path := range res.Fields {
		v, ok := res.Data.Lookup(path)
		kind, value := "", ""
		if ok {
			kind, value = v.Kind().String(), render(v)
		}
		_ = f.SetCellValue(FieldsSheet, cellName(1, row), path)
		_ = f.SetCellValue(FieldsSheet, cellName(2, row), kind)
		_ = f.SetCellValue(FieldsSheet, cellName(3, row), truncate(value, maxCellChars))
		row++
	}
	_ = f.SetColWidth(FieldsSheet, "A", "A", 40)
	_ = f.SetColWidth(FieldsSheet, "B", "B", 12)
	_ = f.SetColWidth(FieldsSheet, "C", "C", 60)

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"req_id", res.RequestID,
		"rows", len(res.Fields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// render shows scalars verbatim, sequences as compact JSON and mappings by size.
func render(v document.Value) string {
	switch v.Kind() {
	case document.KindString:
		s, _ := v.AsString()
		return s
	case document.KindNumber:
		n, _ := v.AsNumber()
		return strconv.FormatFloat(n, 'f', -1, 64)
	case document.KindBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case document.KindSequence:
		return document.Canonical(v)
	case document.KindMapping:
		return fmt.Sprintf("{%d keys}", v.Mapping().Len())
	default:
		return "null"
	}
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
