package pipeline

import (
	"errors"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/document"
)

// Result is the outcome of one successful run.
type Result struct {
	Data            *document.Mapping        `json:"data"`
	Fields          []string                 `json:"fields"`
	ContentType     constants.ContentType    `json:"content_type"`
	ConfidenceScore float64                  `json:"confidence_score"`
	Summary         string                   `json:"summary"`
	WordCount       int                      `json:"word_count"`
	RequestID       string                   `json:"request_id"`
	AnalysisMethod  constants.AnalysisMethod `json:"analysis_method"`
	ProcessingMS    int64                    `json:"processing_ms"`
}

// Response is the envelope handed back to callers.
type Response struct {
	Success bool    `json:"success"`
	Data    *Result `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
}

func Success(res *Result) Response { return Response{Success: true, Data: res} }
func Failure(msg string) Response  { return Response{Error: msg} }

// FailureFromError keeps validation messages verbatim and prefixes anything
// else with "Analysis failed: ".
func FailureFromError(err error) Response {
	var ae *common.AppError
	if errors.As(err, &ae) {
		if ae.Code == common.CodeValidation {
			return Failure(ae.Message)
		}
		return Failure("Analysis failed: " + ae.Message)
	}
	return Failure("Analysis failed: " + err.Error())
}

// Document renders the result as a mapping with the same keys as its JSON form.
func (r *Result) Document() *document.Mapping {
	return document.NewMapping().
		Set("data", document.Object(r.Data)).
		Set("fields", document.Strings(r.Fields)).
		Set("content_type", document.String(string(r.ContentType))).
		Set("confidence_score", document.Number(r.ConfidenceScore)).
		Set("summary", document.String(r.Summary)).
		Set("word_count", document.Int(r.WordCount)).
		Set("request_id", document.String(r.RequestID)).
		Set("analysis_method", document.String(string(r.AnalysisMethod))).
		Set("processing_ms", document.Number(float64(r.ProcessingMS)))
}
