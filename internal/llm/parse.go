package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/text-structurer/internal/document"
)

var (
	reFence  = regexp.MustCompile("```(?:json|JSON)?")
	reObject = regexp.MustCompile(`(?s)\{.*\}`)

	ErrNoJSONObject = errors.New("llm: no JSON object in response")
)

// StripCodeFences removes markdown code-fence markers and surrounding space.
func StripCodeFences(s string) string {
	return strings.TrimSpace(reFence.ReplaceAllString(s, ""))
}

// ParseDocument recovers a JSON object from a model response in two steps:
// a strict parse of the fence-stripped text, then a parse of the widest
// {...} span found in it. Non-object JSON counts as a failure.
func ParseDocument(response string) (*document.Mapping, error) {
	cleaned := StripCodeFences(response)
	if cleaned == "" {
		return nil, ErrEmptyCompletion
	}

	v, strictErr := document.Parse([]byte(cleaned))
	if strictErr == nil {
		if v.IsMapping() {
			return v.Mapping(), nil
		}
		strictErr = fmt.Errorf("top-level %s, want object", v.Kind())
	}

	span := reObject.FindString(cleaned)
	if span == "" {
		return nil, fmt.Errorf("%w: %v", ErrNoJSONObject, strictErr)
	}
	v, err := document.Parse([]byte(span))
	if err != nil {
		return nil, fmt.Errorf("recover object: %w", err)
	}
	if !v.IsMapping() {
		return nil, ErrNoJSONObject
	}
	return v.Mapping(), nil
}
