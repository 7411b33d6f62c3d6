// Package score maps a structured document and its source text to a
// heuristic confidence in [0.30, 0.95].
package score

import (
	"unicode/utf8"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/document"
)

const (
	Min  = 0.30
	Max  = 0.95
	base = 0.5
)

// Confidence is a heuristic, not a probability. Points come from key count,
// the presence of top-level sequences and mappings, how much of the text
// ended up in the document, and whether the generative path produced it.
func Confidence(doc *document.Mapping, text string) float64 {
	score := base

	keys := doc.Len()
	if keys > 5 {
		score += 0.1
	}
	if keys > 10 {
		score += 0.1
	}

	var hasSeq, hasMap bool
	for _, k := range doc.Keys() {
		v, _ := doc.Get(k)
		hasSeq = hasSeq || v.IsSequence()
		hasMap = hasMap || v.IsMapping()
	}
	if hasSeq {
		score += 0.1
	}
	if hasMap {
		score += 0.1
	}

	ratio := ExtractionRatio(doc, text)
	if ratio > 0.1 {
		score += 0.1
	}
	if ratio > 0.3 {
		score += 0.1
	}

	if !IsFallback(doc) {
		score += 0.2
	}

	return clamp(score)
}

// ExtractionRatio is serialized-document length over text length, in runes.
func ExtractionRatio(doc *document.Mapping, text string) float64 {
	n := utf8.RuneCountInString(text)
	if n == 0 || doc == nil {
		return 0
	}
	return float64(utf8.RuneCountInString(document.Canonical(document.Object(doc)))) / float64(n)
}

// IsFallback reports whether metadata.analysis_method marks the rule-based path.
func IsFallback(doc *document.Mapping) bool {
	v, ok := doc.Lookup("metadata.analysis_method")
	if !ok {
		return false
	}
	s, _ := v.AsString()
	return s == string(constants.MethodFallback)
}

func clamp(v float64) float64 {
	return min(Max, max(Min, v))
}
