// Package fallback is the deterministic, rule-based analyzer used whenever
// the generative extraction path yields nothing usable.
package fallback

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/document"
)

const (
	wordsPerMinute = 200
	maxNumbers     = 10
	maxKeyTerms    = 10
	minTermLength  = 4
	previewLength  = 100

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	reSentence  = regexp.MustCompile(`[.!?]+`)
	reParagraph = regexp.MustCompile(`\n\s*\n`)
	reEmail     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reURL       = regexp.MustCompile(`https?://[^\s]+`)
	reISODate   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	reUSDate    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	reNumber    = regexp.MustCompile(`\b(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?\b`)
	reNonWord   = regexp.MustCompile(`\W`)
)

// Analyzer builds the fixed fallback schema. The clock is injectable so
// tests get a stable processing_timestamp.
type Analyzer struct {
	now func() time.Time
}

func New(now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{now: now}
}

// Analyze runs the default analyzer with the wall clock.
func Analyze(text string, ct constants.ContentType) *document.Mapping {
	return New(nil).Analyze(text, ct)
}

// Stats are the lexical counts behind the content_analysis section.
type Stats struct {
	Words                 int
	Sentences             int
	Paragraphs            int
	AverageSentenceLength int
	ReadingTimeMinutes    int
}

// Count computes word, sentence and paragraph statistics, discarding empty fragments.
func Count(text string) Stats {
	s := Stats{
		Words:      len(strings.Fields(text)),
		Sentences:  len(nonEmpty(reSentence.Split(text, -1))),
		Paragraphs: len(nonEmpty(reParagraph.Split(text, -1))),
	}
	if s.Sentences > 0 {
		s.AverageSentenceLength = int(math.Round(float64(s.Words) / float64(s.Sentences)))
	}
	s.ReadingTimeMinutes = int(math.Ceil(float64(s.Words) / wordsPerMinute))
	return s
}

func (a *Analyzer) Analyze(text string, ct constants.ContentType) *document.Mapping {
	st := Count(text)

	content := document.NewMapping().
		Set("word_count", document.Int(st.Words)).
		Set("sentence_count", document.Int(st.Sentences)).
		Set("paragraph_count", document.Int(st.Paragraphs)).
		Set("average_sentence_length", document.Int(st.AverageSentenceLength)).
		Set("reading_time_minutes", document.Int(st.ReadingTimeMinutes))

	dates := append(matches(reISODate, text, -1), matches(reUSDate, text, -1)...)
	entities := document.NewMapping().
		Set("emails", document.Strings(matches(reEmail, text, -1))).
		Set("urls", document.Strings(matches(reURL, text, -1))).
		Set("dates", document.Strings(dates)).
		Set("numbers", document.Strings(matches(reNumber, text, maxNumbers)))

	terms := make([]document.Value, 0, maxKeyTerms)
	for _, tf := range a.TopTerms(text, maxKeyTerms) {
		terms = append(terms, document.Object(document.NewMapping().
			Set("word", document.String(tf.Word)).
			Set("count", document.Int(tf.Count))))
	}

	paragraphs := nonEmpty(reParagraph.Split(text, -1))
	paraVals := make([]document.Value, 0, len(paragraphs))
	for i, p := range paragraphs {
		paraVals = append(paraVals, document.Object(document.NewMapping().
			Set("index", document.Int(i+1)).
			Set("word_count", document.Int(len(strings.Fields(p)))).
			Set("preview", document.String(preview(p, previewLength)))))
	}

	metadata := document.NewMapping().
		Set("analysis_method", document.String(string(constants.MethodFallback))).
		Set("processing_timestamp", document.String(a.now().UTC().Format(timestampLayout))).
		Set("content_type_detected", document.String(string(ct)))

	return document.NewMapping().
		Set("content_analysis", document.Object(content)).
		Set("extracted_entities", document.Object(entities)).
		Set("key_terms", document.Sequence(terms...)).
		Set("structure", document.Object(document.NewMapping().
			Set("paragraphs", document.Sequence(paraVals...)))).
		Set("metadata", document.Object(metadata))
}

// TermFrequency is one ranked word.
type TermFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopTerms ranks case-folded words of at least four word characters by
// frequency; ties keep first-occurrence order.
func (a *Analyzer) TopTerms(text string, limit int) []TermFrequency {
	fold := cases.Fold()
	counts := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(text) {
		clean := reNonWord.ReplaceAllString(fold.String(w), "")
		if utf8.RuneCountInString(clean) < minTermLength {
			continue
		}
		if _, seen := counts[clean]; !seen {
			order = append(order, clean)
		}
		counts[clean]++
	}

	out := make([]TermFrequency, 0, len(order))
	for _, w := range order {
		out = append(out, TermFrequency{Word: w, Count: counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func matches(re *regexp.Regexp, text string, n int) []string {
	found := re.FindAllString(text, n)
	if found == nil {
		return []string{}
	}
	return found
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
