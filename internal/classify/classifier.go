// Package classify labels input text with a content type using ordered
// keyword and pattern predicates.
package classify

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/text-structurer/constants"
)

var (
	reDate       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}`)
	reTerminator = regexp.MustCompile(`[.!?]+`)
)

// Rule is one predicate in the classification table. Rules are evaluated in
// order and the first match wins, so the table order is load-bearing.
type Rule struct {
	Name  string
	Label constants.ContentType
	match func(lower string) bool
}

var rules = []Rule{
	{Name: "academic", Label: constants.AcademicPaper, match: func(s string) bool {
		return containsAll(s, "abstract", "introduction", "conclusion")
	}},
	{Name: "recipe", Label: constants.Recipe, match: func(s string) bool {
		return strings.Contains(s, "ingredients") && containsAny(s, "recipe", "instructions")
	}},
	{Name: "resume", Label: constants.ResumeCV, match: func(s string) bool {
		return containsAll(s, "experience", "education", "skills")
	}},
	{Name: "credentials", Label: constants.CredentialsList, match: func(s string) bool {
		return containsAny(s, "email", "@") && strings.Contains(s, "password")
	}},
	{Name: "dates", Label: constants.DateBasedContent, match: func(s string) bool {
		return reDate.MatchString(s)
	}},
	{Name: "meeting", Label: constants.MeetingNotes, match: func(s string) bool {
		return strings.Contains(s, "meeting") && containsAny(s, "agenda", "minutes")
	}},
	{Name: "structured", Label: constants.StructuredData, match: func(s string) bool {
		return len(strings.Split(s, "\n")) > 10 && strings.Contains(s, ",")
	}},
	{Name: "narrative", Label: constants.NarrativeStory, match: func(s string) bool {
		return containsAny(s, "story", "chapter") || len(reTerminator.Split(s, -1)) > 20
	}},
	{Name: "product", Label: constants.ProductInformation, match: func(s string) bool {
		return strings.Contains(s, "product") && containsAny(s, "price", "feature")
	}},
}

// Classify returns the label of the first matching rule, or GeneralText.
func Classify(text string) constants.ContentType {
	ct, _ := Explain(text)
	return ct
}

// Explain is Classify plus the name of the rule that fired ("default" if none).
func Explain(text string) (constants.ContentType, string) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.match(lower) {
			return r.Label, r.Name
		}
	}
	return constants.GeneralText, "default"
}

// Rules returns the classification table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
