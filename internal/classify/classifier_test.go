package classify

import (
	"strings"
	"testing"

	"github.com/joseph-ayodele/text-structurer/constants"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.ContentType
	}{
		{"academic", "Abstract: we study X. Introduction follows. Conclusion: it works.", constants.AcademicPaper},
		{"academic beats recipe", "Abstract introduction conclusion. Recipe ingredients: flour.", constants.AcademicPaper},
		{"recipe with instructions", "Ingredients: 2 eggs. Instructions: whisk well.", constants.Recipe},
		{"recipe word", "My favourite recipe needs these ingredients", constants.Recipe},
		{"ingredients alone is not a recipe", "the ingredients of a good team", constants.GeneralText},
		{"resume", "Experience at ACME. Education: BSc. Skills: Go.", constants.ResumeCV},
		{"credentials at sign", "admin@example.org password hunter2", constants.CredentialsList},
		{"credentials email word", "Email: bob, Password: 1234", constants.CredentialsList},
		{"iso date", "The launch happened on 2024-03-15 at noon", constants.DateBasedContent},
		{"us date", "Deadline is 3/7/2025 for everyone", constants.DateBasedContent},
		{"credentials beat dates", "password reset sent to a@b.io on 2024-01-01", constants.CredentialsList},
		{"meeting agenda", "Weekly meeting. Agenda: budget", constants.MeetingNotes},
		{"meeting minutes", "Minutes of the board meeting", constants.MeetingNotes},
		{"structured", strings.Repeat("name,age\n", 11), constants.StructuredData},
		{"ten lines not structured", strings.Repeat("a,b\n", 9) + "a,b", constants.GeneralText},
		{"story keyword", "Once upon a time there was a story", constants.NarrativeStory},
		{"many sentences", strings.Repeat("It rained. ", 21), constants.NarrativeStory},
		{"product", "This product has a great price", constants.ProductInformation},
		{"product feature", "Product FEATURE list", constants.ProductInformation},
		{"general", "Just some words without any signal at all", constants.GeneralText},
		{"empty", "", constants.GeneralText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q): got %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Chapter one. The meeting agenda was long, and the product price rose."
	first := Classify(text)
	for i := 0; i < 50; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("iteration %d: got %q, want %q", i, got, first)
		}
	}
	// meeting (rule 6) outranks narrative (rule 8) and product (rule 9)
	if first != constants.MeetingNotes {
		t.Errorf("got %q, want %q", first, constants.MeetingNotes)
	}
}

func TestExplain(t *testing.T) {
	ct, rule := Explain("nothing to see here")
	if ct != constants.GeneralText || rule != "default" {
		t.Errorf("explain: got (%q, %q)", ct, rule)
	}
	ct, rule = Explain("meeting minutes")
	if ct != constants.MeetingNotes || rule != "meeting" {
		t.Errorf("explain: got (%q, %q)", ct, rule)
	}
}

func TestRules_Order(t *testing.T) {
	want := []constants.ContentType{
		constants.AcademicPaper,
		constants.Recipe,
		constants.ResumeCV,
		constants.CredentialsList,
		constants.DateBasedContent,
		constants.MeetingNotes,
		constants.StructuredData,
		constants.NarrativeStory,
		constants.ProductInformation,
	}
	got := Rules()
	if len(got) != len(want) {
		t.Fatalf("rules: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Label != want[i] {
			t.Errorf("rule[%d]: got %q, want %q", i, got[i].Label, want[i])
		}
	}
}

func TestRules_CoverContentTypes(t *testing.T) {
	all := constants.AllContentTypes()
	if all[len(all)-1] != constants.GeneralText {
		t.Errorf("last content type: got %q, want %q", all[len(all)-1], constants.GeneralText)
	}
	labels := map[constants.ContentType]bool{}
	for _, r := range Rules() {
		labels[r.Label] = true
	}
	for _, ct := range all[:len(all)-1] {
		if !labels[ct] {
			t.Errorf("no rule produces %q", ct)
		}
	}
	if len(labels) != len(all)-1 {
		t.Errorf("rules produce %d labels, want %d", len(labels), len(all)-1)
	}
}
