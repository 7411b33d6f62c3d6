package llm

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/text-structurer/constants"
)

const extractionSystemPrompt = "You are a data structuring assistant. Convert unstructured text into clean, " +
	"well-organized JSON. Return ONLY valid JSON with no markdown, no code fences and no commentary."

// BuildExtractionMessages asks for a JSON-only structured representation of
// one chunk, tagged with the detected content type.
func BuildExtractionMessages(chunkText string, ct constants.ContentType, index, total int) []Message {
	parts := []string{
		"Analyze the following text and convert it into a structured JSON format.",
		"Content type detected: " + string(ct) + ".",
		"Extract the key information and organize it logically with meaningful keys.",
		"Group related items into nested objects and use arrays for lists of similar items.",
		"Preserve names, dates, numbers and amounts exactly as written.",
		"Never output null. If a value is not present, omit the key.",
	}
	if total > 1 {
		parts = append(parts, fmt.Sprintf("This is part %d of %d of a longer text; structure only this part.", index+1, total))
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n\nText:\n")
	b.WriteString(chunkText)
	b.WriteString("\n\nReturn ONLY the JSON object.")

	return []Message{
		{Role: RoleSystem, Content: extractionSystemPrompt},
		{Role: RoleUser, Content: b.String()},
	}
}

// BuildSummaryMessages asks for a short prose summary of text.
func BuildSummaryMessages(text string) []Message {
	return []Message{
		{Role: RoleSystem, Content: "You are a helpful assistant that writes concise, factual summaries."},
		{Role: RoleUser, Content: "Provide a concise 2-3 sentence summary of the following text:\n\n" + text},
	}
}
