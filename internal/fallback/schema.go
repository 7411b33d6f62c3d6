package fallback

// Schema returns the JSON Schema (draft 2020-12 subset) of the document
// produced by Analyze.
func Schema() map[string]any {
	intProp := map[string]any{"type": "integer", "minimum": 0}
	strList := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

	return map[string]any{
		"type":     "object",
		"required": []string{"content_analysis", "extracted_entities", "key_terms", "structure", "metadata"},
		"properties": map[string]any{
			"content_analysis": map[string]any{
				"type":     "object",
				"required": []string{"word_count", "sentence_count", "paragraph_count", "average_sentence_length", "reading_time_minutes"},
				"properties": map[string]any{
					"word_count":              intProp,
					"sentence_count":          intProp,
					"paragraph_count":         intProp,
					"average_sentence_length": intProp,
					"reading_time_minutes":    intProp,
				},
			},
			"extracted_entities": map[string]any{
				"type":     "object",
				"required": []string{"emails", "urls", "dates", "numbers"},
				"properties": map[string]any{
					"emails":  strList,
					"urls":    strList,
					"dates":   strList,
					"numbers": map[string]any{"type": "array", "maxItems": maxNumbers, "items": map[string]any{"type": "string"}},
				},
			},
			"key_terms": map[string]any{
				"type":     "array",
				"maxItems": maxKeyTerms,
				"items": map[string]any{
					"type":     "object",
					"required": []string{"word", "count"},
					"properties": map[string]any{
						"word":  map[string]any{"type": "string", "minLength": minTermLength},
						"count": map[string]any{"type": "integer", "minimum": 1},
					},
				},
			},
			"structure": map[string]any{
				"type":     "object",
				"required": []string{"paragraphs"},
				"properties": map[string]any{
					"paragraphs": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []string{"index", "word_count", "preview"},
							"properties": map[string]any{
								"index":      map[string]any{"type": "integer", "minimum": 1},
								"word_count": intProp,
								"preview":    map[string]any{"type": "string"},
							},
						},
					},
				},
			},
			"metadata": map[string]any{
				"type":     "object",
				"required": []string{"analysis_method", "processing_timestamp", "content_type_detected"},
				"properties": map[string]any{
					"analysis_method":       map[string]any{"const": "fallback_rule_based"},
					"processing_timestamp":  map[string]any{"type": "string", "minLength": 1},
					"content_type_detected": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	}
}
