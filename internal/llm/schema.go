package llm

// ChunkResponseSchema returns the JSON Schema every parsed chunk response
// must satisfy: a non-empty object with non-empty keys and no null values
// at the top level. The shape beyond that is up to the model.
func ChunkResponseSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"minProperties":        1,
		"propertyNames":        map[string]any{"minLength": 1},
		"additionalProperties": map[string]any{"not": map[string]any{"type": "null"}},
	}
}
