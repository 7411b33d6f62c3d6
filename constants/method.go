package constants

// AnalysisMethod records which path produced a structured document.
type AnalysisMethod string

// Stable values (these exact strings appear in result metadata).
const (
	MethodFallback AnalysisMethod = "fallback_rule_based" // deterministic analyzer
	MethodLLM      AnalysisMethod = "llm_structured"      // generative service output
)
