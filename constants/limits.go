package constants

// Input limits enforced before any analysis work starts.
const (
	MaxInputChars = 50000
	MinWordCount  = 5
)

// Extraction defaults.
const (
	DefaultChunkSize     = 3500
	DefaultMaxChunks     = 2
	SummaryInputChars    = 2000
	DefaultFieldMaxDepth = 3
	ChunkBreakRatio      = 0.7
)

// Validation messages returned verbatim to callers.
const (
	MsgNoText   = "No text provided for analysis"
	MsgTooShort = "Text is too short for meaningful analysis"
	MsgTooLong  = "Text is too long. Please limit to 50,000 characters or less."

	MsgUnexpected = "An unexpected error occurred during text analysis"
)

// Placeholder summaries used when the generative service cannot produce one.
const (
	SummaryUnavailable = "Unable to generate summary"
	SummaryFailed      = "Summary generation failed"
)
