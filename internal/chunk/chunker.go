// Package chunk splits long text into bounded, sentence-aligned segments.
package chunk

import (
	"strings"

	"github.com/joseph-ayodele/text-structurer/constants"
)

// Chunk is a contiguous slice of the input. Start and End are rune offsets;
// Raw is the exact slice and Text its trimmed form.
type Chunk struct {
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Raw   string `json:"-"`
	Text  string `json:"text"`
}

// Empty reports whether the chunk holds only whitespace.
func (c Chunk) Empty() bool { return c.Text == "" }

// Split cuts text into chunks of at most maxSize runes. When a window ends
// before the text does, the cut moves back to the later of the last '.' or
// the last blank line, provided that break lies beyond 70% of the window;
// otherwise the window is cut hard. Concatenating Raw over the result
// reproduces text exactly.
func Split(text string, maxSize int) []Chunk {
	if maxSize <= 0 {
		maxSize = constants.DefaultChunkSize
	}

	runes := []rune(text)
	n := len(runes)
	if n <= maxSize {
		return []Chunk{newChunk(0, 0, n, text)}
	}

	minBreak := float64(maxSize) * constants.ChunkBreakRatio
	out := make([]Chunk, 0, n/maxSize+1)
	for cursor := 0; cursor < n; {
		end := min(cursor+maxSize, n)
		if end < n {
			if bp := lastBreak(runes[cursor:end]); bp >= 0 && float64(bp) > minBreak {
				end = cursor + bp + 1
			}
		}
		out = append(out, newChunk(len(out), cursor, end, string(runes[cursor:end])))
		cursor = end
	}
	return out
}

func newChunk(idx, start, end int, raw string) Chunk {
	return Chunk{
		Index: idx,
		Start: start,
		End:   end,
		Raw:   raw,
		Text:  strings.TrimSpace(raw),
	}
}

// lastBreak returns the later of the last '.' and the last "\n\n" in window,
// or -1 when neither occurs.
func lastBreak(window []rune) int {
	period, para := -1, -1
	for i := len(window) - 1; i >= 0; i-- {
		if period < 0 && window[i] == '.' {
			period = i
		}
		if para < 0 && i+1 < len(window) && window[i] == '\n' && window[i+1] == '\n' {
			para = i
		}
		if period >= 0 && para >= 0 {
			break
		}
	}
	return max(period, para)
}

// Texts returns the trimmed text of each non-empty chunk.
func Texts(chunks []Chunk) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if !c.Empty() {
			out = append(out, c.Text)
		}
	}
	return out
}
