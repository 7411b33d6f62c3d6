package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/llm"
)

func TestSummarize(t *testing.T) {
	var seen string
	client := llm.ClientFunc(func(_ context.Context, req llm.CompletionRequest) (string, error) {
		seen = req.Messages[len(req.Messages)-1].Content
		return "  A short summary.  ", nil
	})
	s := New(client, DefaultOptions(), nil)

	long := strings.Repeat("é", 2500)
	if got := s.Summarize(context.Background(), long); got != "A short summary." {
		t.Errorf("summary: got %q", got)
	}
	if n := strings.Count(seen, "é"); n != 2000 {
		t.Errorf("prompt carried %d runes of input, want 2000", n)
	}
}

func TestSummarize_Placeholders(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
		want   string
	}{
		{"missing credentials", llm.ClientFunc(func(context.Context, llm.CompletionRequest) (string, error) {
			return "", llm.ErrMissingCredentials
		}), constants.SummaryUnavailable},
		{"network", llm.ClientFunc(func(context.Context, llm.CompletionRequest) (string, error) {
			return "", errors.New("connection refused")
		}), constants.SummaryUnavailable},
		{"blank response", llm.ClientFunc(func(context.Context, llm.CompletionRequest) (string, error) {
			return " \n ", nil
		}), constants.SummaryFailed},
		{"panic", llm.ClientFunc(func(context.Context, llm.CompletionRequest) (string, error) {
			panic("bad")
		}), constants.SummaryFailed},
		{"nil client", nil, constants.SummaryUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.client, DefaultOptions(), nil).Summarize(context.Background(), "text"); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo", 2); got != "hé" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := Truncate(strings.Repeat("日", 10), 3); utf8.RuneCountInString(got) != 3 {
		t.Errorf("got %q", got)
	}
}
