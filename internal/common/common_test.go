package common

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestValidator_FirstFailureWins(t *testing.T) {
	rules := []ValidationRule{
		Required("empty"),
		MinWords(5, "short"),
		MaxLength(30, "long"),
	}
	tests := []struct {
		in   string
		want string
	}{
		{"", "empty"},
		{"   \n\t ", "empty"},
		{"a b c", "short"},
		{"one two three four five six seven", "long"},
		{"one two three four five", ""},
	}
	for _, tt := range tests {
		err := NewValidator().Field("text", tt.in, rules...).Error()
		if tt.want == "" {
			if err != nil {
				t.Errorf("%q: unexpected error %v", tt.in, err)
			}
			continue
		}
		var ae *AppError
		if !errors.As(err, &ae) {
			t.Fatalf("%q: got %v, want AppError", tt.in, err)
		}
		if ae.Message != tt.want || ae.Code != CodeValidation {
			t.Errorf("%q: got (%s, %q), want %q", tt.in, ae.Code, ae.Message, tt.want)
		}
		if !IsValidation(err) || !errors.Is(err, ErrValidation) {
			t.Errorf("%q: validation error not recognised", tt.in)
		}
	}
}

func TestMaxLength_CountsRunes(t *testing.T) {
	rule := MaxLength(3, "long")
	if err := rule("f", "äöü"); err != nil {
		t.Errorf("3 runes should pass, got %v", err)
	}
	if err := rule("f", "äöüß"); err == nil {
		t.Errorf("4 runes should fail")
	}
}

func TestToStatus(t *testing.T) {
	st, _ := status.FromError(ToStatus(NewAppError(CodeValidation, "Text is too short", ErrValidation)))
	if st.Code() != codes.InvalidArgument || st.Message() != "Text is too short" {
		t.Errorf("validation: got %v %q", st.Code(), st.Message())
	}
	st, _ = status.FromError(ToStatus(errors.New("boom")))
	if st.Code() != codes.Internal {
		t.Errorf("plain error: got %v", st.Code())
	}
	st, _ = status.FromError(ToStatus(NewAppError(CodeInternal, "An unexpected error occurred", ErrInternal)))
	if st.Code() != codes.Internal || st.Message() != "An unexpected error occurred" {
		t.Errorf("internal: got %v %q", st.Code(), st.Message())
	}
	st, _ = status.FromError(ToStatus(WrapError(ErrUnavailable, "llm")))
	if st.Code() != codes.Unavailable || st.Message() != "llm: service unavailable" {
		t.Errorf("unavailable: got %v %q", st.Code(), st.Message())
	}
	st, _ = status.FromError(ToStatus(NewAppError(CodeAnalysis, "no backend", ErrUnavailable)))
	if st.Code() != codes.Unavailable || st.Message() != "no backend" {
		t.Errorf("wrapped unavailable: got %v %q", st.Code(), st.Message())
	}
	if WrapError(nil, "ignored") != nil {
		t.Errorf("WrapError(nil) should be nil")
	}
	if ToStatus(nil) != nil {
		t.Errorf("nil error should map to nil")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"AI_ACCOUNT_ID", "AI_API_TOKEN", "AI_BASE_URL", "CHUNK_SIZE", "MAX_CHUNKS", "PIPELINE_PARALLEL"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.LLM.HasCredentials() {
		t.Errorf("no credentials expected")
	}
	if cfg.Pipeline.ChunkSize != 3500 || cfg.Pipeline.MaxChunks != 2 || !cfg.Pipeline.Parallel {
		t.Errorf("pipeline defaults: %+v", cfg.Pipeline)
	}
	if !strings.Contains(cfg.LLM.BaseURL, "{model}") {
		t.Errorf("base url: %q", cfg.LLM.BaseURL)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AI_ACCOUNT_ID", "acct")
	t.Setenv("AI_API_TOKEN", "tok")
	t.Setenv("MAX_CHUNKS", "4")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("PIPELINE_PARALLEL", "false")
	cfg := LoadConfig()
	if !cfg.LLM.HasCredentials() || cfg.Pipeline.MaxChunks != 4 || cfg.Pipeline.Parallel {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.LLM.Timeout.Seconds() != 3 {
		t.Errorf("timeout: got %v", cfg.LLM.Timeout)
	}

	t.Setenv("MAX_CHUNKS", "0")
	if err := LoadConfig().Validate(); err == nil {
		t.Errorf("MAX_CHUNKS=0 should fail validation")
	}
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" {
		t.Errorf("empty context should carry no id")
	}
	if got := RequestIDFromContext(WithRequestID(ctx, "abc")); got != "abc" {
		t.Errorf("request id: got %q", got)
	}
}
