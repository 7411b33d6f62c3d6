package workersai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/llm"
)

func newTestServer(t *testing.T, status int, body string, seen *runRequest, path *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization: got %q", got)
		}
		if path != nil {
			*path = r.URL.Path
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestComplete_OK(t *testing.T) {
	var seen runRequest
	var path string
	srv := newTestServer(t, http.StatusOK, `{"success":true,"result":{"response":"  hello  "}}`, &seen, &path)

	c := NewClient(Config{
		AccountID: "acct",
		APIToken:  "tok",
		BaseURL:   srv.URL + "/accounts/{account_id}/ai/run/{model}",
		Model:     "@cf/test/model",
		MaxTokens: 128,
	}, nil).WithHTTPClient(srv.Client())

	temp := float32(0.3)
	got, err := c.Complete(context.Background(), llm.CompletionRequest{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
		Temperature: &temp,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "hello" {
		t.Errorf("content: got %q, want %q", got, "hello")
	}
	if path != "/accounts/acct/ai/run/@cf/test/model" {
		t.Errorf("path: got %q", path)
	}
	if seen.MaxTokens != 128 || seen.Temperature != 0.3 || len(seen.Messages) != 1 {
		t.Errorf("request body: %+v", seen)
	}
}

func TestComplete_Temperature(t *testing.T) {
	zero := float32(0)
	tests := []struct {
		name string
		req  *float32
		want string
	}{
		{"unset uses config", nil, "0.7"},
		{"explicit zero is sent", &zero, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]json.RawMessage
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewDecoder(r.Body).Decode(&body)
				_, _ = w.Write([]byte(`{"success":true,"result":{"response":"ok"}}`))
			}))
			defer srv.Close()

			c := NewClient(Config{AccountID: "a", APIToken: "tok", BaseURL: srv.URL + "/{model}", Temperature: 0.7}, nil).
				WithHTTPClient(srv.Client())
			if _, err := c.Complete(context.Background(), llm.CompletionRequest{Temperature: tt.req}); err != nil {
				t.Fatalf("complete: %v", err)
			}
			if got := string(body["temperature"]); got != tt.want {
				t.Errorf("temperature: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComplete_MissingCredentials(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	for _, cfg := range []Config{
		{APIToken: "tok", BaseURL: srv.URL + "/{model}"},
		{AccountID: "acct", BaseURL: srv.URL + "/{model}"},
		{AccountID: "  ", APIToken: "  ", BaseURL: srv.URL + "/{model}"},
	} {
		_, err := NewClient(cfg, nil).Complete(context.Background(), llm.CompletionRequest{})
		if !errors.Is(err, llm.ErrMissingCredentials) {
			t.Errorf("cfg %+v: got %v, want ErrMissingCredentials", cfg, err)
		}
		if !errors.Is(err, common.ErrUnavailable) {
			t.Errorf("cfg %+v: %v should read as unavailable", cfg, err)
		}
	}
	if hits.Load() != 0 {
		t.Errorf("server was called %d times", hits.Load())
	}
}

func TestComplete_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"non-2xx", http.StatusUnauthorized, `{"success":false,"errors":[{"code":10000,"message":"Authentication error"}]}`, "Authentication error"},
		{"unsuccessful", http.StatusOK, `{"success":false,"errors":[{"code":5006,"message":"bad input"}]}`, "bad input"},
		{"malformed", http.StatusOK, `not json`, "decode response"},
		{"empty", http.StatusOK, `{"success":true,"result":{"response":"   "}}`, "empty completion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body, nil, nil)
			c := NewClient(Config{AccountID: "a", APIToken: "tok", BaseURL: srv.URL + "/{model}"}, nil)
			_, err := c.Complete(context.Background(), llm.CompletionRequest{})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
