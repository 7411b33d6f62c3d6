package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joseph-ayodele/text-structurer/internal/common"
)

func TestSendJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content-type: got %q", got)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("custom header: got %q", got)
		}
		b, _ := io.ReadAll(r.Body)
		if string(b) != `{"k":"v"}` {
			t.Errorf("body: got %s", b)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	ctx := common.WithRequestID(context.Background(), "rid-1")
	raw, status, err := SendJSON(ctx, nil, srv.URL, map[string]string{"k": "v"}, map[string]string{"X-Test": "1"}, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if status != http.StatusOK || string(raw) != `{"ok":true}` {
		t.Errorf("got %d %s", status, raw)
	}
}

func TestSendJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	raw, status, err := SendJSON(context.Background(), srv.Client(), srv.URL, struct{}{}, nil, nil)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadGateway {
		t.Fatalf("got %v, want StatusError 502", err)
	}
	if status != http.StatusBadGateway || len(raw) == 0 {
		t.Errorf("status %d body %q", status, raw)
	}
}

func TestClientFunc(t *testing.T) {
	var c Client = ClientFunc(func(ctx context.Context, req CompletionRequest) (string, error) {
		return req.Messages[0].Content, nil
	})
	got, err := c.Complete(context.Background(), CompletionRequest{Messages: []Message{{Content: "echo"}}})
	if err != nil || got != "echo" {
		t.Errorf("got %q %v", got, err)
	}
}
