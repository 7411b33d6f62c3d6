package workersai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/llm"
)

type runRequest struct {
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

type runResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Response string `json:"response"`
	} `json:"result"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Complete implements llm.Client. Without credentials it fails before any
// network I/O.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	rid := common.RequestIDFromContext(ctx)
	if !c.hasCredentials() {
		c.logger.Warn("llm.complete.no_credentials", "req_id", rid)
		return "", llm.ErrMissingCredentials
	}

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}
	temp := c.cfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}

	start := time.Now()
	c.logger.Info("llm.complete.start",
		"req_id", rid,
		"model", model,
		"temp", temp,
		"max_tokens", maxTokens,
		"messages", len(req.Messages),
	)

	body := runRequest{Messages: req.Messages, MaxTokens: maxTokens, Temperature: temp}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIToken}

	raw, status, err := llm.SendJSON(ctx, c.http, c.endpoint(model), body, headers, c.logger)
	if err != nil {
		var se *llm.StatusError
		if errors.As(err, &se) {
			if msg := firstError(raw); msg != "" {
				err = fmt.Errorf("%w: %s", err, msg)
			}
		}
		c.logger.Error("llm.complete.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var rr runResponse
	if err := json.Unmarshal(raw, &rr); err != nil {
		c.logger.Error("llm.complete.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("decode response: %w", err)
	}
	if !rr.Success {
		msg := firstError(raw)
		c.logger.Error("llm.complete.unsuccessful",
			"req_id", rid, "error", msg,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("service reported failure: %s", msg)
	}

	content := strings.TrimSpace(rr.Result.Response)
	if content == "" {
		c.logger.Warn("llm.complete.empty", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return "", llm.ErrEmptyCompletion
	}

	c.logger.Info("llm.complete.ok",
		"req_id", rid,
		"chars", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

func firstError(raw []byte) string {
	var rr runResponse
	if err := json.Unmarshal(raw, &rr); err != nil || len(rr.Errors) == 0 {
		return ""
	}
	return rr.Errors[0].Message
}
