package workersai

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joseph-ayodele/text-structurer/internal/common"
)

// Config for the hosted inference client.
type Config struct {
	AccountID   string        // substituted for {account_id}
	APIToken    string        // bearer token
	BaseURL     string        // template, default common.DefaultBaseURL
	Model       string        // substituted for {model}
	MaxTokens   int           // generation cap
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

// ConfigFromCommon maps the application LLM settings onto a client Config.
func ConfigFromCommon(c common.LLMConfig) Config {
	return Config{
		AccountID:   c.AccountID,
		APIToken:    c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = common.DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "@cf/meta/llama-3.1-8b-instruct"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

func (c *Client) hasCredentials() bool {
	return strings.TrimSpace(c.cfg.AccountID) != "" && strings.TrimSpace(c.cfg.APIToken) != ""
}

// endpoint renders the URL template for model.
func (c *Client) endpoint(model string) string {
	return strings.NewReplacer(
		"{account_id}", c.cfg.AccountID,
		"{model}", model,
	).Replace(c.cfg.BaseURL)
}
