package gemini

import (
	"context"
	"fmt"
	"time"

	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini generateContent REST endpoint. The decoded
// response is returned untyped: the normalization pipeline owns the job of
// digging text out of whatever shape comes back.
type Client struct {
	http *resty.Client
	cfg  config.GeminiConfig
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// NewClient creates a Gemini client from configuration.
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Gemini.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient, cfg: cfg.Gemini}
}

// Generate sends the prompt with the given output budget. Returns the decoded
// response body plus its raw JSON, which the caller may cache and re-decode.
// Deterministic decoding of recipe JSON wants temperature 0.
func (c *Client) Generate(ctx context.Context, prompt string, maxOutputTokens int) (any, string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.cfg.APIKey).
		SetBody(reqBody).
		Post(fmt.Sprintf("/models/%s:generateContent", c.cfg.Model))

	requestID := common.GenerateUUID()
	common.LogAICall(time.Since(start), err, requestID)
	if err != nil {
		return nil, "", fmt.Errorf("gemini request: %w", err)
	}

	body := resp.Body()
	if resp.IsError() {
		common.LogError("gemini returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("model", c.cfg.Model),
			zap.Int("body_length", len(body)),
		)
		return nil, "", fmt.Errorf("gemini error (status %d)", resp.StatusCode())
	}

	decoded, err := DecodeBody(string(body))
	if err != nil {
		return nil, "", fmt.Errorf("decode gemini response: %w", err)
	}

	common.LogDebug("gemini response received",
		zap.String("model", c.cfg.Model),
		zap.Int("body_length", len(body)),
		zap.Int("max_output_tokens", maxOutputTokens),
	)
	return decoded, string(body), nil
}

// DecodeBody turns a raw response body back into the untyped shape Generate
// returns. Cached bodies go through the same path as fresh ones.
func DecodeBody(body string) (any, error) {
	var decoded any
	if err := common.ParseJSON(body, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
