// Package gemini implements oracle.Oracle against the Gemini REST API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type Client struct {
	client *resty.Client
	apiKey string
	model  string
	log    zerolog.Logger
}

// New creates a Gemini client. baseURL falls back to the public endpoint
// when empty so tests can point at a local server.
func New(apiKey, model, baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	return &Client{client: c, apiKey: apiKey, model: model, log: log}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Complete sends the prompt as a single user turn and returns the first
// candidate's text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini: API key not configured")
	}
	if prompt == "" {
		return "", fmt.Errorf("gemini: empty prompt")
	}

	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(&reqBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		var gr generateResponse
		if jsonErr := json.Unmarshal(resp.Body(), &gr); jsonErr == nil && gr.Error != nil {
			return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode(), gr.Error.Message)
		}
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return "", fmt.Errorf("gemini decode: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	c.log.Debug().Int("prompt_len", len(prompt)).Int("response_len", len(text)).Msg("gemini completion")
	return text, nil
}

// Healthy reports whether the client has credentials. It does not spend a
// completion on every health probe.
func (c *Client) Healthy(ctx context.Context) error {
	if c.apiKey == "" {
		return fmt.Errorf("gemini: API key not configured")
	}
	return nil
}

// SetBaseURL repoints the client; used by tests.
func (c *Client) SetBaseURL(u string) { c.client.SetBaseURL(u) }
