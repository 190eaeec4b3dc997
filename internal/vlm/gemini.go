package vlm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"

	// Bounded retry policy for transport faults and retryable statuses.
	maxAttempts      = 3
	initialBackoff   = 500 * time.Millisecond
	defaultHTTPLimit = 5 * time.Minute
)

// GeminiClient calls the Gemini generateContent API over HTTP.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// GeminiOption customizes a GeminiClient.
type GeminiOption func(*GeminiClient)

// WithBaseURL overrides the service endpoint, mainly for tests.
func WithBaseURL(url string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = url }
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) GeminiOption {
	return func(c *GeminiClient) { c.httpClient.Timeout = d }
}

// NewGeminiClient creates a client for the given credential and model.
func NewGeminiClient(apiKey, model string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, domain.ConfigError("API key is required", nil)
	}
	if model == "" {
		model = defaultModel
	}

	c := &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPLimit},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// API request/response wire types.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMIMEType string  `json:"response_mime_type,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// GenerateContent sends one prompt-plus-images request and returns the
// model's response text.
func (c *GeminiClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return "", domain.RemoteServiceError("failed to marshal request", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", c.apiKey)
		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		return "", domain.RemoteServiceError("failed to send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", domain.RemoteServiceError(
			fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(bodyBytes)), nil)
	}

	return parseResponse(resp.Body)
}

func (c *GeminiClient) buildRequest(req Request) *generateRequest {
	parts := make([]part, 0, len(req.Images)+1)
	if req.Prompt != "" {
		parts = append(parts, part{Text: req.Prompt})
	}
	for _, img := range req.Images {
		parts = append(parts, part{
			InlineData: &inlineData{MIMEType: img.MIMEType, Data: img.Data},
		})
	}

	cfg := &generationConfig{Temperature: req.Temperature}
	if req.JSONResponse {
		cfg.ResponseMIMEType = "application/json"
	}

	return &generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: cfg,
	}
}

func parseResponse(body io.Reader) (string, error) {
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return "", domain.RemoteServiceError("failed to read response body", err)
	}

	var apiResp generateResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", domain.RemoteServiceError("failed to parse API response", err)
	}
	if len(apiResp.Candidates) == 0 {
		return "", domain.RemoteServiceError("no candidates in API response", nil)
	}

	var text string
	for _, p := range apiResp.Candidates[0].Content.Parts {
		text += p.Text
	}
	if text == "" {
		return "", domain.RemoteServiceError("empty candidate content", nil)
	}
	return text, nil
}

// retryWithBackoff retries the request on transport errors and retryable
// statuses (429, 5xx), up to maxAttempts with doubling delay.
func (c *GeminiClient) retryWithBackoff(ctx context.Context, do func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := do()
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(bodyBytes))
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
