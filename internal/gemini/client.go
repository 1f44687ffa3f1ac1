package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nayansarkar10/CompititivePricingAI/internal/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNotInitialized signals that no API credential was available. Callers
// treat it as a recoverable condition and route into their fallback path.
var ErrNotInitialized = errors.New("gemini client not initialized: missing API key")

// APIError is a non-2xx response from the Gemini API. Error() includes the
// numeric status so quota checks can match on "429".
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API returned status %d: %s", e.StatusCode, e.Message)
}

// Part is one text fragment of a content turn
type Part struct {
	Text string `json:"text"`
}

// Content is one conversation turn on the wire
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Request describes one generation call. EnableSearch tags the request
// with the googleSearch tool so the model can ground its answer in live
// web results instead of training data.
type Request struct {
	SystemInstruction string
	Contents          []Content
	EnableSearch      bool
	ResponseMIMEType  string
}

// UserContent wraps a plain text prompt as a single user turn
func UserContent(text string) []Content {
	return []Content{{Role: "user", Parts: []Part{{Text: text}}}}
}

// Client talks to the Gemini generateContent API
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Gemini client. A missing API key yields
// ErrNotInitialized rather than a crash.
func NewClient(cfg *config.GeminiConfig, logger zerolog.Logger) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, ErrNotInitialized
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "gemini").Logger(),
	}, nil
}

type generateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Tools             []tool            `json:"tools,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
}

// GenerateContent issues a single stateless generation request and
// returns the concatenated text of the first candidate. An empty or
// blocked response yields an empty string, not an error; the caller's
// extraction step decides what to do with it.
func (c *Client) GenerateContent(ctx context.Context, req Request) (string, error) {
	payload := generateRequest{Contents: req.Contents}

	if req.SystemInstruction != "" {
		payload.SystemInstruction = &Content{Parts: []Part{{Text: req.SystemInstruction}}}
	}
	if req.EnableSearch {
		payload.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}
	if req.ResponseMIMEType != "" {
		payload.GenerationConfig = &generationConfig{ResponseMIMEType: req.ResponseMIMEType}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Str("model", c.model).Msg("generate request failed")
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("model", c.model).
		Int("status", resp.StatusCode).
		Bool("search", req.EnableSearch).
		Dur("latency", time.Since(start)).
		Msg("generate request completed")

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	var apiResponse generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("failed to decode API response: %w", err)
	}

	if len(apiResponse.Candidates) == 0 {
		return "", nil
	}

	var text strings.Builder
	for _, part := range apiResponse.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}
