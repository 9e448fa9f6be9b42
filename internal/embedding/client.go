// Package embedding provides the semantic half of skill matching: an
// OpenAI-compatible embedding client and pure vector helpers for
// mean-pooling and cosine similarity.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	einoembedding "github.com/cloudwego/eino/components/embedding"

	"cv-match-go/internal/config"
	"cv-match-go/internal/logger"
)

// ErrUnavailable wraps any failure to reach or use the embedding
// backend. Callers that need the semantic score treat it as fatal for
// the request.
var ErrUnavailable = errors.New("embedding backend unavailable")

const defaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"

// Embedder encodes texts into vectors.
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string, opts ...einoembedding.Option) ([][]float64, error)
	Dimensions() int
}

// Client calls an OpenAI-compatible embeddings endpoint. It implements
// the eino embedding.Embedder contract.
type Client struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an embedding client from configuration. The API key
// is required.
func NewClient(cfg config.EmbeddingConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     cfg.APIKey,
		model:      model,
		dimensions: cfg.Dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}, nil
}

// Dimensions returns the configured vector width, 0 when the backend
// default is used.
func (c *Client) Dimensions() int {
	return c.dimensions
}

type embeddingRequest struct {
	Input      interface{} `json:"input"` // string or []string
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Model string          `json:"model"`
	Error *apiError       `json:"error,omitempty"`
}

type embeddingData struct {
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// EmbedStrings encodes the given texts. An empty input returns an
// empty result without a network call.
func (c *Client) EmbedStrings(ctx context.Context, texts []string, opts ...einoembedding.Option) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	options := &einoembedding.Options{}
	einoembedding.GetCommonOptions(options, opts...)
	model := c.model
	if options.Model != nil && *options.Model != "" {
		model = *options.Model
	}

	var input interface{}
	if len(texts) == 1 {
		input = texts[0]
	} else {
		input = texts
	}
	reqBody := embeddingRequest{Input: input, Model: model}
	if c.dimensions > 0 {
		reqBody.Dimensions = c.dimensions
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%w: status %d, type %s, code %s: %s",
				ErrUnavailable, resp.StatusCode, apiErr.Type, apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnavailable, parsed.Error.Message, parsed.Error.Code)
	}

	vectors := make([][]float64, len(parsed.Data))
	for i, entry := range parsed.Data {
		vectors[i] = entry.Embedding
	}

	logger.Debug().
		Int("texts", len(texts)).
		Str("model", parsed.Model).
		Msg("texts embedded")

	return vectors, nil
}
