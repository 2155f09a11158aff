package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vmunix/bingeworthy/internal/metrics"
)

const (
	defaultHFBaseURL = "https://api-inference.huggingface.co"
	defaultHFModel   = "gpt2"
)

// GenerateTimeout bounds one inference call.
const GenerateTimeout = 12 * time.Second

// maxResponseBytes caps the inference response; a suggestion reply is a few
// hundred bytes.
const maxResponseBytes = 1 << 20

// HuggingFaceProvider calls the Hugging Face inference API.
type HuggingFaceProvider struct {
	token      string
	baseURL    string
	model      string
	params     Parameters
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// HFOption configures a HuggingFaceProvider.
type HFOption func(*HuggingFaceProvider)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) HFOption {
	return func(p *HuggingFaceProvider) {
		p.baseURL = strings.TrimRight(url, "/")
	}
}

// WithModel selects the model; an empty name keeps gpt2.
func WithModel(model string) HFOption {
	return func(p *HuggingFaceProvider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) HFOption {
	return func(p *HuggingFaceProvider) {
		p.httpClient = hc
	}
}

// WithMetrics counts outbound calls on m.
func WithMetrics(m *metrics.Metrics) HFOption {
	return func(p *HuggingFaceProvider) {
		p.metrics = m
	}
}

// NewHuggingFaceProvider creates a provider authenticated with token.
func NewHuggingFaceProvider(token string, opts ...HFOption) *HuggingFaceProvider {
	p := &HuggingFaceProvider{
		token:      token,
		baseURL:    defaultHFBaseURL,
		model:      defaultHFModel,
		params:     DefaultParameters,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsConfigured reports whether a token is set.
func (p *HuggingFaceProvider) IsConfigured() bool {
	return p != nil && p.token != ""
}

type generateRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters Parameters `json:"parameters"`
}

// Generate sends prompt to the model. The API answers either with an array
// of {generated_text} objects or a single object; both are accepted.
func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt string) (_ string, err error) {
	if !p.IsConfigured() {
		return "", ErrNotConfigured
	}
	defer func() { p.metrics.Upstream("textgen", err) }()

	ctx, cancel := context.WithTimeout(ctx, GenerateTimeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Inputs: prompt, Parameters: p.params})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/models/"+p.model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API error: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if len(data) > maxResponseBytes {
		return "", fmt.Errorf("read response: exceeds %d bytes", maxResponseBytes)
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("decode response: invalid JSON")
	}

	result := gjson.ParseBytes(data)
	if result.IsArray() {
		result = result.Get("0")
	}
	return result.Get("generated_text").String(), nil
}
