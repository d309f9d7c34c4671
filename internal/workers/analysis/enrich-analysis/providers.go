// internal/workers/analysis/enrich-analysis/providers.go
package enrichanalysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	httpclient "admission-workers/internal/common/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// Provider returns the raw completion text for a prompt. Implementations map
// transport failures to plain errors; the handler treats any error as a
// fallback trigger, never a job failure.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// ==========================
// GenAI HTTP Provider
// ==========================

type genaiProvider struct {
	baseURL    string
	apiKey     string
	maxTokens  int
	maxRetries int
	client     *httpclient.Client
}

func newGenAIProvider(cfg *Config) *genaiProvider {
	return &genaiProvider{
		baseURL:    strings.TrimSuffix(cfg.GenAIBaseURL, "/"),
		apiKey:     cfg.GenAIAPIKey,
		maxTokens:  cfg.MaxTokens,
		maxRetries: cfg.MaxRetries,
		// Zero timeout, the job context bounds the call
		client: httpclient.NewClient(0),
	}
}

func (p *genaiProvider) Name() string { return "genai" }

func (p *genaiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"prompt":     prompt,
		"max_tokens": p.maxTokens,
	}
	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/api/ai/generate", bytes.NewBuffer(body))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		if p.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+p.apiKey)
		}

		resp, lastErr = p.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	if lastErr != nil {
		return "", lastErr
	}
	if resp == nil {
		return "", fmt.Errorf("no successful response after %d attempts", p.maxRetries+1)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if strings.TrimSpace(apiResponse.Text) == "" {
		return "", fmt.Errorf("empty completion")
	}

	return apiResponse.Text, nil
}

// ==========================
// Anthropic Provider
// ==========================

type anthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

func newAnthropicProvider(cfg *Config, opts ...option.RequestOption) *anthropicProvider {
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.AnthropicAPIKey)}, opts...)
	return &anthropicProvider{
		client:    anthropic.NewClient(clientOpts...),
		model:     model,
		maxTokens: cfg.MaxTokens,
	}
}

func (p *anthropicProvider) Name() string { return "anthropic" }

func (p *anthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in completion")
	}

	return sb.String(), nil
}
