package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"deepsea-be/pkg/apperror"
	"deepsea-be/pkg/llm"
)

const defaultBaseURL = "https://api.deepseek.com"

// DeepSeekProvider is the primary, low-latency chat provider.
type DeepSeekProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// Ensure DeepSeekProvider implements Provider
var _ llm.Provider = &DeepSeekProvider{}

func NewDeepSeekProvider(apiKey, baseURL, model string) *DeepSeekProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &DeepSeekProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

func (p *DeepSeekProvider) Name() string {
	return "deepseek"
}

// --- Request/Response structs (OpenAI-compatible wire format) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *DeepSeekProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	resp, cancel, err := p.send(ctx, history, false, options...)
	if err != nil {
		return "", err
	}
	defer cancel()
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperror.Timeout("deepseek response timed out", err)
		}
		return "", fmt.Errorf("read deepseek response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("decode deepseek response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", apperror.Upstream("empty choices from deepseek api", nil)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (p *DeepSeekProvider) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (io.ReadCloser, error) {
	resp, cancel, err := p.send(ctx, history, true, options...)
	if err != nil {
		return nil, err
	}
	// Cancel fires when the caller closes the stream, releasing the timeout context.
	return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
}

// send issues the HTTP call shared by both operations. The returned cancel
// must be called once the body has been consumed.
func (p *DeepSeekProvider) send(ctx context.Context, history []llm.Message, stream bool, options ...llm.Option) (*http.Response, context.CancelFunc, error) {
	if p.apiKey == "" {
		return nil, nil, apperror.Configuration("DEEPSEEK_API_KEY not configured")
	}

	opts := &llm.Options{
		Model:       p.model,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
	}
	for _, o := range options {
		o(opts)
	}

	reqBody := chatRequest{
		Model:       opts.Model,
		Messages:    history,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Stream:      stream,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal deepseek request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, opts.Timeout)

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(callCtx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("create deepseek request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, apperror.Timeout("deepseek request timed out", err)
		}
		return nil, nil, apperror.Upstream("deepseek request failed", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		return nil, nil, apperror.Upstream(
			fmt.Sprintf("deepseek api error (status %d): %s", resp.StatusCode, string(bodyBytes)), nil)
	}

	return resp, cancel, nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
