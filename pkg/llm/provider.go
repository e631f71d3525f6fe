package llm

import (
	"context"
	"io"
	"time"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string        // Override default model
	Timeout     time.Duration // Per-call budget enforced via context cancellation
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// Provider defines the contract for any LLM backend.
//
// Both operations must verify credentials before touching the network and
// must report timeouts with apperror.ErrTimeout so callers can distinguish
// a slow provider from a broken one.
type Provider interface {
	// Name identifies the provider in logs and telemetry (e.g. "deepseek").
	Name() string

	// Chat sends a chat history to the model and returns the full response text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream sends a chat history and returns the provider-native SSE
	// byte stream. Fails fast (before returning the stream) on a non-2xx
	// status, surfacing the response body as error detail. The caller owns
	// the returned stream and must Close it.
	ChatStream(ctx context.Context, history []Message, options ...Option) (io.ReadCloser, error)
}
