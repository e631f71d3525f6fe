package pipeline

import (
	"context"
	"io"
	"log"
	"time"

	"deepsea-be/pkg/ai/mode"
	"deepsea-be/pkg/ai/prompt"
	"deepsea-be/pkg/llm"
)

// Per-mode generation parameters for the direct path. Named here, not
// inlined, so request-budget math stays in one place.
const (
	liteMaxTokens     = 512
	standardMaxTokens = 2048
	directTemperature = 0.7
	directTimeout     = 60 * time.Second
)

// DirectResult contains the pass-through stream for lite/standard modes.
type DirectResult struct {
	Stream io.ReadCloser
}

// DirectPipeline serves lite and standard modes with a single streaming
// call to the primary provider.
type DirectPipeline struct {
	provider  llm.Provider
	assembler *prompt.Assembler
	logger    *log.Logger
}

func NewDirectPipeline(provider llm.Provider, assembler *prompt.Assembler, logger *log.Logger) *DirectPipeline {
	return &DirectPipeline{
		provider:  provider,
		assembler: assembler,
		logger:    logger,
	}
}

// Execute assembles the conversation for the mode and opens the upstream
// stream. Fails fast before any bytes are written to the client.
func (p *DirectPipeline) Execute(
	ctx context.Context,
	m mode.Mode,
	history []llm.Message,
	model string,
) (*DirectResult, error) {

	messages := p.assembler.Build(m, history)

	maxTokens := standardMaxTokens
	if m == mode.ModeLite {
		maxTokens = liteMaxTokens
	}

	opts := []llm.Option{
		llm.WithTemperature(directTemperature),
		llm.WithMaxTokens(maxTokens),
		llm.WithTimeout(directTimeout),
	}
	if model != "" {
		opts = append(opts, llm.WithModel(model))
	}

	p.logger.Printf("[DIRECT] Executing %s mode with %d messages", m, len(messages))

	stream, err := p.provider.ChatStream(ctx, messages, opts...)
	if err != nil {
		p.logger.Printf("[DIRECT] Stream error: %v", err)
		return nil, err
	}

	return &DirectResult{Stream: stream}, nil
}
