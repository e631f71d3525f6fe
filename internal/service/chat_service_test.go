package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"deepsea-be/internal/dto"
	"deepsea-be/pkg/ai/mode"
	"deepsea-be/pkg/ai/pipeline"
	"deepsea-be/pkg/ai/prompt"
	"deepsea-be/pkg/apperror"
	"deepsea-be/pkg/llm"
	"deepsea-be/pkg/telemetry"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

const (
	planJSON   = `{"task_type":"analysis","complexity_level":"medium"}`
	reviewJSON = `{"consistency":0.9,"correctness":0.9,"factual_reliability":0.9,"completeness":0.9,"confidence_score":0.9}`
)

// scriptedProvider returns canned responses: one SSE stream for ChatStream
// and an ordered list for Chat.
type scriptedProvider struct {
	name        string
	streamBody  string
	chats       []string
	chatCalls   int
	streamCalls int
}

func (s *scriptedProvider) Name() string { return s.name }

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	i := s.chatCalls
	s.chatCalls++
	if i < len(s.chats) {
		return s.chats[i], nil
	}
	return "", errors.New("no scripted chat response")
}

func (s *scriptedProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (io.ReadCloser, error) {
	s.streamCalls++
	return io.NopCloser(strings.NewReader(s.streamBody)), nil
}

func newTestChatService(provider *scriptedProvider, allowAutoHardcore bool) IChatService {
	policy := mode.DefaultPolicy()
	policy.AllowAutoHardcore = allowAutoHardcore
	resolver := mode.NewResolver(policy)

	assembler := prompt.NewAssembler(prompt.DefaultConfig())
	logger := log.New(io.Discard, "", 0)

	direct := pipeline.NewDirectPipeline(provider, assembler, logger)
	hardcore := pipeline.NewHardcorePipeline(provider, provider, telemetry.NopRecorder{}, logger, pipeline.DefaultHardcoreConfig())

	return NewChatService(resolver, direct, hardcore, validator.New(), nopLogger{})
}

func TestSendChatStandardReturnsStream(t *testing.T) {
	provider := &scriptedProvider{name: "deepseek", streamBody: "data: [DONE]\n\n"}
	svc := newTestChatService(provider, false)

	outcome, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		Mode:     "standard",
		Messages: []dto.ChatMessageDTO{{Role: "user", Content: "explain goroutines"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, mode.ModeStandard, outcome.Mode)
	assert.NotNil(t, outcome.Stream)
	assert.Empty(t, outcome.Text)
	outcome.Stream.Close()

	assert.Equal(t, 1, provider.streamCalls)
	assert.Equal(t, 0, provider.chatCalls)
}

func TestSendChatHardcoreReturnsText(t *testing.T) {
	provider := &scriptedProvider{
		name:  "deepseek",
		chats: []string{planJSON, "the synthesized answer", reviewJSON},
	}
	svc := newTestChatService(provider, false)

	outcome, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		Mode:     "hardcore",
		Messages: []dto.ChatMessageDTO{{Role: "user", Content: "design a system"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, mode.ModeHardcore, outcome.Mode)
	assert.Nil(t, outcome.Stream)
	assert.Equal(t, "the synthesized answer", outcome.Text)

	assert.Equal(t, 3, provider.chatCalls)
	assert.Equal(t, 0, provider.streamCalls)
}

func TestSendChatAutoResolvesLite(t *testing.T) {
	provider := &scriptedProvider{name: "deepseek", streamBody: "data: [DONE]\n\n"}
	svc := newTestChatService(provider, false)

	outcome, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		Messages: []dto.ChatMessageDTO{{Role: "user", Content: "DeepSea란 뭐야?"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, mode.ModeLite, outcome.Mode)
	outcome.Stream.Close()
}

func TestSendChatAutoHardcoreCapped(t *testing.T) {
	provider := &scriptedProvider{
		name:       "deepseek",
		streamBody: "data: [DONE]\n\n",
		chats:      []string{planJSON, "answer", reviewJSON},
	}

	// Capped: escalation keyword resolves to standard, served as a stream.
	svc := newTestChatService(provider, false)
	outcome, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		Messages: []dto.ChatMessageDTO{{Role: "user", Content: "이 시스템 아키텍처 설계해줘"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, mode.ModeStandard, outcome.Mode)
	outcome.Stream.Close()

	// Allowed: the same input runs the hardcore pipeline.
	svc = newTestChatService(provider, true)
	outcome, err = svc.SendChat(context.Background(), &dto.SendChatRequest{
		Messages: []dto.ChatMessageDTO{{Role: "user", Content: "이 시스템 아키텍처 설계해줘"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, mode.ModeHardcore, outcome.Mode)
	assert.Equal(t, "answer", outcome.Text)
}

func TestSendChatValidation(t *testing.T) {
	provider := &scriptedProvider{name: "deepseek"}
	svc := newTestChatService(provider, false)

	tests := []struct {
		name string
		req  *dto.SendChatRequest
	}{
		{"empty messages", &dto.SendChatRequest{Messages: []dto.ChatMessageDTO{}}},
		{"bad role", &dto.SendChatRequest{Messages: []dto.ChatMessageDTO{{Role: "robot", Content: "hi"}}}},
		{"empty content", &dto.SendChatRequest{Messages: []dto.ChatMessageDTO{{Role: "user", Content: ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendChat(context.Background(), tt.req)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
		})
	}
}

func TestSendChatUnknownMode(t *testing.T) {
	provider := &scriptedProvider{name: "deepseek"}
	svc := newTestChatService(provider, false)

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		Mode:     "turbo",
		Messages: []dto.ChatMessageDTO{{Role: "user", Content: "hi"}},
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
