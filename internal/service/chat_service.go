package service

import (
	"context"
	"io"

	"deepsea-be/internal/dto"
	"deepsea-be/internal/pkg/logger"
	"deepsea-be/pkg/ai/mode"
	"deepsea-be/pkg/ai/pipeline"
	"deepsea-be/pkg/apperror"
	"deepsea-be/pkg/llm"

	"github.com/go-playground/validator/v10"
)

// ChatOutcome is the unified result of a chat request. Exactly one of
// Stream (direct pass-through) or Text (synthesized pipeline answer) is set.
type ChatOutcome struct {
	Mode   mode.Mode
	Stream io.ReadCloser
	Text   string
}

type IChatService interface {
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*ChatOutcome, error)
}

type chatService struct {
	resolver *mode.Resolver
	direct   *pipeline.DirectPipeline
	hardcore *pipeline.HardcorePipeline
	validate *validator.Validate
	logger   logger.ILogger
}

func NewChatService(
	resolver *mode.Resolver,
	direct *pipeline.DirectPipeline,
	hardcore *pipeline.HardcorePipeline,
	validate *validator.Validate,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		resolver: resolver,
		direct:   direct,
		hardcore: hardcore,
		validate: validate,
		logger:   sysLogger,
	}
}

// SendChat resolves the effective mode and executes the matching pipeline.
// The upstream call is issued here, before any response bytes are written,
// so transport failures still surface as structured JSON errors.
func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*ChatOutcome, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation("messages must be a non-empty list of role-tagged entries")
	}

	requested, ok := mode.Parse(req.Mode)
	if !ok {
		return nil, apperror.Validation("unknown mode: " + req.Mode)
	}

	history := make([]llm.Message, len(req.Messages))
	for i, m := range req.Messages {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	latest := history[len(history)-1].Content

	effective := s.resolver.Resolve(latest, requested)
	if requested == mode.ModeAuto {
		s.logger.Info("CHAT", "Auto mode resolved", map[string]interface{}{
			"effective":    string(effective),
			"input_length": len(latest),
		})
	}

	if effective == mode.ModeHardcore {
		result, err := s.hardcore.Execute(ctx, latest)
		if err != nil {
			return nil, err
		}
		return &ChatOutcome{Mode: effective, Text: result.Answer}, nil
	}

	result, err := s.direct.Execute(ctx, effective, history, req.Model)
	if err != nil {
		return nil, err
	}
	return &ChatOutcome{Mode: effective, Stream: result.Stream}, nil
}
