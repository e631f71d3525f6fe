package service

import (
	"context"
	"time"

	"deepsea-be/internal/dto"
	"deepsea-be/pkg/apperror"
	"deepsea-be/pkg/llm"
	"deepsea-be/pkg/markdown"

	"deepsea-be/pkg/ai/mode"

	"github.com/go-playground/validator/v10"
)

type IConversationService interface {
	Export(ctx context.Context, req *dto.ExportConversationRequest) (*dto.ExportConversationResponse, error)
	Import(ctx context.Context, req *dto.ImportConversationRequest) (*dto.ImportConversationResponse, error)
}

type conversationService struct {
	validate *validator.Validate
}

func NewConversationService(validate *validator.Validate) IConversationService {
	return &conversationService{validate: validate}
}

func (s *conversationService) Export(ctx context.Context, req *dto.ExportConversationRequest) (*dto.ExportConversationResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation("messages must be a non-empty list of role-tagged entries")
	}

	m, ok := mode.Parse(req.Mode)
	if !ok {
		return nil, apperror.Validation("unknown mode: " + req.Mode)
	}
	if m == mode.ModeAuto {
		m = mode.ModeStandard
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	messages := make([]llm.Message, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}

	content := markdown.Serialize(markdown.Conversation{
		Messages: messages,
		Mode:     m,
		Date:     date,
	})
	return &dto.ExportConversationResponse{Content: content}, nil
}

func (s *conversationService) Import(ctx context.Context, req *dto.ImportConversationRequest) (*dto.ImportConversationResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation("content is required")
	}

	conv := markdown.Deserialize(req.Content)

	messages := make([]dto.ChatMessageDTO, len(conv.Messages))
	for i, msg := range conv.Messages {
		messages[i] = dto.ChatMessageDTO{Role: msg.Role, Content: msg.Content}
	}

	return &dto.ImportConversationResponse{
		Messages: messages,
		Mode:     string(conv.Mode),
		Date:     conv.Date,
	}, nil
}
