package dto

type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type SendChatRequest struct {
	Messages []ChatMessageDTO `json:"messages" validate:"required,min=1,dive"`
	Mode     string           `json:"mode" validate:"omitempty,oneof=auto lite standard hardcore"`
	Model    string           `json:"model"`
}
