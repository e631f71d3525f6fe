package dto

type ExportConversationRequest struct {
	Messages []ChatMessageDTO `json:"messages" validate:"required,min=1,dive"`
	Mode     string           `json:"mode" validate:"omitempty,oneof=auto lite standard hardcore"`
	Date     string           `json:"date"`
}

type ExportConversationResponse struct {
	Content string `json:"content"`
}

type ImportConversationRequest struct {
	Content string `json:"content" validate:"required"`
}

type ImportConversationResponse struct {
	Messages []ChatMessageDTO `json:"messages"`
	Mode     string           `json:"mode"`
	Date     string           `json:"date"`
}
