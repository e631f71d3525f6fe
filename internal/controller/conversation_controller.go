package controller

import (
	"deepsea-be/internal/dto"
	"deepsea-be/internal/service"
	"deepsea-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
}

type conversationController struct {
	service       service.IConversationService
	jwtMiddleware fiber.Handler
}

func NewConversationController(service service.IConversationService, jwtMiddleware fiber.Handler) IConversationController {
	return &conversationController{service: service, jwtMiddleware: jwtMiddleware}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations", c.jwtMiddleware)
	h.Post("/export", c.Export)
	h.Post("/import", c.Import)
}

func (c *conversationController) Export(ctx *fiber.Ctx) error {
	var req dto.ExportConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("malformed request body")
	}

	res, err := c.service.Export(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Conversation exported",
		"data":    res,
	})
}

func (c *conversationController) Import(ctx *fiber.Ctx) error {
	var req dto.ImportConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("malformed request body")
	}

	res, err := c.service.Import(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Conversation imported",
		"data":    res,
	})
}
