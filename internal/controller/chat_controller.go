package controller

import (
	"bufio"

	"deepsea-be/internal/dto"
	"deepsea-be/internal/service"
	"deepsea-be/pkg/apperror"
	"deepsea-be/pkg/sse"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	service       service.IChatService
	jwtMiddleware fiber.Handler
}

func NewChatController(service service.IChatService, jwtMiddleware fiber.Handler) IChatController {
	return &chatController{service: service, jwtMiddleware: jwtMiddleware}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.jwtMiddleware, c.SendChat)
}

// SendChat executes the chat pipeline, then streams the answer as SSE.
// The upstream call happens before the stream writer is installed, so
// failures are returned as plain JSON errors instead of broken streams.
func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("malformed request body")
	}

	outcome, err := c.service.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Chat-Mode", string(outcome.Mode))

	if outcome.Stream != nil {
		stream := outcome.Stream
		ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer stream.Close()
			sse.Relay(w, stream)
		})
		return nil
	}

	text := outcome.Text
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		sse.WriteText(w, text)
	})
	return nil
}
