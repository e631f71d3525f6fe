package serverutils

import (
	"errors"

	"deepsea-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps errors escaping the handlers onto the HTTP
// contract: 401 unauthorized, 400 validation, 504 timeout, 500 otherwise.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    fiberErr.Code,
				"message": fiberErr.Message,
			})
		}

		status := apperror.StatusCode(err)
		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"code":    status,
			"message": apperror.UserMessage(err),
		})
	}
}
