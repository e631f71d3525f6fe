package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"deepsea-be/internal/pkg/serverutils"
	"deepsea-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newConversationTestApp() *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	passthrough := func(ctx *fiber.Ctx) error { return ctx.Next() }
	api := app.Group("/api")
	svc := service.NewConversationService(validator.New())
	NewConversationController(svc, passthrough).RegisterRoutes(api)
	return app
}

func TestConversationMalformedBodyReturns400(t *testing.T) {
	app := newConversationTestApp()

	for _, path := range []string{"/api/conversations/export", "/api/conversations/import"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("POST", path, strings.NewReader(`{"messages": [`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestExportReturnsMarkdown(t *testing.T) {
	app := newConversationTestApp()

	req := httptest.NewRequest("POST", "/api/conversations/export", strings.NewReader(
		`{"mode":"standard","date":"2026-01-01T00:00:00Z","messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
