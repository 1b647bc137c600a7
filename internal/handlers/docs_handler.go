package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"fakestore/api"
)

// RegisterDocsRoutes serves the interactive API documentation and the
// raw OpenAPI document it renders.
func RegisterDocsRoutes(router fiber.Router) {
	router.Get("/docs/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(api.OpenAPI)
	})
	router.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/docs/index.html")
	})
	router.Get("/docs/*", swagger.New(swagger.Config{
		URL: "/docs/openapi.json",
	}))
}
