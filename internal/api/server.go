package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/femora/internal/logger"
)

const requestIDContextKey = "requestid"

// NewApp builds the fiber application with the middleware chain and routes.
func NewApp(handler *Handler, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Femora",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDContextKey,
	}))
	app.Use(RequestLogger(log))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	RegisterRoutes(app, handler)
	app.Use(notFound)
	return app
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("unhandled request error", "request_id", requestID(c), "path", c.Path(), "error", err)
		}
		return apiError(c, status, message)
	}
}

func notFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "Not found")
}

func requestID(c *fiber.Ctx) string {
	value, _ := c.Locals(requestIDContextKey).(string)
	return value
}
