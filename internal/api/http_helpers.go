package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/femora/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func validationError(c *fiber.Ctx, err *services.ValidationError) error {
	payload := fiber.Map{"message": err.Message}
	if err.Field != "" {
		payload["field"] = err.Field
	}
	return c.Status(fiber.StatusBadRequest).JSON(payload)
}

// respondServiceError maps validation failures to 400 and everything else to
// a logged 500 carrying failureMessage.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, failureMessage string) error {
	if validationErr, ok := services.AsValidationError(err); ok {
		return validationError(c, validationErr)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		handler.logger.Warn("storage deadline exceeded", "request_id", requestID(c), "path", c.Path())
	} else {
		handler.logger.Error(failureMessage, "request_id", requestID(c), "path", c.Path(), "error", err)
	}
	return apiError(c, fiber.StatusInternalServerError, failureMessage)
}

// requestContext bounds storage work for the current request.
func (handler *Handler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), handler.requestTimeout)
}

func currentUserID(c *fiber.Ctx) (uint, bool) {
	user, ok := currentUser(c)
	if !ok || user == nil {
		return 0, false
	}
	return user.ID, true
}
