package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) HealthInsights(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	insights, err := handler.insights.Generate(ctx, userID)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to generate health insights")
	}
	return c.JSON(insights)
}
