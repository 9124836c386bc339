package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) SendChatMessage(c *fiber.Ctx) error {
	var request chatRequest
	if err := handler.bindJSON(c, &request); err != nil {
		return handler.respondServiceError(c, err, "Failed to send message")
	}

	reply := handler.chat.Reply(c.UserContext(), request.Message)
	return c.JSON(fiber.Map{"message": reply})
}

// ChatHistory always returns an empty list; conversations are not stored.
func (handler *Handler) ChatHistory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"messages": []string{}})
}
