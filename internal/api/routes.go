package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", handler.Register)
	users.Post("/login", handler.Login)
	users.Put("/password", handler.AuthRequired, handler.UpdatePassword)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Post("", handler.CreateCycle)
	cycles.Get("", handler.ListCycles)
	cycles.Get("/stats", handler.CycleStats)

	discharge := api.Group("/discharge", handler.AuthRequired)
	discharge.Post("", handler.CreateDischarge)
	discharge.Get("", handler.ListDischarges)
	discharge.Get("/patterns", handler.DischargePatterns)
	discharge.Get("/alerts", handler.DischargeAlerts)

	api.Get("/health-insights", handler.AuthRequired, handler.HealthInsights)

	chat := api.Group("/chat", handler.AuthRequired)
	chat.Post("", handler.SendChatMessage)
	chat.Get("", handler.ChatHistory)
}
