package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/femora/internal/models"
	"github.com/terraincognita07/femora/internal/services"
)

func (handler *Handler) CreateDischarge(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	var request dischargeRequest
	if err := handler.bindJSON(c, &request); err != nil {
		return handler.respondServiceError(c, err, "Failed to create discharge entry")
	}
	input, err := handler.dischargeInputFromRequest(request)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to create discharge entry")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	discharge, err := handler.discharges.Create(ctx, userID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to create discharge entry")
	}
	return c.Status(fiber.StatusCreated).JSON(discharge)
}

func (handler *Handler) ListDischarges(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	discharges, err := handler.discharges.List(ctx, userID)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to fetch discharge history")
	}
	return c.JSON(discharges)
}

func (handler *Handler) DischargePatterns(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	summary, err := handler.discharges.Patterns(ctx, userID, handler.now().UTC())
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to analyze discharge patterns")
	}
	return c.JSON(summary)
}

func (handler *Handler) DischargeAlerts(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	alerts, err := handler.discharges.Alerts(ctx, userID)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to generate discharge alerts")
	}
	return c.JSON(alerts)
}

func (handler *Handler) dischargeInputFromRequest(request dischargeRequest) (services.DischargeInput, error) {
	date, err := handler.parseRequestDate("date", request.Date)
	if err != nil {
		return services.DischargeInput{}, err
	}

	consistency, err := models.ParseConsistency(request.Consistency)
	if err != nil {
		return services.DischargeInput{}, &services.ValidationError{Field: "consistency", Message: err.Error()}
	}
	color, err := models.ParseDischargeColor(request.Color)
	if err != nil {
		return services.DischargeInput{}, &services.ValidationError{Field: "color", Message: err.Error()}
	}
	amount, err := models.ParseDischargeAmount(request.Amount)
	if err != nil {
		return services.DischargeInput{}, &services.ValidationError{Field: "amount", Message: err.Error()}
	}
	odor, err := models.ParseOdor(request.Odor)
	if err != nil {
		return services.DischargeInput{}, &services.ValidationError{Field: "odor", Message: err.Error()}
	}

	return services.DischargeInput{
		Date:        date,
		Consistency: consistency,
		Color:       color,
		Amount:      amount,
		Odor:        odor,
		Notes:       request.Notes,
	}, nil
}
