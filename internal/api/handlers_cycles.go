package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/femora/internal/models"
	"github.com/terraincognita07/femora/internal/services"
)

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	var request cycleRequest
	if err := handler.bindJSON(c, &request); err != nil {
		return handler.respondServiceError(c, err, "Failed to create cycle")
	}
	input, err := handler.cycleInputFromRequest(request)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to create cycle")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	cycle, err := handler.cycles.Create(ctx, userID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to create cycle")
	}
	return c.Status(fiber.StatusCreated).JSON(cycle)
}

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	cycles, err := handler.cycles.List(ctx, userID)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to fetch cycles")
	}
	return c.JSON(cycles)
}

func (handler *Handler) CycleStats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	stats, err := handler.cycles.Stats(ctx, userID)
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to fetch cycle statistics")
	}
	return c.JSON(stats)
}

func (handler *Handler) cycleInputFromRequest(request cycleRequest) (services.CycleInput, error) {
	start, err := handler.parseRequestDate("startDate", request.StartDate)
	if err != nil {
		return services.CycleInput{}, err
	}
	end, err := handler.parseRequestDate("endDate", request.EndDate)
	if err != nil {
		return services.CycleInput{}, err
	}

	flow, err := models.ParseFlowIntensity(request.FlowIntensity)
	if err != nil {
		return services.CycleInput{}, &services.ValidationError{Field: "flowIntensity", Message: err.Error()}
	}
	symptoms := make([]models.Symptom, 0, len(request.Symptoms))
	for _, raw := range request.Symptoms {
		symptom, err := models.ParseSymptom(raw)
		if err != nil {
			return services.CycleInput{}, &services.ValidationError{Field: "symptoms", Message: err.Error()}
		}
		symptoms = append(symptoms, symptom)
	}

	input := services.CycleInput{
		StartDate:     start,
		EndDate:       end,
		FlowIntensity: flow,
		Symptoms:      symptoms,
		Notes:         request.Notes,
	}
	if request.CycleLength != nil {
		input.CycleLength = *request.CycleLength
	}
	return input, nil
}
