package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/femora/internal/models"
	"github.com/terraincognita07/femora/internal/services"
)

type authResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Token              string `json:"token"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request registerRequest
	if err := handler.bindJSON(c, &request); err != nil {
		return handler.respondServiceError(c, err, "Failed to register user")
	}

	input := services.RegisterInput{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
	}
	if request.DateOfBirth != "" {
		dateOfBirth, err := handler.parseRequestDate("dateOfBirth", request.DateOfBirth)
		if err != nil {
			return handler.respondServiceError(c, err, "Failed to register user")
		}
		input.DateOfBirth = &dateOfBirth
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	user, err := handler.auth.Register(ctx, input)
	if errors.Is(err, services.ErrUserExists) {
		return apiError(c, fiber.StatusBadRequest, "User already exists")
	}
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to register user")
	}

	return handler.respondWithToken(c, fiber.StatusCreated, user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "Too many login attempts. Please try again later.")
	}

	var request loginRequest
	if err := handler.bindJSON(c, &request); err != nil {
		return handler.respondServiceError(c, err, "Failed to log in")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	user, err := handler.auth.Authenticate(ctx, request.Email, request.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		handler.loginLimiter.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return handler.respondServiceError(c, err, "Failed to log in")
	}

	handler.loginLimiter.reset(limiterKey)
	return handler.respondWithToken(c, fiber.StatusOK, user)
}

func (handler *Handler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized")
	}

	var request passwordRequest
	if err := handler.bindJSON(c, &request); err != nil {
		return handler.respondServiceError(c, err, "Failed to update password")
	}

	ctx, cancel := handler.requestContext(c)
	defer cancel()
	err := handler.auth.ChangePassword(ctx, userID, request.CurrentPassword, request.NewPassword)
	switch {
	case errors.Is(err, services.ErrCurrentPasswordMismatch):
		return apiError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, "User not found")
	case err != nil:
		return handler.respondServiceError(c, err, "Failed to update password")
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

func (handler *Handler) respondWithToken(c *fiber.Ctx, status int, user models.User) error {
	token, err := handler.buildToken(user)
	if err != nil {
		handler.logger.Error("sign auth token", "request_id", requestID(c), "user_id", user.ID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to create session")
	}

	return c.Status(status).JSON(authResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Token:              token,
		MustChangePassword: user.MustChangePassword,
	})
}
