package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/femora/internal/models"
	"github.com/terraincognita07/femora/internal/services"
)

const dateOnlyLayout = "2006-01-02"

var enumValidators = map[string]func(string) error{
	"flow_intensity": func(raw string) error {
		_, err := models.ParseFlowIntensity(raw)
		return err
	},
	"symptom": func(raw string) error {
		_, err := models.ParseSymptom(raw)
		return err
	},
	"consistency": func(raw string) error {
		_, err := models.ParseConsistency(raw)
		return err
	},
	"discharge_color": func(raw string) error {
		_, err := models.ParseDischargeColor(raw)
		return err
	},
	"discharge_amount": func(raw string) error {
		_, err := models.ParseDischargeAmount(raw)
		return err
	},
	"odor": func(raw string) error {
		_, err := models.ParseOdor(raw)
		return err
	},
}

func newRequestValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := registerEnumValidations(validate, enumValidators); err != nil {
		return nil, err
	}
	return validate, nil
}

func registerEnumValidations(validate *validator.Validate, parsers map[string]func(string) error) error {
	for tag, parse := range parsers {
		err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return parse(fl.Field().String()) == nil
		})
		if err != nil {
			return fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return nil
}

// bindJSON decodes and validates the request body into target.
func (handler *Handler) bindJSON(c *fiber.Ctx, target interface{}) error {
	if err := c.BodyParser(target); err != nil {
		return &services.ValidationError{Message: "Invalid request body"}
	}
	if err := handler.validate.Struct(target); err != nil {
		return translateValidationError(err)
	}
	return nil
}

func translateValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &services.ValidationError{Message: "Invalid request body"}
	}

	first := fieldErrors[0]
	field, _, _ := strings.Cut(first.Field(), "[")

	var message string
	switch first.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", field)
	case "email":
		message = fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if first.Kind() == reflect.String {
			message = fmt.Sprintf("%s must be at least %s characters long", field, first.Param())
		} else {
			message = fmt.Sprintf("%s must be at least %s", field, first.Param())
		}
	case "max":
		message = fmt.Sprintf("%s must be at most %s characters long", field, first.Param())
	default:
		if _, isEnum := enumValidators[first.Tag()]; isEnum {
			message = fmt.Sprintf("%s has an unsupported value %q", field, fmt.Sprint(first.Value()))
		} else {
			message = fmt.Sprintf("%s is invalid", field)
		}
	}
	return &services.ValidationError{Field: field, Message: message}
}

// parseRequestDate accepts YYYY-MM-DD in the handler's location or an RFC 3339 timestamp.
func (handler *Handler) parseRequestDate(field string, raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if parsed, err := time.ParseInLocation(dateOnlyLayout, value, handler.location); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Time{}, &services.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", field),
	}
}
