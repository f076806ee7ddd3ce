package utils

import (
	"errors"

	apperrors "propmarket/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a JSON response with status 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message, "code": string(apperrors.KindValidation)})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message, "code": "UNAUTHORIZED"})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message, "code": string(apperrors.KindForbidden)})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message, "code": string(apperrors.KindNotFound)})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message, "code": "INTERNAL_ERROR"})
}

// Error maps err to its HTTP status and writes {error, code[, fields]}.
// Errors outside the domain taxonomy are reported with a generic message.
func Error(c *fiber.Ctx, err error) error {
	de, ok := apperrors.As(err)
	if !ok {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Respond(c, fe.Code, fiber.Map{"error": fe.Message, "code": "HTTP_ERROR"})
		}
		return InternalError(c, "internal server error")
	}

	body := fiber.Map{"error": de.Message, "code": de.ErrorCode()}
	if len(de.Fields) > 0 {
		body["fields"] = de.Fields
	}
	return Respond(c, apperrors.HTTPStatus(de), body)
}
