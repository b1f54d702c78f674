package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/aipaas/console/internal/pkg/errors"
	"github.com/aipaas/console/internal/pkg/pagination"
	"github.com/aipaas/console/internal/validator"
)

// ParsePage extracts page and size query parameters with validation.
// Out-of-range values fall back to the defaults rather than erroring.
func ParsePage(c *fiber.Ctx) pagination.Page {
	return pagination.New(
		parseQueryInt(c, "page", pagination.DefaultPage),
		parseQueryInt(c, "size", pagination.DefaultSize),
	)
}

// parseQueryInt parses an integer query parameter with a default value.
func parseQueryInt(c *fiber.Ctx, key string, defaultValue int) int {
	val := c.Query(key)
	if val == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// errorResponse creates a standardized JSON error response.
func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Error:   errorName(statusCode),
		Message: message,
	})
}

func errorName(statusCode int) string {
	switch statusCode {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	case fiber.StatusForbidden:
		return "Forbidden"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusConflict:
		return "Conflict"
	case fiber.StatusTooManyRequests:
		return "Too Many Requests"
	case fiber.StatusInternalServerError:
		return "Internal Server Error"
	}
	return "Error"
}

// validationErrorResponse renders field-level validation failures.
func validationErrorResponse(c *fiber.Ctx, errs validator.ValidationErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "Bad Request",
		Message: "Validation failed",
		Details: errs,
	})
}

// respondError maps an application error to its status code. Unknown
// errors are logged and hidden behind the fallback message.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.Error(fallback, zap.Error(err))
			return errorResponse(c, appErr.StatusCode, fallback)
		}
		return errorResponse(c, appErr.StatusCode, appErr.Message)
	}
	logger.Error(fallback, zap.Error(err))
	return errorResponse(c, fiber.StatusInternalServerError, fallback)
}
