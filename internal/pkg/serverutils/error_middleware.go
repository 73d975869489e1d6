// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatusError lets domain errors carry their own HTTP status without
// importing fiber in the service layer.
type StatusError interface {
	error
	HTTPStatus() int
}

// ErrorCoder optionally exposes a machine-readable error code.
type ErrorCoder interface {
	ErrorCode() string
}

// ErrorHandlerMiddleware converts errors returned by handlers into the
// standard error envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"
		code := ""

		var fiberErr *fiber.Error
		var statusErr StatusError
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &statusErr):
			status = statusErr.HTTPStatus()
			message = statusErr.Error()
		case errors.Is(err, gorm.ErrRecordNotFound):
			status = fiber.StatusNotFound
			message = "Resource not found"
		}

		var coder ErrorCoder
		if errors.As(err, &coder) {
			code = coder.ErrorCode()
		}

		return ctx.Status(status).JSON(NewErrorResponse(message, code))
	}
}
