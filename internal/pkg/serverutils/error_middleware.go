package serverutils

import (
	"errors"

	"swipenotes/internal/common"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy onto HTTP statuses so
// controllers can return service errors directly.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, common.ErrEmptyPassphrase),
			errors.Is(err, common.ErrInvalidPassphrase),
			errors.Is(err, common.ErrNotInConflict),
			errors.Is(err, common.ErrSyncDisabled):
			status = fiber.StatusBadRequest
		case errors.Is(err, common.ErrPassphraseMismatch),
			errors.Is(err, common.ErrNoUser):
			status = fiber.StatusUnauthorized
		case errors.Is(err, common.ErrNoteNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, common.ErrSyncInFlight):
			status = fiber.StatusConflict
		case errors.Is(err, common.ErrDatabaseNotSetUp):
			status = fiber.StatusServiceUnavailable
		}

		return ctx.Status(status).JSON(fiber.Map{"message": err.Error()})
	}
}
