package serverutils

import (
	"errors"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/pkg/logger"
	"firecheck-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses. The typed
// lifecycle errors carry enough context for the client to react without
// parsing messages.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var incomplete *entity.IncompleteSessionError
		var duplicate *entity.DuplicateOutcomeError
		var activeExists *entity.ActiveSessionExistsError
		var invalidTarget *entity.InvalidTargetError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &incomplete):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success":         false,
				"message":         incomplete.Error(),
				"code":            "SESSION_INCOMPLETE",
				"remaining_items": incomplete.Remaining,
			})
		case errors.As(err, &duplicate):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success":    false,
				"message":    duplicate.Error(),
				"code":       "DUPLICATE_OUTCOME",
				"target_key": duplicate.TargetKey,
			})
		case errors.As(err, &activeExists):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": activeExists.Error(),
				"code":    "ACTIVE_SESSION_EXISTS",
				"unit_id": activeExists.UnitId.String(),
			})
		case errors.As(err, &invalidTarget):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": invalidTarget.Error(),
				"code":    "INVALID_TARGET",
			})
		case errors.Is(err, entity.ErrAlreadyPaused):
			return conflict(ctx, err, "ALREADY_PAUSED")
		case errors.Is(err, entity.ErrNotPaused):
			return conflict(ctx, err, "NOT_PAUSED")
		case errors.Is(err, entity.ErrSessionNotActive):
			return conflict(ctx, err, "SESSION_NOT_ACTIVE")
		case errors.Is(err, service.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrForbidden):
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
		})
	}
}

func conflict(ctx *fiber.Ctx, err error, code string) error {
	return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"code":    code,
	})
}
