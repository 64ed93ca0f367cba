package handlers

import (
	"errors"

	"bloomshop/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// respondError maps service errors onto HTTP responses. Validation failures
// and guard denials return 400, conflicts 409, missing entities 404 and
// anything else a generic 500 with the cause logged.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	}

	var deniedErr *apperrors.PolicyDeniedError
	if errors.As(err, &deniedErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": deniedErr.Reason,
		})
	}

	var conflictErr *apperrors.ConflictError
	if errors.As(err, &conflictErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": conflictErr.Message,
		})
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
		})
	}

	var storeErr *apperrors.StoreError
	if errors.As(err, &storeErr) {
		log.Error().Err(storeErr.Cause).Str("op", storeErr.Op).Msg("store error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	log.Error().Err(err).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Something went wrong",
	})
}
