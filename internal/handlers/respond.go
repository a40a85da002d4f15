package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/debate_arena/internal/services"
	"github.com/mroshb/debate_arena/pkg/errors"
	"github.com/mroshb/debate_arena/pkg/logger"
)

var statusByCode = map[string]int{
	errors.ErrCodeValidation:          fiber.StatusBadRequest,
	errors.ErrCodeNotFound:            fiber.StatusNotFound,
	errors.ErrCodeUnauthorized:        fiber.StatusUnauthorized,
	errors.ErrCodeForbidden:           fiber.StatusForbidden,
	errors.ErrCodeAlreadyExists:       fiber.StatusConflict,
	errors.ErrCodeInvalidState:        fiber.StatusConflict,
	errors.ErrCodeMessageRejected:     fiber.StatusBadRequest,
	errors.ErrCodeRateLimitExceeded:   fiber.StatusTooManyRequests,
	errors.ErrCodeUpstreamUnavailable: fiber.StatusBadGateway,
}

// respondError maps service errors onto HTTP responses. Toxicity
// rejections carry their sub-scores for client-side feedback.
func respondError(c *fiber.Ctx, err error) error {
	if rejected, ok := err.(*services.MessageRejectedError); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":          errors.ErrCodeMessageRejected,
			"message":        rejected.Error(),
			"toxicityScores": rejected.Scores,
		})
	}

	code := errors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	message := "server error"
	if appErr, isApp := err.(*errors.AppError); isApp && status != fiber.StatusInternalServerError {
		message = appErr.Message
	}
	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}
