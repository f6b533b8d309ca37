package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/directory"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/state"
	"github.com/gofiber/fiber/v2"
)

var badRequestErrors = []error{
	analytics.ErrInvalidFilter,
	state.ErrInvalidCategory,
	state.ErrInvalidReport,
	state.ErrEmptyComment,
	state.ErrEmptyPost,
	classifier.ErrEmptySubmission,
	classifier.ErrImageTooLarge,
	classifier.ErrUnsupportedImage,
	directory.ErrUnknownKind,
}

var notFoundErrors = []error{
	state.ErrReportNotFound,
	state.ErrPostNotFound,
	services.ErrUserNotFound,
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// respondError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a 500 without details.
func respondError(c *fiber.Ctx, err error) error {
	var rejection *services.RejectionError
	if errors.As(err, &rejection) {
		return errorJSON(c, fiber.StatusBadRequest, rejection.Message)
	}
	if errors.Is(err, classifier.ErrAnalysisFailed) {
		return errorJSON(c, fiber.StatusBadGateway, classifier.FailureMessage)
	}
	if errors.Is(err, state.ErrUnknownUser) {
		return errorJSON(c, fiber.StatusUnauthorized, err.Error())
	}
	if errors.Is(err, state.ErrEmptyRoster) {
		return errorJSON(c, fiber.StatusServiceUnavailable, err.Error())
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	slog.Error("request failed",
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
}
