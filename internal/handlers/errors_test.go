package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/state"
	"github.com/gofiber/fiber/v2"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"rejection", &services.RejectionError{Reason: "profanity", Message: "Please keep it civil."}, fiber.StatusBadRequest, "Please keep it civil."},
		{"analysis failed", fmt.Errorf("classify: %w", classifier.ErrAnalysisFailed), fiber.StatusBadGateway, classifier.FailureMessage},
		{"unknown user", state.ErrUnknownUser, fiber.StatusUnauthorized, state.ErrUnknownUser.Error()},
		{"report not found", state.ErrReportNotFound, fiber.StatusNotFound, state.ErrReportNotFound.Error()},
		{"invalid filter", fmt.Errorf("%w: sort", analytics.ErrInvalidFilter), fiber.StatusBadRequest, "invalid filter: sort"},
		{"image too large", classifier.ErrImageTooLarge, fiber.StatusBadRequest, classifier.ErrImageTooLarge.Error()},
		{"unexpected", errors.New("connection reset"), fiber.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body dto.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if !body.Error || body.Message != tt.message {
				t.Errorf("body = %+v, want message %q", body, tt.message)
			}
		})
	}
}
