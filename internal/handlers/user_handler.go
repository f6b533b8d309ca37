package handlers

import (
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/badges"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Session signs in the next roster member. The body is optional.
func (h *UserHandler) Session(c *fiber.Ctx) error {
	var req dto.SessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
	}

	session, err := h.userService.NextSession(req.CurrentUserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"users": h.userService.Roster()})
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	profile, err := h.userService.Get(middleware.ActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (h *UserHandler) Badges(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"badges": badges.All()})
}
