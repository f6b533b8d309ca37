package handlers

import (
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/directory"
	"github.com/gofiber/fiber/v2"
)

type DirectoryHandler struct{}

func NewDirectoryHandler() *DirectoryHandler {
	return &DirectoryHandler{}
}

func (h *DirectoryHandler) List(c *fiber.Ctx) error {
	listings, err := directory.List(c.Query("kind"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"listings": listings, "total": len(listings)})
}
