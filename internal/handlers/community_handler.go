package handlers

import (
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CommunityHandler struct {
	communityService *services.CommunityService
}

func NewCommunityHandler(communityService *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

func (h *CommunityHandler) ListPosts(c *fiber.Ctx) error {
	posts := h.communityService.List()
	return c.JSON(fiber.Map{"posts": posts, "total": len(posts)})
}

func (h *CommunityHandler) CreatePost(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	post, err := h.communityService.CreatePost(c.UserContext(), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *CommunityHandler) Vote(c *fiber.Ctx) error {
	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	view, err := h.communityService.Vote(c.UserContext(), c.Params("id"), middleware.ActorID(c), req.Category)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *CommunityHandler) AddComment(c *fiber.Ctx) error {
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	comment, err := h.communityService.AddComment(c.UserContext(), c.Params("id"), middleware.ActorID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
