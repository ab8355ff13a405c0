package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/solcialhq/forum-backend/internal/middleware"
	"github.com/solcialhq/forum-backend/internal/services"
)

// ForumHandler covers forum lifecycle, admin deletions, and the event feed.
type ForumHandler struct {
	registry *services.RegistryService
	events   *services.EventService
}

func NewForumHandler(registry *services.RegistryService, events *services.EventService) *ForumHandler {
	return &ForumHandler{registry: registry, events: events}
}

func (h *ForumHandler) Initialize(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	forum, err := h.registry.InitializeForum(adminID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(forum)
}

func (h *ForumHandler) Get(c *fiber.Ctx) error {
	forum, err := h.registry.Forum()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(forum)
}

func (h *ForumHandler) Close(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.registry.CloseForum(adminID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Forum closed"})
}

func (h *ForumHandler) DeletePost(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	if err := h.registry.DeletePost(adminID, postID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

func (h *ForumHandler) DeleteReply(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	replyID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid reply ID")
	}

	if err := h.registry.DeleteReply(adminID, replyID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reply deleted"})
}

func (h *ForumHandler) ListEvents(c *fiber.Ctx) error {
	after, _ := strconv.ParseUint(c.Query("after", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	events, err := h.events.List(after, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}
