package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/solcialhq/forum-backend/internal/dto"
	"github.com/solcialhq/forum-backend/internal/middleware"
	"github.com/solcialhq/forum-backend/internal/services"
)

type PostHandler struct {
	content *services.ContentService
}

func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var post interface{}
	if req.Currency == dto.CurrencyToken {
		post, err = h.content.CreatePostWithToken(userID, req.Content)
	} else {
		post, err = h.content.CreatePost(userID, req.Content)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) CreateReply(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var reply interface{}
	if req.Currency == dto.CurrencyToken {
		reply, err = h.content.CreateReplyWithToken(userID, postID, req.Content)
	} else {
		reply, err = h.content.CreateReply(userID, postID, req.Content)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	post, err := h.content.GetPost(postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	posts, total, err := h.content.ListPosts(limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *PostHandler) ListReplies(c *fiber.Ctx) error {
	postID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	replies, err := h.content.ListReplies(postID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"replies": replies})
}
