package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/solcialhq/forum-backend/internal/dto"
	"github.com/solcialhq/forum-backend/internal/middleware"
	"github.com/solcialhq/forum-backend/internal/services"
)

type RatingHandler struct {
	ratings *services.RatingService
}

func NewRatingHandler(ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

func (h *RatingHandler) RatePost(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var post interface{}
	if req.Currency == dto.CurrencyToken {
		post, err = h.ratings.RatePostWithToken(userID, postID, req.Upvote)
	} else {
		post, err = h.ratings.RatePost(userID, postID, req.Upvote)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

func (h *RatingHandler) RateReply(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	replyID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid reply ID")
	}

	var req dto.RateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var reply interface{}
	if req.Currency == dto.CurrencyToken {
		reply, err = h.ratings.RateReplyWithToken(userID, req.PostID, replyID, req.Upvote)
	} else {
		reply, err = h.ratings.RateReply(userID, req.PostID, replyID, req.Upvote)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reply)
}
