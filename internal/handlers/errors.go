package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/solcialhq/forum-backend/internal/dto"
	"github.com/solcialhq/forum-backend/internal/ledger"
	"github.com/solcialhq/forum-backend/internal/services"
)

// fail maps domain errors onto HTTP statuses: validation 400, authorization
// 403, economic 402, missing records 404, state conflicts 409.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrContentEmpty),
		errors.Is(err, services.ErrContentTooLong),
		errors.Is(err, services.ErrInvalidContent),
		errors.Is(err, services.ErrReasonEmpty),
		errors.Is(err, services.ErrReasonTooLong),
		errors.Is(err, services.ErrInvalidAuthor):
		status = fiber.StatusBadRequest

	case errors.Is(err, services.ErrNotAdmin):
		status = fiber.StatusForbidden

	case errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrInsufficientTokens),
		errors.Is(err, ledger.ErrAccountFrozen),
		errors.Is(err, ledger.ErrInvalidMint),
		errors.Is(err, ledger.ErrInvalidRecipient),
		errors.Is(err, ledger.ErrRecipientNotFunded),
		errors.Is(err, ledger.ErrAccountNotFound):
		status = fiber.StatusPaymentRequired

	case errors.Is(err, services.ErrInvalidPostID),
		errors.Is(err, services.ErrInvalidReplyID),
		errors.Is(err, services.ErrInvalidReportID),
		errors.Is(err, services.ErrForumNotFound):
		status = fiber.StatusNotFound

	case errors.Is(err, services.ErrForumExists),
		errors.Is(err, services.ErrReportAlreadyResolved),
		errors.Is(err, services.ErrMaxReportsReached),
		errors.Is(err, services.ErrRatingKeyMismatch):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}
