package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/solcialhq/forum-backend/internal/dto"
	"github.com/solcialhq/forum-backend/internal/ledger"
	"github.com/solcialhq/forum-backend/internal/middleware"
	"gorm.io/gorm"
)

type WalletHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewWalletHandler(db *gorm.DB, l *ledger.Ledger) *WalletHandler {
	return &WalletHandler{db: db, ledger: l}
}

func (h *WalletHandler) Balances(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	balances, err := h.ledger.Balances(h.db, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(balances)
}

// Credit funds an account out of band. Admin only; deposits normally arrive
// through the external settlement pipeline.
func (h *WalletHandler) Credit(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.CreditRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Native < 0 || req.Token < 0 {
		return badRequest(c, "Credit amounts must be non-negative")
	}

	if err := h.ledger.Credit(h.db, userID, req.Native, req.Token); err != nil {
		return fail(c, err)
	}

	balances, err := h.ledger.Balances(h.db, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(balances)
}
