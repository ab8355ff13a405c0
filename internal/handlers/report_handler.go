package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/solcialhq/forum-backend/internal/dto"
	"github.com/solcialhq/forum-backend/internal/middleware"
	"github.com/solcialhq/forum-backend/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) ReportPost(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var report interface{}
	if req.Currency == dto.CurrencyToken {
		report, err = h.reports.ReportPostWithToken(userID, postID, req.Reason)
	} else {
		report, err = h.reports.ReportPost(userID, postID, req.Reason)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) ReportReply(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	replyID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid reply ID")
	}

	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var report interface{}
	if req.Currency == dto.CurrencyToken {
		report, err = h.reports.ReportReplyWithToken(userID, replyID, req.Reason)
	} else {
		report, err = h.reports.ReportReply(userID, replyID, req.Reason)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) ResolvePostReport(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	reportID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reports.ResolvePostReport(adminID, reportID, req.ActionTaken)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) ResolveReplyReport(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	reportID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reports.ResolveReplyReport(adminID, reportID, req.ActionTaken)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) ClosePostReport(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	reportID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	if err := h.reports.ClosePostReport(adminID, reportID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report closed"})
}

func (h *ReportHandler) CloseReplyReport(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	reportID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	if err := h.reports.CloseReplyReport(adminID, reportID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report closed"})
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	var resolved *bool
	if v := c.Query("resolved", ""); v != "" {
		b := v == "true"
		resolved = &b
	}

	postReports, replyReports, err := h.reports.ListReports(resolved, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"post_reports":  postReports,
		"reply_reports": replyReports,
		"limit":         limit,
		"offset":        offset,
	})
}
