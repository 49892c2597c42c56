package handler

import (
	"net/http"

	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	moderationService service.ModerationService
	contactService    service.ContactService
	bookService       service.BookService
}

func NewAdminHandler(
	moderationService service.ModerationService,
	contactService service.ContactService,
	bookService service.BookService,
) *AdminHandler {
	return &AdminHandler{
		moderationService: moderationService,
		contactService:    contactService,
		bookService:       bookService,
	}
}

func (h *AdminHandler) Moderation(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.moderationService.Dashboard(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(dashboard))
}

func (h *AdminHandler) ResolveReport(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.moderationService.ResolveReport(ctx, c.Param("id"), req.Status); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(nil))
}

func (h *AdminHandler) ContactMessages(c echo.Context) error {
	ctx := c.Request().Context()

	messages, err := h.contactService.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(messages))
}

func (h *AdminHandler) MarkMessageRead(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.contactService.MarkRead(ctx, c.Param("id")); err != nil {
		return c.JSON(http.StatusNotFound, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(nil))
}

func (h *AdminHandler) BulkDeleteBooks(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	deleted, err := h.bookService.BulkDelete(ctx, req.BookIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(map[string]int64{"deleted": deleted}))
}

// SubmitContact is the public contact form.
func (h *AdminHandler) SubmitContact(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	msg, err := h.contactService.Submit(ctx, req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusCreated, dto.OK(msg))
}
