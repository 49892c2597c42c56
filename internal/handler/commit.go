package handler

import (
	"net/http"

	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/middleware"
	"github.com/SimelweN/rebooked-reads-sub008/internal/service"

	"github.com/labstack/echo/v4"
)

type CommitHandler struct {
	commitService service.CommitService
}

func NewCommitHandler(commitService service.CommitService) *CommitHandler {
	return &CommitHandler{
		commitService: commitService,
	}
}

func (h *CommitHandler) Pending(c echo.Context) error {
	ctx := c.Request().Context()

	commits, err := h.commitService.PendingCommits(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(commits))
}

// Commit and Decline surface the workflow error message to the caller and
// keep the failure status, so the UI can both toast and react.
func (h *CommitHandler) Commit(c echo.Context) error {
	ctx := c.Request().Context()
	bookID := c.Param("bookID")

	commits, err := h.commitService.CommitSale(ctx, middleware.UserID(c), bookID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(commits))
}

func (h *CommitHandler) Decline(c echo.Context) error {
	ctx := c.Request().Context()
	bookID := c.Param("bookID")

	commits, err := h.commitService.DeclineSale(ctx, middleware.UserID(c), bookID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(commits))
}
