package handler

import (
	"net/http"

	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/middleware"
	"github.com/SimelweN/rebooked-reads-sub008/internal/service"

	"github.com/labstack/echo/v4"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

func (h *BookHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	book, err := h.bookService.CreateListing(ctx, middleware.UserID(c), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusCreated, dto.OK(book))
}

func (h *BookHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.bookService.GetBook(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(book))
}

func (h *BookHandler) Mine(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.SellerBooks(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(books))
}
