package handler

import (
	"net/http"

	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/service"

	"github.com/labstack/echo/v4"
)

type CourierHandler struct{}

func NewCourierHandler() *CourierHandler {
	return &CourierHandler{}
}

// Quote returns the tier catalog for the route's zone. An empty list is a
// valid reply, not an error: callers fall back to manual arrangements.
func (h *CourierHandler) Quote(c echo.Context) error {
	var req dto.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	quotes := service.EstimateQuotes(req.From, req.To, req.Parcel)
	return c.JSON(http.StatusOK, dto.OK(quotes))
}
