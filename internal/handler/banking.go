package handler

import (
	"net/http"

	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/middleware"
	"github.com/SimelweN/rebooked-reads-sub008/internal/service"

	"github.com/labstack/echo/v4"
)

type BankingHandler struct {
	bankingService service.BankingService
}

func NewBankingHandler(bankingService service.BankingService) *BankingHandler {
	return &BankingHandler{
		bankingService: bankingService,
	}
}

func (h *BankingHandler) Setup(c echo.Context) error {
	ctx := c.Request().Context()

	var details dto.BankingDetails
	if err := c.Bind(&details); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result := h.bankingService.SetupBanking(ctx, middleware.UserID(c), details)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, result)
}

func (h *BankingHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var details dto.BankingDetails
	if err := c.Bind(&details); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result := h.bankingService.UpdateBanking(ctx, middleware.UserID(c), details)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, result)
}

// Details returns the caller's banking record with the account number masked.
// The unmasked form lives behind the decrypt-banking-details function
// endpoint.
func (h *BankingHandler) Details(c echo.Context) error {
	ctx := c.Request().Context()

	sub, err := h.bankingService.GetBankingDetails(ctx, middleware.UserID(c), true)
	if err != nil {
		return c.JSON(http.StatusNotFound, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(sub))
}

func (h *BankingHandler) Requirements(c echo.Context) error {
	ctx := c.Request().Context()

	requirements, err := h.bankingService.GetSellerRequirements(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(requirements))
}

func (h *BankingHandler) ValidateAccount(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		AccountNumber string `json:"account_number"`
		BankCode      string `json:"bank_code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	return c.JSON(http.StatusOK, h.bankingService.ValidateAccountNumber(ctx, req.AccountNumber, req.BankCode))
}
