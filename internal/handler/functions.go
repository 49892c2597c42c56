package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/config"
	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
	"github.com/SimelweN/rebooked-reads-sub008/internal/fault"
	"github.com/SimelweN/rebooked-reads-sub008/internal/middleware"
	"github.com/SimelweN/rebooked-reads-sub008/internal/service"

	"github.com/labstack/echo/v4"
)

// FunctionHandler serves the endpoints the original platform exposed as
// serverless functions. They keep the function-call conventions: JSON body
// in, {success, data?, error?} out, and the reserved health-check probe.
type FunctionHandler struct {
	cfg            *config.Config
	bankingService service.BankingService
	paymentService service.PaymentService
}

func NewFunctionHandler(
	cfg *config.Config,
	bankingService service.BankingService,
	paymentService service.PaymentService,
) *FunctionHandler {
	return &FunctionHandler{
		cfg:            cfg,
		bankingService: bankingService,
		paymentService: paymentService,
	}
}

// readBody drains the request body exactly once. Downstream decoding works
// from the returned bytes, so the health probe can inspect the body without
// consuming what the business decoder needs.
func readBody(c echo.Context) []byte {
	if c.Request().Body == nil {
		return nil
	}
	defer c.Request().Body.Close()
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil
	}
	return body
}

// healthProbe answers the reserved health-check convention: health=true in
// the query or {"health":true} in the body short-circuits before any
// business logic runs.
func healthProbe(c echo.Context, body []byte, serviceName string) bool {
	probed := c.QueryParam("health") == "true"
	if !probed && len(body) > 0 {
		var probe struct {
			Health bool `json:"health"`
		}
		if err := json.Unmarshal(body, &probe); err == nil && probe.Health {
			probed = true
		}
	}
	if !probed {
		return false
	}

	_ = c.JSON(http.StatusOK, dto.Health{
		Success:   true,
		Service:   serviceName,
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
	return true
}

func bindBody(body []byte, out any) error {
	if len(body) == 0 {
		return io.EOF
	}
	return json.Unmarshal(body, out)
}

// DecryptBankingDetails returns the caller's banking record with the account
// number in the clear. Every other read path masks it.
func (h *FunctionHandler) DecryptBankingDetails(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "decrypt-banking-details") {
		return nil
	}
	ctx := c.Request().Context()

	sub, err := h.bankingService.GetBankingDetails(ctx, middleware.UserID(c), false)
	if err != nil {
		return c.JSON(http.StatusNotFound, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(sub))
}

func (h *FunctionHandler) InitializePaystackPayment(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "initialize-paystack-payment") {
		return nil
	}
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := bindBody(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.paymentService.InitializeCheckout(ctx, middleware.UserID(c), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(resp))
}

func (h *FunctionHandler) VerifyPaystackPayment(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "verify-paystack-payment") {
		return nil
	}
	ctx := c.Request().Context()

	var req dto.VerifyRequest
	if err := bindBody(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.paymentService.VerifyPayment(ctx, req.Reference)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(order))
}

// PaystackSplitManagement previews the three-way split for a price and
// delivery fee.
func (h *FunctionHandler) PaystackSplitManagement(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "paystack-split-management") {
		return nil
	}

	var req dto.SplitPreviewRequest
	if err := bindBody(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Price < 0 || req.DeliveryFee < 0 {
		return c.JSON(http.StatusBadRequest, dto.Fail("price and delivery fee must be non-negative"))
	}

	return c.JSON(http.StatusOK, dto.OK(service.CalculateSplit(req.Price, req.DeliveryFee)))
}

func (h *FunctionHandler) PaystackTransferManagement(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "paystack-transfer-management") {
		return nil
	}
	ctx := c.Request().Context()

	var req dto.TransferRequest
	if err := bindBody(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	transfer, err := h.paymentService.TransferSellerPayout(ctx, req.OrderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(transfer))
}

// ManagePaystackSubaccount multiplexes subaccount creation and update behind
// one endpoint, the way the original function did.
func (h *FunctionHandler) ManagePaystackSubaccount(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "manage-paystack-subaccount") {
		return nil
	}
	ctx := c.Request().Context()

	var req struct {
		Action  string             `json:"action"`
		Details dto.BankingDetails `json:"details"`
	}
	if err := bindBody(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	var result dto.BankingResult
	switch req.Action {
	case "create":
		result = h.bankingService.SetupBanking(ctx, middleware.UserID(c), req.Details)
	case "update":
		result = h.bankingService.UpdateBanking(ctx, middleware.UserID(c), req.Details)
	default:
		return c.JSON(http.StatusBadRequest, dto.Fail("action must be create or update"))
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, result)
}

func (h *FunctionHandler) RefundManagement(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "refund-management") {
		return nil
	}
	ctx := c.Request().Context()

	var req dto.RefundRequest
	if err := bindBody(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.paymentService.RefundOrder(ctx, req.OrderID); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(nil))
}

func (h *FunctionHandler) UpdateTrackingStatus(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "update-tracking-status") {
		return nil
	}
	ctx := c.Request().Context()

	var req dto.TrackingUpdateRequest
	if err := bindBody(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.paymentService.UpdateTracking(ctx, req.OrderID, req.Status); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(fault.Message(err)))
	}

	return c.JSON(http.StatusOK, dto.OK(nil))
}

// PublicConfig exposes the client-safe configuration surface. The Google
// Maps key is optional; without it clients fall back to manual address
// entry.
func (h *FunctionHandler) PublicConfig(c echo.Context) error {
	body := readBody(c)
	if healthProbe(c, body, "public-config") {
		return nil
	}

	return c.JSON(http.StatusOK, dto.OK(dto.PublicConfig{
		PaystackPublicKey: h.cfg.Paystack.PublicKey,
		GoogleMapsEnabled: h.cfg.GoogleMaps.APIKey != "",
		GoogleMapsAPIKey:  h.cfg.GoogleMaps.APIKey,
		AppURL:            h.cfg.BaseURL,
	}))
}
