package server

import (
	"context"
	"net/http"

	"github.com/SimelweN/rebooked-reads-sub008/internal/config"
	"github.com/SimelweN/rebooked-reads-sub008/internal/handler"
	mw "github.com/SimelweN/rebooked-reads-sub008/internal/middleware"
	"github.com/SimelweN/rebooked-reads-sub008/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	bankingHandler  *handler.BankingHandler
	bookHandler     *handler.BookHandler
	commitHandler   *handler.CommitHandler
	courierHandler  *handler.CourierHandler
	adminHandler    *handler.AdminHandler
	functionHandler *handler.FunctionHandler
	authSecret      string
}

func NewServer(
	cfg *config.Config,
	bankingService service.BankingService,
	bookService service.BookService,
	commitService service.CommitService,
	paymentService service.PaymentService,
	moderationService service.ModerationService,
	contactService service.ContactService,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		bankingHandler:  handler.NewBankingHandler(bankingService),
		bookHandler:     handler.NewBookHandler(bookService),
		commitHandler:   handler.NewCommitHandler(commitService),
		courierHandler:  handler.NewCourierHandler(),
		adminHandler:    handler.NewAdminHandler(moderationService, contactService, bookService),
		functionHandler: handler.NewFunctionHandler(cfg, bankingService, paymentService),
		authSecret:      cfg.AuthSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	auth := mw.RequireAuth(s.authSecret)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.GET("/books/:id", s.bookHandler.Get)
	api.POST("/books", s.bookHandler.Create, auth)
	api.GET("/books/mine", s.bookHandler.Mine, auth)

	api.POST("/courier/quote", s.courierHandler.Quote)
	api.POST("/contact", s.adminHandler.SubmitContact)

	// -------- seller banking --------
	banking := api.Group("/banking", auth)
	banking.POST("/setup", s.bankingHandler.Setup)
	banking.PUT("/update", s.bankingHandler.Update)
	banking.GET("/details", s.bankingHandler.Details)
	banking.GET("/requirements", s.bankingHandler.Requirements)
	banking.POST("/validate-account", s.bankingHandler.ValidateAccount)

	// -------- commit / decline workflow --------
	commits := api.Group("/commits", auth)
	commits.GET("", s.commitHandler.Pending)
	commits.POST("/:bookID/commit", s.commitHandler.Commit)
	commits.POST("/:bookID/decline", s.commitHandler.Decline)

	// -------- admin --------
	admin := api.Group("/admin", auth)
	admin.GET("/moderation", s.adminHandler.Moderation)
	admin.PATCH("/reports/:id", s.adminHandler.ResolveReport)
	admin.GET("/messages", s.adminHandler.ContactMessages)
	admin.PATCH("/messages/:id", s.adminHandler.MarkMessageRead)
	admin.DELETE("/books", s.adminHandler.BulkDeleteBooks)

	// -------- function-style endpoints --------
	fn := s.echo.Group("/functions")
	fn.POST("/decrypt-banking-details", s.functionHandler.DecryptBankingDetails, auth)
	fn.POST("/initialize-paystack-payment", s.functionHandler.InitializePaystackPayment, auth)
	fn.POST("/verify-paystack-payment", s.functionHandler.VerifyPaystackPayment)
	fn.POST("/paystack-split-management", s.functionHandler.PaystackSplitManagement)
	fn.POST("/paystack-transfer-management", s.functionHandler.PaystackTransferManagement, auth)
	fn.POST("/manage-paystack-subaccount", s.functionHandler.ManagePaystackSubaccount, auth)
	fn.POST("/refund-management", s.functionHandler.RefundManagement, auth)
	fn.POST("/update-tracking-status", s.functionHandler.UpdateTrackingStatus, auth)
	fn.GET("/public-config", s.functionHandler.PublicConfig)
	fn.POST("/public-config", s.functionHandler.PublicConfig)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
