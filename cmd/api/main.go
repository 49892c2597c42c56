package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/client"
	"github.com/SimelweN/rebooked-reads-sub008/internal/config"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"
	"github.com/SimelweN/rebooked-reads-sub008/internal/server"
	"github.com/SimelweN/rebooked-reads-sub008/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)
	paystackClient := client.NewPaystackClient(&cfg.Paystack)

	bookRepo := repository.NewBookRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	subaccountRepo := repository.NewSubaccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	moderationRepo := repository.NewModerationRepository(db)
	contactRepo := repository.NewContactRepository(db)

	bankingService := service.NewBankingService(paystackClient, subaccountRepo, bookRepo, profileRepo)
	bookService := service.NewBookService(bookRepo, subaccountRepo)
	commitService := service.NewCommitService(db, paystackClient, orderRepo, bookRepo, profileRepo)
	paymentService := service.NewPaymentService(db, paystackClient, bookRepo, orderRepo, subaccountRepo)
	moderationService := service.NewModerationService(moderationRepo, profileRepo)
	contactService := service.NewContactService(contactRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(
		cfg,
		bankingService,
		bookService,
		commitService,
		paymentService,
		moderationService,
		contactService,
	)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
