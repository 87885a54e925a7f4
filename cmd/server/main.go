package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerapp "github.com/contable/backoffice/internal/application/ledger"
	payrollapp "github.com/contable/backoffice/internal/application/payroll"
	referenceapp "github.com/contable/backoffice/internal/application/reference"
	"github.com/contable/backoffice/internal/infrastructure/config"
	"github.com/contable/backoffice/internal/infrastructure/logger"
	"github.com/contable/backoffice/internal/infrastructure/persistence"
	"github.com/contable/backoffice/internal/interfaces/http/handler"
	"github.com/contable/backoffice/internal/interfaces/http/middleware"
	"github.com/contable/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting backoffice",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database ready", zap.String("driver", cfg.Database.Driver))

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	feeInvoiceRepo := persistence.NewGormFeeInvoiceRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	institutionRepo := persistence.NewGormInstitutionRepository(db.DB)
	payslipRepo := persistence.NewGormPayslipRepository(db.DB)
	parameterRepo := persistence.NewGormParameterRepository(db.DB)
	bracketRepo := persistence.NewGormBracketRepository(db.DB)

	// Application services
	payrollService := payrollapp.NewService(
		employeeRepo, institutionRepo, payslipRepo,
		parameterRepo, bracketRepo,
		accountRepo, voucherRepo,
		log,
	)
	postingService := ledgerapp.NewPostingService(
		invoiceRepo, feeInvoiceRepo, voucherRepo, accountRepo, parameterRepo, log,
	)
	referenceService := referenceapp.NewService(
		accountRepo, parameterRepo, bracketRepo, log,
	)

	// HTTP server
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
	)

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(db)).
		Register(handler.NewReferenceHandler(referenceService)).
		Register(handler.NewPayrollHandler(payrollService)).
		Register(handler.NewLedgerHandler(postingService)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
