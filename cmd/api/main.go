package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "loan-portal/internal/adapter/http"
	idemp "loan-portal/internal/adapter/middleware"
	"loan-portal/internal/adapter/repository/mysql"
	"loan-portal/internal/config"
	"loan-portal/internal/domain/upload"
	"loan-portal/internal/infrastructure/cache"
	"loan-portal/internal/infrastructure/db"
	"loan-portal/internal/infrastructure/frappe"
	"loan-portal/internal/infrastructure/metrics"
	"loan-portal/internal/usecase/application"
	"loan-portal/internal/usecase/auth"
	"loan-portal/internal/usecase/customer"
	"loan-portal/internal/usecase/dashboard"
	"loan-portal/internal/usecase/loan"
	"loan-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics("loan_portal", nil)
	httpClient := &http.Client{Timeout: cfg.FrappeTimeout}

	client := frappe.New(cfg.Frappe(),
		frappe.WithHTTPClient(httpClient),
		frappe.WithObserver(m),
		frappe.WithLogger(log.Named("frappe")),
	)
	log.Info("frappe client ready", zap.String("url", cfg.FrappeURL), zap.Stringer("auth", client.Mode()))

	// The proxy routes use their own clients: one with the key pair only,
	// one with no credentials at all.
	var keyed httpadp.Forwarder
	if cfg.HasAPICredentials() {
		keyed = frappe.New(frappe.Config{BaseURL: cfg.FrappeURL, APIKey: cfg.FrappeAPIKey, APISecret: cfg.FrappeAPISecret},
			frappe.WithHTTPClient(httpClient), frappe.WithObserver(m), frappe.WithLogger(log.Named("proxy")))
	}
	anon := frappe.New(frappe.Config{BaseURL: cfg.FrappeURL},
		frappe.WithHTTPClient(httpClient), frappe.WithObserver(m), frappe.WithLogger(log.Named("proxy")))

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("redis unavailable", zap.Error(err))
	}
	defer rdb.Close()

	appOpts := []application.Option{}
	if cfg.UploadLedgerEnabled {
		ledger, err := openLedger(ctx, cfg, log)
		if err != nil {
			log.Fatal("upload ledger unavailable", zap.Error(err))
		}
		appOpts = append(appOpts, application.WithLedger(ledger))
	}

	authUC := auth.NewUsecase(client, log)
	customerUC := customer.NewUsecase(client, authUC, log)
	appUC := application.NewUsecase(client, log, appOpts...)
	loanUC := loan.NewUsecase(client, log)
	dashUC := dashboard.NewUsecase(client, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		requestLogger(log),
		middleware.Recover(),
		middleware.BodyLimit("10M"),
		m.Middleware(),
	)

	httpadp.Register(e, httpadp.Handlers{
		Health:       httpadp.NewHandler(client),
		Proxy:        httpadp.NewProxyHandler(keyed, anon, log.Named("proxy")),
		Auth:         httpadp.NewAuthHandler(authUC, customerUC),
		Customers:    httpadp.NewCustomerHandler(customerUC, dashUC),
		Applications: httpadp.NewApplicationHandler(appUC),
		Loans:        httpadp.NewLoanHandler(loanUC),
		Metrics:      m.Handler(),
	}, idemp.Idempotency(rdb, cfg.IdempotencyTTL(), log.Named("idempotency")))

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func openLedger(ctx context.Context, cfg *config.Config, log *zap.Logger) (upload.Repository, error) {
	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log.Named("gorm"))
	if err != nil {
		return nil, err
	}
	repo := mysql.NewUploadRepository(gdb)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
