package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nextlevel/storefront/internal/config"
	"github.com/nextlevel/storefront/internal/db"
	"github.com/nextlevel/storefront/internal/es"
	"github.com/nextlevel/storefront/internal/handlers"
	"github.com/nextlevel/storefront/internal/logging"
	"github.com/nextlevel/storefront/internal/mykafka"
	"github.com/nextlevel/storefront/internal/repo"
	"github.com/nextlevel/storefront/internal/service"
	"github.com/nextlevel/storefront/internal/service/search"
	"github.com/nextlevel/storefront/internal/token"
	httpserver "github.com/nextlevel/storefront/internal/transport/http"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		}); err != nil {
			log.Fatalf("sentry init error: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)

	var index *search.Index
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		index = search.NewIndex(esClient, "products")
	}

	store := repo.New(gdb)
	tokens := &token.Service{Secret: cfg.JWTSecret}

	deps := &httpserver.Deps{
		Tokens:         tokens,
		AuthHandler:    &handlers.AuthHandler{Svc: &service.AuthService{Repo: store, Tokens: tokens, Events: producer}},
		UserHandler:    &handlers.UserHandler{Svc: &service.UserService{Repo: store}},
		ProductHandler: &handlers.ProductHandler{Svc: &service.ProductService{Repo: store, Events: producer, Index: index}},
		OrderHandler:   &handlers.OrderHandler{Svc: &service.OrderService{Repo: store, Events: producer}},
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})
	e.HTTPErrorHandler = errorHandler(e, cfg.Production())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         cfg.Host + ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown_complete")
}

// errorHandler keeps the taxonomy errors as-is and collapses everything
// else into a generic 500, hiding the underlying message in production.
func errorHandler(e *echo.Echo, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
		sentry.CaptureException(err)

		msg := err.Error()
		if production {
			msg = "Something went wrong"
		}
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError, msg), c)
	}
}
