package main

//go:generate go tool swag init --v3.1 --dir ../.. --generalInfo cmd/server/main.go --output ../../internal/http/docs --outputTypes json

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/janisto/echo-onboarding/internal/http/docs"
	"github.com/janisto/echo-onboarding/internal/http/health"
	"github.com/janisto/echo-onboarding/internal/http/v1/routes"
	"github.com/janisto/echo-onboarding/internal/onboarding"
	"github.com/janisto/echo-onboarding/internal/platform/config"
	applog "github.com/janisto/echo-onboarding/internal/platform/logging"
	appmiddleware "github.com/janisto/echo-onboarding/internal/platform/middleware"
	"github.com/janisto/echo-onboarding/internal/platform/respond"
	"github.com/janisto/echo-onboarding/internal/platform/validate"
	"github.com/janisto/echo-onboarding/internal/submission"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

//	@title			Onboarding API
//	@version		1.0
//	@description	Validates onboarding requests and forwards accepted records to the configured endpoint.
//	@BasePath		/v1
func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("ONBOARD_CONFIG"))
	if errors.Is(err, config.ErrMissingEndpoint) {
		applog.LogFatal(ctx, "ONBOARD_URL environment variable is required", err)
	}
	if err != nil {
		applog.LogFatal(ctx, "config load failed", err)
	}
	if cfg.Development() {
		applog.Init(os.Stdout, slog.LevelDebug)
	}

	client, err := submission.NewClient(cfg.URL)
	if err != nil {
		applog.LogFatal(ctx, "submission client init failed", err)
	}

	e := echo.New()
	e.Validator = validate.New()
	e.HTTPErrorHandler = respond.NewHTTPErrorHandler()
	e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	e.Logger = applog.Logger()

	e.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.CORS(cfg.AllowedOrigins...),
		appmiddleware.RequestID(),
		middleware.BodyLimit(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	e.GET("/health", health.Handler)
	docs.Register(e)

	v1 := e.Group("/v1")
	routes.Register(v1, onboarding.NewValidator(), client)

	applog.LogInfo(ctx, "server starting",
		slog.String("addr", cfg.Addr()),
		slog.String("endpoint", client.Endpoint()),
		slog.String("environment", cfg.Environment),
		slog.String("version", Version))

	sc := echo.StartConfig{
		Address:         cfg.Addr(),
		GracefulTimeout: 10 * time.Second,
		BeforeServeFunc: func(s *http.Server) error {
			s.ReadTimeout = 5 * time.Second
			s.ReadHeaderTimeout = 2 * time.Second
			s.WriteTimeout = 30 * time.Second
			s.IdleTimeout = 60 * time.Second
			s.MaxHeaderBytes = 64 << 10
			return nil
		},
	}

	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sc.Start(sigCtx, e); err != nil {
		log.Fatal(err)
	}

	applog.LogInfo(ctx, "server exited")
}
