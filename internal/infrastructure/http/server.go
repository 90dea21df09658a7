package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/wekeepgrowing/semo-payment-gateway/internal/adapter/handler/http"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/config"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/database"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/idgen"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/middleware/auth"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/usecase"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/logger"
)

// Dependencies are the collaborators the HTTP server wires into its usecases.
// Cache, Publisher, IDs, Random and Clock are optional.
type Dependencies struct {
	Repos     *database.Repositories
	Cache     repository.CacheRepository
	Publisher repository.PaymentEventPublisher
	IDs       idgen.Generator
	Random    usecase.RandomSource
	Clock     func() time.Time
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	deps   Dependencies
}

func NewServer(cfg *config.Config, log *zap.Logger, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger.WithEchoLogger(e, log)

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))

	origins := cfg.Service.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, auth.HeaderAPIKey, auth.HeaderAPISecret},
	}))

	if deps.IDs == nil {
		deps.IDs = idgen.NewGenerator()
	}

	s := &Server{
		config: cfg,
		logger: log,
		echo:   e,
		deps:   deps,
	}
	s.setupRoutes()
	return s
}

func (s *Server) Start() error {
	addr := s.config.Server.HTTP.Address()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) setupRoutes() {
	repos := s.deps.Repos

	// Initialize usecases
	simulator := usecase.NewSettlementSimulator(usecase.SimulationConfig{
		TestMode:        s.config.Simulation.TestMode,
		ProcessingDelay: s.config.Simulation.ProcessingDelay(),
		PaymentSuccess:  s.config.Simulation.Succeeds(),
	}, s.deps.Random)

	paymentOpts := []usecase.PaymentOption{}
	if s.deps.Clock != nil {
		paymentOpts = append(paymentOpts, usecase.WithClock(s.deps.Clock))
	}
	if s.deps.Publisher != nil {
		paymentOpts = append(paymentOpts, usecase.WithEventPublisher(s.deps.Publisher))
	}

	orderUsecase := usecase.NewOrderUsecase(repos.Order, s.deps.Cache, s.deps.IDs, s.config.Redis.OrderCacheTTL, s.logger)
	paymentUsecase := usecase.NewPaymentUsecase(repos.Order, repos.Payment, simulator, s.deps.IDs, s.logger, paymentOpts...)
	statsUsecase := usecase.NewStatsUsecase(repos.Payment, s.logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(repos.Merchant, s.logger)
	orderHandler := handlers.NewOrderHandler(orderUsecase, s.logger)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, statsUsecase, s.logger)
	checkoutHandler := handlers.NewCheckoutHandler(orderUsecase, paymentUsecase, s.logger)

	// Health check
	s.echo.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Test helpers (local development only)
	if s.config.Service.EnableTestEndpoints {
		v1.GET("/test/merchant", healthHandler.TestMerchant)
	}

	// Public checkout routes (no authentication required)
	v1.GET("/orders/:order_id/public", checkoutHandler.GetOrder)
	v1.POST("/payments/public", checkoutHandler.CreatePayment)
	v1.GET("/payments/:payment_id/public", checkoutHandler.GetPayment)

	// Protected routes (require API key authentication)
	protected := v1.Group("", auth.APIKeyMiddleware(auth.APIKeyConfig{
		Merchants: repos.Merchant,
		Logger:    s.logger,
	}))

	protected.POST("/orders", orderHandler.CreateOrder)
	protected.GET("/orders/:order_id", orderHandler.GetOrder)

	protected.POST("/payments", paymentHandler.CreatePayment)
	protected.GET("/payments", paymentHandler.ListPayments)
	protected.GET("/payments/stats", paymentHandler.GetStats)
	protected.GET("/payments/:payment_id", paymentHandler.GetPayment)
}
