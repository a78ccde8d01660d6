package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vitos/crypto_market_view/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	router       *http.ServeMux
	server       *http.Server
	market       *usecase.MarketService
	refreshEvery time.Duration
	logger       *zap.Logger
}

func NewServer(
	port int,
	market *usecase.MarketService,
	refreshEvery time.Duration,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:       http.NewServeMux(),
		market:       market,
		refreshEvery: refreshEvery,
		logger:       logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	// Pages
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /crypto/{symbol}", s.handleCoinPage)

	// Market API
	s.router.HandleFunc("GET /api/crypto/markets", s.handleMarkets)
	s.router.HandleFunc("GET /api/crypto/{symbol}", s.handleCoinDetail)
	s.router.HandleFunc("GET /api/crypto/{symbol}/klines", s.handleKlines)

	// Live listing stream
	s.router.HandleFunc("GET /ws/markets", s.handleMarketsWS)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
