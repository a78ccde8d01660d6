package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin frontend only; the API is not public.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleMarketsWS pushes the current listing to the client on connect and
// then on every refresh tick, so the listing page stays fresh without
// polling.
func (s *Server) handleMarketsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	go s.streamMarkets(conn)
}

func (s *Server) streamMarkets(conn *websocket.Conn) {
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		// Drain control and client frames; exits when the peer goes away.
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.refreshEvery)
	defer ticker.Stop()

	for {
		if err := s.pushListing(conn); err != nil {
			s.logger.Debug("websocket write failed, closing", zap.Error(err))
			return
		}
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// pushListing writes one listing snapshot. A failed upstream fetch skips
// the push and keeps the connection; only write failures tear it down.
func (s *Server) pushListing(conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	coins, err := s.market.Listing(ctx)
	if err != nil {
		s.logger.Warn("listing refresh failed, skipping push", zap.Error(err))
		return nil
	}
	return conn.WriteJSON(coins)
}
