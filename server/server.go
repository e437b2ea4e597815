// Package server exposes the accounting system over a small JSON REST API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ferd/folio"
)

// Server handles the REST API backed by one accounting system and one price
// source.
type Server struct {
	accounts *folio.AccountingSystem
	prices   folio.PriceSource
	log      *zap.Logger
}

// New creates a Server. A nil logger falls back to a no-op logger.
func New(accounts *folio.AccountingSystem, prices folio.PriceSource, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{accounts: accounts, prices: prices, log: logger}
}

// Route binds one handler into the router.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// Router returns the API multiplexor router.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	routes := []Route{
		{"RecordTransaction", "POST", "/api/transactions", s.handleTransaction},
		{"GetHoldings", "GET", "/api/holdings", s.handleHoldings},
		{"GetPnL", "GET", "/api/pnl", s.handlePnL},
		{"Reset", "POST", "/api/reset", s.handleReset},
	}

	for _, route := range routes {
		router.
			Methods(route.Method).
			Path(route.Pattern).
			Name(route.Name).
			Handler(s.requestLogger(route.HandlerFunc, route.Name))
	}
	return router
}

// requestLogger logs the requests internally.
func (s *Server) requestLogger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inner.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("handler", name),
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	var tx folio.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	snapshot, err := s.accounts.ProcessTransaction(tx)
	if err != nil {
		var verr *folio.ValidationError
		switch {
		case errors.As(err, &verr):
			s.writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, folio.ErrInsufficientQuantity),
			errors.Is(err, folio.ErrNoSuchHolding):
			s.writeError(w, http.StatusUnprocessableEntity, err)
		default:
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	s.writeJSON(w, http.StatusCreated, snapshot)
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.accounts.Snapshot())
}

func (s *Server) handlePnL(w http.ResponseWriter, r *http.Request) {
	prices, err := s.prices.LatestPrices(r.Context(), s.accounts.Symbols())
	if err != nil {
		switch {
		case errors.Is(err, folio.ErrNoCredentials):
			s.writeError(w, http.StatusUnauthorized, err)
		case errors.Is(err, folio.ErrPriceSourceUnavailable):
			s.writeError(w, http.StatusBadGateway, err)
		default:
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	s.writeJSON(w, http.StatusOK, s.accounts.PnL(prices))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.accounts.Reset()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Warn("request failed", zap.Int("status", status), zap.Error(err))
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
