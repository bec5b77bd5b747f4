package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"crowdfund/pkg/campaign"
	"crowdfund/pkg/wallet"
)

// Server exposes the campaign's public read surface over HTTP. All routes
// are GET: mutating operations need the trusted caller identity supplied by
// the execution environment, which plain HTTP cannot provide.
type Server struct {
	service *campaign.Service
	port    int
	router  *mux.Router
	server  *http.Server
	logger  zerolog.Logger
}

// NewServer creates a new read-only API server for the campaign
func NewServer(service *campaign.Service, port int, logger zerolog.Logger) *Server {
	s := &Server{
		service: service,
		port:    port,
		logger:  logger,
	}
	s.setupRoutes()
	return s
}

// enableCORS enables CORS for all routes
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.Use(enableCORS)

	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")
	s.router.HandleFunc("/api/requests", s.listRequests).Methods("GET")
	s.router.HandleFunc("/api/requests/{index}", s.getRequest).Methods("GET")
	s.router.HandleFunc("/api/balance/{address}", s.getBalance).Methods("GET")
	s.router.HandleFunc("/api/health", s.getHealth).Methods("GET")
}

// Handler returns the configured HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	s.logger.Info().Int("port", s.port).Msg("campaign API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// statusResponse is the public view of the campaign ledger
type statusResponse struct {
	Admin                string    `json:"admin"`
	Goal                 *big.Int  `json:"goal"`
	Deadline             time.Time `json:"deadline"`
	RaisedAmount         *big.Int  `json:"raised_amount"`
	NumberOfContributors int64     `json:"number_of_contributors"`
	MinimumContribution  *big.Int  `json:"minimum_contribution"`
	CustodiedBalance     *big.Int  `json:"custodied_balance"`
}

// getStatus returns the campaign's aggregate state
func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, statusResponse{
		Admin:                s.service.Admin(),
		Goal:                 s.service.Goal(),
		Deadline:             s.service.Deadline(),
		RaisedAmount:         s.service.Raised(),
		NumberOfContributors: s.service.Contributors(),
		MinimumContribution:  campaign.MinimumContribution,
		CustodiedBalance:     s.service.Balance(),
	})
}

// listRequests returns all spending requests
func (s *Server) listRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.service.ListRequests()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, requests)
}

// getRequest returns one spending request by index
func (s *Server) getRequest(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request index"))
		return
	}

	request, err := s.service.GetRequest(index)
	if err != nil {
		if errors.Is(err, campaign.ErrRequestNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, request)
}

// getBalance returns the contributed balance of an address
func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	if !wallet.ValidAddress(address) {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid address"))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"address": address,
		"balance": s.service.BalanceOf(address),
	})
}

// getHealth returns a liveness response
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
