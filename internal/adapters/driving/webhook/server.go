// Package webhook receives GitHub webhook deliveries and feeds them to the
// sync service.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/issuesync/internal/connectors/github"
	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
	"github.com/custodia-labs/issuesync/internal/logger"
)

// Paths served by the webhook server.
const (
	WebhookPath = "/webhook"
	HealthPath  = "/healthz"
)

// Server is an HTTP endpoint for GitHub webhook deliveries.
type Server struct {
	mu       sync.Mutex
	addr     string
	secret   []byte
	service  driving.SyncService
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// Response is the JSON body returned for a handled delivery.
type Response struct {
	Event   string `json:"event"`
	Outcome string `json:"outcome,omitempty"`
	Created int    `json:"created,omitempty"`
	Missing int    `json:"missing,omitempty"`
	Failed  int    `json:"failed,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewServer creates a webhook server. An empty secret disables signature
// validation.
func NewServer(addr, secret string, service driving.SyncService) *Server {
	return &Server{
		addr:    addr,
		secret:  []byte(secret),
		service: service,
		errChan: make(chan error, 1),
	}
}

// Handler returns the HTTP handler without starting a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(WebhookPath, s.handleWebhook)
	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "ok")
	})
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	logger.Info("Listening for webhooks on %s%s", listener.Addr(), WebhookPath)
	return nil
}

// Run starts the server and blocks until ctx is done or serving fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-s.errChan:
		return err
	}
}

// Stop shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Addr returns the listening address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := gh.ValidatePayload(r, s.secret)
	if err != nil {
		logger.Warn("Rejected webhook delivery: %v", err)
		http.Error(w, "invalid signature or payload", http.StatusUnauthorized)
		return
	}

	event := gh.WebHookType(r)
	delivery := gh.DeliveryID(r)
	logger.Debug("Received %s delivery %s", event, delivery)

	if event == domain.EventPing {
		writeJSON(w, http.StatusOK, Response{Event: event, Message: "pong"})
		return
	}

	trigger, err := github.ParseTrigger(event, payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.service.Dispatch(r.Context(), trigger)
	resp := toResponse(event, result)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, domain.ErrUnsupportedEvent):
		resp.Message = "event ignored"
		writeJSON(w, http.StatusAccepted, resp)
	case errors.Is(err, domain.ErrInvalidInput):
		resp.Message = err.Error()
		writeJSON(w, http.StatusBadRequest, resp)
	default:
		logger.Error("Delivery %s failed: %v", delivery, err)
		resp.Message = err.Error()
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

func toResponse(event string, result *driving.DispatchResult) Response {
	resp := Response{Event: event}
	if result == nil {
		return resp
	}
	resp.Outcome = string(result.Outcome)
	if report := result.Report; report != nil {
		resp.Created = len(report.Created)
		resp.Missing = len(report.Missing)
		resp.Failed = len(report.Failed)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
