//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=server_mocks
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/haulaway/haulaway/internal/events"
	"github.com/haulaway/haulaway/internal/geo"
	"github.com/haulaway/haulaway/internal/lifecycle"
	"github.com/haulaway/haulaway/internal/planner"
	"github.com/haulaway/haulaway/internal/repository"
)

// Core is the lifecycle surface the HTTP layer depends on.
type Core interface {
	CreateJob(ctx context.Context, in lifecycle.CreateJobInput) (*repository.Job, error)
	GetJob(ctx context.Context, id string) (*repository.Job, error)
	ListJobs(ctx context.Context, filter lifecycle.JobFilter) ([]*repository.Job, error)
	JobHistory(ctx context.Context, jobID string) ([]*repository.JobHistoryEntry, error)
	AcceptJob(ctx context.Context, jobID, moverID string) (*repository.Job, error)
	SetJobStatus(ctx context.Context, jobID, actorID string, target repository.JobStatus) (*repository.Job, error)
	RequestPickupConfirmation(ctx context.Context, jobID, moverID string) error
	ConfirmPickup(ctx context.Context, jobID, studentID string) error
	RequestDeliveryConfirmation(ctx context.Context, jobID, moverID string) error
	ConfirmDelivery(ctx context.Context, jobID, studentID string) error
	CancelOrder(ctx context.Context, orderID, studentID string) (*repository.Order, error)
	ListStudentOrders(ctx context.Context, studentID string) ([]*repository.Order, error)
	SetAvailability(ctx context.Context, moverID string, raw []byte) error
	PlanRoute(ctx context.Context, moverID string, origin geo.Point, maxDurationMinutes *float64) (*planner.Plan, error)
	CashOut(ctx context.Context, moverID string) (float64, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

type Server struct {
	core         Core
	userRepo     UserRepo
	server       *http.Server
	auditManager *AuditManager
	logger       *zap.Logger
}

func New(core Core, userRepo UserRepo, sink events.Sink, logger *zap.Logger) *Server {
	auditManager := NewAuditManager(2, 5, 500*time.Millisecond, sink, logger)
	return &Server{
		core:         core,
		userRepo:     userRepo,
		auditManager: auditManager,
		logger:       logger,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.auditManager.Start(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.auditManager.Shutdown(ctx)
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	// Metrics stay outside auth and audit.
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/").Subrouter()
	api.Use(s.auditLogMiddleware, s.basicAuthMiddleware)

	api.HandleFunc("/jobs", s.handleCreateJob).Methods(http.MethodPost).Name("createJob")
	api.HandleFunc("/jobs", s.handleListJobs).Methods(http.MethodGet).Name("listJobs")
	api.HandleFunc("/jobs/{id}", s.handleGetJob).Methods(http.MethodGet).Name("getJob")
	api.HandleFunc("/jobs/{id}/history", s.handleJobHistory).Methods(http.MethodGet).Name("jobHistory")
	api.HandleFunc("/jobs/{id}/accept", s.handleAcceptJob).Methods(http.MethodPost).Name("acceptJob")
	api.HandleFunc("/jobs/{id}/status", s.handleSetJobStatus).Methods(http.MethodPut).Name("setJobStatus")
	api.HandleFunc("/jobs/{id}/arrived", s.handleArrived).Methods(http.MethodPost).Name("requestPickupConfirmation")
	api.HandleFunc("/jobs/{id}/confirm-pickup", s.handleConfirmPickup).Methods(http.MethodPost).Name("confirmPickup")
	api.HandleFunc("/jobs/{id}/delivered", s.handleDelivered).Methods(http.MethodPost).Name("requestDeliveryConfirmation")
	api.HandleFunc("/jobs/{id}/confirm-delivery", s.handleConfirmDelivery).Methods(http.MethodPost).Name("confirmDelivery")
	api.HandleFunc("/orders/{id}/cancel", s.handleCancelOrder).Methods(http.MethodPost).Name("cancelOrder")
	api.HandleFunc("/students/{id}/orders", s.handleListStudentOrders).Methods(http.MethodGet).Name("listStudentOrders")
	api.HandleFunc("/movers/{id}/availability", s.handleSetAvailability).Methods(http.MethodPut).Name("setAvailability")
	api.HandleFunc("/movers/{id}/route", s.handlePlanRoute).Methods(http.MethodGet).Name("planRoute")
	api.HandleFunc("/movers/{id}/cashout", s.handleCashOut).Methods(http.MethodPost).Name("cashOut")

	return router
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		valid, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
