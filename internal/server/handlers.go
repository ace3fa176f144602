package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/haulaway/haulaway/internal/geo"
	"github.com/haulaway/haulaway/internal/lifecycle"
	"github.com/haulaway/haulaway/internal/metrics"
	"github.com/haulaway/haulaway/internal/repository"
)

// respondCoreError maps lifecycle sentinels onto HTTP statuses. Anything
// unclassified is an infrastructure failure and hides its detail from the
// client.
func (s *Server) respondCoreError(w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lifecycle.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, lifecycle.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, lifecycle.ErrInvalidTransition), errors.Is(err, lifecycle.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		s.logger.Error("operation failed", zap.String("operation", operation), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

type locationRequest struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID       string          `json:"order_id"`
		StudentID     string          `json:"student_id"`
		JobType       string          `json:"job_type"`
		Volume        float64         `json:"volume"`
		Price         float64         `json:"price"`
		Pickup        locationRequest `json:"pickup"`
		Dropoff       locationRequest `json:"dropoff"`
		ScheduledTime string          `json:"scheduled_time"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scheduled, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scheduled_time, want RFC3339")
		return
	}

	job, err := s.core.CreateJob(r.Context(), lifecycle.CreateJobInput{
		OrderID:        req.OrderID,
		StudentID:      req.StudentID,
		JobType:        repository.JobType(req.JobType),
		Volume:         req.Volume,
		Price:          req.Price,
		PickupAddress:  req.Pickup.Address,
		PickupPoint:    geo.Point{Lat: req.Pickup.Lat, Lon: req.Pickup.Lon},
		DropoffAddress: req.Dropoff.Address,
		DropoffPoint:   geo.Point{Lat: req.Dropoff.Lat, Lon: req.Dropoff.Lon},
		ScheduledTime:  scheduled.UTC(),
	})
	if err != nil {
		s.respondCoreError(w, "create_job", err)
		return
	}

	respondJSON(w, http.StatusCreated, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	filter := lifecycle.JobFilter{Kind: lifecycle.FilterAll}

	switch raw := r.URL.Query().Get("filter"); {
	case raw == "" || raw == "all":
	case raw == "available":
		filter.Kind = lifecycle.FilterAvailable
	case strings.HasPrefix(raw, "mover:"):
		filter.Kind = lifecycle.FilterByMover
		filter.ID = strings.TrimPrefix(raw, "mover:")
	case strings.HasPrefix(raw, "student:"):
		filter.Kind = lifecycle.FilterByStudent
		filter.ID = strings.TrimPrefix(raw, "student:")
	default:
		respondError(w, http.StatusBadRequest, "invalid filter, want all|available|mover:<id>|student:<id>")
		return
	}

	jobs, err := s.core.ListJobs(r.Context(), filter)
	if err != nil {
		s.respondCoreError(w, "list_jobs", err)
		return
	}

	respondJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.core.GetJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, "get_job", err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.core.JobHistory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, "job_history", err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleAcceptJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MoverID string `json:"mover_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := s.core.AcceptJob(r.Context(), mux.Vars(r)["id"], req.MoverID)
	if err != nil {
		s.respondCoreError(w, "accept_job", err)
		return
	}

	respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleSetJobStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActorID string `json:"actor_id"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		respondError(w, http.StatusBadRequest, "missing status")
		return
	}

	job, err := s.core.SetJobStatus(r.Context(), mux.Vars(r)["id"], req.ActorID, repository.JobStatus(req.Status))
	if err != nil {
		s.respondCoreError(w, "set_job_status", err)
		return
	}

	respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleArrived(w http.ResponseWriter, r *http.Request) {
	s.handleMoverVerb(w, r, "request_pickup_confirmation", s.core.RequestPickupConfirmation,
		"pickup confirmation requested")
}

func (s *Server) handleDelivered(w http.ResponseWriter, r *http.Request) {
	s.handleMoverVerb(w, r, "request_delivery_confirmation", s.core.RequestDeliveryConfirmation,
		"delivery confirmation requested")
}

func (s *Server) handleMoverVerb(w http.ResponseWriter, r *http.Request, operation string,
	verb func(ctx context.Context, jobID, moverID string) error, message string) {
	var req struct {
		MoverID string `json:"mover_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := verb(r.Context(), mux.Vars(r)["id"], req.MoverID); err != nil {
		s.respondCoreError(w, operation, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleConfirmPickup(w http.ResponseWriter, r *http.Request) {
	s.handleStudentVerb(w, r, "confirm_pickup", s.core.ConfirmPickup, "pickup confirmed")
}

func (s *Server) handleConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	s.handleStudentVerb(w, r, "confirm_delivery", s.core.ConfirmDelivery, "delivery confirmed")
}

func (s *Server) handleStudentVerb(w http.ResponseWriter, r *http.Request, operation string,
	verb func(ctx context.Context, jobID, studentID string) error, message string) {
	var req struct {
		StudentID string `json:"student_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := verb(r.Context(), mux.Vars(r)["id"], req.StudentID); err != nil {
		s.respondCoreError(w, operation, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID string `json:"student_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := s.core.CancelOrder(r.Context(), mux.Vars(r)["id"], req.StudentID)
	if err != nil {
		s.respondCoreError(w, "cancel_order", err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleListStudentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.core.ListStudentOrders(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, "list_student_orders", err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Schedule json.RawMessage `json:"schedule"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.core.SetAvailability(r.Context(), mux.Vars(r)["id"], req.Schedule); err != nil {
		s.respondCoreError(w, "set_availability", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "availability updated"})
}

func (s *Server) handlePlanRoute(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid or missing lat")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid or missing lon")
		return
	}

	var maxMinutes *float64
	if raw := query.Get("max_minutes"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid max_minutes")
			return
		}
		maxMinutes = &value
	}

	plan, err := s.core.PlanRoute(r.Context(), mux.Vars(r)["id"], geo.Point{Lat: lat, Lon: lon}, maxMinutes)
	if err != nil {
		s.respondCoreError(w, "plan_route", err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleCashOut(w http.ResponseWriter, r *http.Request) {
	amount, err := s.core.CashOut(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, "cash_out", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]float64{"amount": amount})
}
