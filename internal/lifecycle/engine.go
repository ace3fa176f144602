// Package lifecycle is the job/order state machine. All job status mutations
// in the system go through the Engine; each one is a single conditional
// update ("set status where id and status match") so that concurrent actors
// race safely without in-process locking.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haulaway/haulaway/internal/availability"
	"github.com/haulaway/haulaway/internal/db"
	"github.com/haulaway/haulaway/internal/events"
	"github.com/haulaway/haulaway/internal/geo"
	"github.com/haulaway/haulaway/internal/metrics"
	"github.com/haulaway/haulaway/internal/payments"
	"github.com/haulaway/haulaway/internal/planner"
	"github.com/haulaway/haulaway/internal/repository"
)

type JobStore interface {
	CreateTx(ctx context.Context, tx db.Tx, job *repository.Job) error
	GetByID(ctx context.Context, id string) (*repository.Job, error)
	GetAll(ctx context.Context) ([]*repository.Job, error)
	GetByStatus(ctx context.Context, status repository.JobStatus) ([]*repository.Job, error)
	GetByMoverID(ctx context.Context, moverID string) ([]*repository.Job, error)
	GetByStudentID(ctx context.Context, studentID string) ([]*repository.Job, error)
	GetOpenByOrderTx(ctx context.Context, tx db.Tx, orderID string) ([]*repository.Job, error)
	UpdateStatusIfTx(ctx context.Context, tx db.Tx, id string, from, to repository.JobStatus, set repository.StatusSet) (bool, error)
}

type OrderStore interface {
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error)
	GetByStudentID(ctx context.Context, studentID string) ([]*repository.Order, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, id string, status repository.OrderStatus) error
}

type MoverStore interface {
	GetByID(ctx context.Context, id string) (*repository.Mover, error)
	AddCreditsTx(ctx context.Context, tx db.Tx, id string, amount float64) error
	ResetCredits(ctx context.Context, id string) (float64, error)
	UpdateAvailability(ctx context.Context, id string, schedule []byte) error
}

type HistoryStore interface {
	RecordTx(ctx context.Context, tx db.Tx, jobID string, status repository.JobStatus) error
	GetByJobID(ctx context.Context, jobID string) ([]*repository.JobHistoryEntry, error)
}

// JobCache mirrors non-terminal jobs in memory. May be nil.
type JobCache interface {
	Get(id string) (*repository.Job, bool)
	Set(job *repository.Job)
	Delete(id string)
}

type Engine struct {
	db       db.DB
	jobs     JobStore
	orders   OrderStore
	movers   MoverStore
	history  HistoryStore
	events   events.Sink
	payments payments.Refunder
	cache    JobCache
	logger   *zap.Logger
}

func NewEngine(
	database db.DB,
	jobs JobStore,
	orders OrderStore,
	movers MoverStore,
	history HistoryStore,
	sink events.Sink,
	refunder payments.Refunder,
	cache JobCache,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		db:       database,
		jobs:     jobs,
		orders:   orders,
		movers:   movers,
		history:  history,
		events:   sink,
		payments: refunder,
		cache:    cache,
		logger:   logger,
	}
}

type CreateJobInput struct {
	OrderID        string
	StudentID      string
	JobType        repository.JobType
	Volume         float64
	Price          float64
	PickupAddress  string
	PickupPoint    geo.Point
	DropoffAddress string
	DropoffPoint   geo.Point
	ScheduledTime  time.Time
}

func (in CreateJobInput) validate() error {
	switch {
	case in.OrderID == "":
		return fmt.Errorf("%w: order_id is required", ErrValidation)
	case in.StudentID == "":
		return fmt.Errorf("%w: student_id is required", ErrValidation)
	case !in.JobType.Valid():
		return fmt.Errorf("%w: unknown job type %q", ErrValidation, in.JobType)
	case in.Volume <= 0:
		return fmt.Errorf("%w: volume must be positive", ErrValidation)
	case in.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	case in.ScheduledTime.IsZero():
		return fmt.Errorf("%w: scheduled_time is required", ErrValidation)
	}
	return nil
}

// CreateJob creates an AVAILABLE job. A STORAGE job for an unknown order
// creates the order (PENDING) in the same transaction; a RETURN job requires
// the order to exist and belong to the student.
func (e *Engine) CreateJob(ctx context.Context, in CreateJobInput) (*repository.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order, err := e.orders.GetByID(ctx, in.OrderID)
	switch {
	case errors.Is(err, repository.ErrObjectNotFound):
		if in.JobType == repository.JobTypeReturn {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, in.OrderID)
		}
		order = nil
	case err != nil:
		return nil, err
	default:
		if order.StudentID != in.StudentID {
			return nil, fmt.Errorf("%w: order %s does not belong to student %s", ErrForbidden, in.OrderID, in.StudentID)
		}
		if order.Status.Terminal() {
			return nil, fmt.Errorf("%w: order %s is %s", ErrInvalidTransition, in.OrderID, order.Status)
		}
	}

	now := time.Now().UTC()
	job := &repository.Job{
		ID:             uuid.NewString(),
		OrderID:        in.OrderID,
		StudentID:      in.StudentID,
		JobType:        in.JobType,
		Status:         repository.JobStatusAvailable,
		Volume:         in.Volume,
		Price:          in.Price,
		PickupAddress:  in.PickupAddress,
		PickupLat:      in.PickupPoint.Lat,
		PickupLon:      in.PickupPoint.Lon,
		DropoffAddress: in.DropoffAddress,
		DropoffLat:     in.DropoffPoint.Lat,
		DropoffLon:     in.DropoffPoint.Lon,
		ScheduledTime:  in.ScheduledTime,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create job tx: %w", err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if order == nil {
		order = &repository.Order{
			ID:               in.OrderID,
			StudentID:        in.StudentID,
			Status:           repository.OrderStatusPending,
			Volume:           in.Volume,
			Price:            in.Price,
			StudentAddress:   in.PickupAddress,
			WarehouseAddress: in.DropoffAddress,
			PickupTime:       in.ScheduledTime,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := e.orders.CreateTx(ctx, tx, order); err != nil {
			return nil, fmt.Errorf("create order %s: %w", order.ID, err)
		}
	}

	if err := e.jobs.CreateTx(ctx, tx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	if err := e.history.RecordTx(ctx, tx, job.ID, job.Status); err != nil {
		return nil, fmt.Errorf("record job history: %w", err)
	}
	if err := e.events.PublishTx(ctx, tx, "movers", events.EventJobCreated, job); err != nil {
		return nil, fmt.Errorf("publish job.created: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create job tx: %w", err)
	}

	if e.cache != nil {
		e.cache.Set(job)
	}
	metrics.JobsCreatedTotal.Inc()
	e.logger.Info("job created",
		zap.String("job_id", job.ID),
		zap.String("order_id", job.OrderID),
		zap.String("job_type", string(job.JobType)))
	return job, nil
}

func (e *Engine) GetJob(ctx context.Context, id string) (*repository.Job, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: job id is required", ErrValidation)
	}
	if e.cache != nil {
		if job, ok := e.cache.Get(id); ok {
			return job, nil
		}
	}
	job, err := e.jobs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, id)
	}
	return job, err
}

type JobFilterKind int

const (
	FilterAll JobFilterKind = iota
	FilterAvailable
	FilterByMover
	FilterByStudent
)

type JobFilter struct {
	Kind JobFilterKind
	ID   string
}

func (e *Engine) ListJobs(ctx context.Context, filter JobFilter) ([]*repository.Job, error) {
	switch filter.Kind {
	case FilterAvailable:
		return e.jobs.GetByStatus(ctx, repository.JobStatusAvailable)
	case FilterByMover:
		if filter.ID == "" {
			return nil, fmt.Errorf("%w: mover id is required", ErrValidation)
		}
		return e.jobs.GetByMoverID(ctx, filter.ID)
	case FilterByStudent:
		if filter.ID == "" {
			return nil, fmt.Errorf("%w: student id is required", ErrValidation)
		}
		return e.jobs.GetByStudentID(ctx, filter.ID)
	default:
		return e.jobs.GetAll(ctx)
	}
}

func (e *Engine) JobHistory(ctx context.Context, jobID string) ([]*repository.JobHistoryEntry, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id is required", ErrValidation)
	}
	if _, err := e.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return e.history.GetByJobID(ctx, jobID)
}

// AcceptJob atomically assigns an AVAILABLE job to the mover. Exactly one of
// N concurrent acceptors wins; the rest get ErrConflict.
func (e *Engine) AcceptJob(ctx context.Context, jobID, moverID string) (*repository.Job, error) {
	if jobID == "" || moverID == "" {
		return nil, fmt.Errorf("%w: job id and mover id are required", ErrValidation)
	}

	job, tr, err := e.resolveVerb(ctx, VerbAccept, jobID, moverID)
	if err != nil {
		return nil, err
	}

	updated, err := e.applyTransition(ctx, tr, job, moverID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.AcceptConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.JobsAcceptedTotal.Inc()
	e.logger.Info("job accepted", zap.String("job_id", jobID), zap.String("mover_id", moverID))
	return updated, nil
}

// SetJobStatus applies a generic single-edge transition. Only edges the
// transition table marks as generic are reachable here; confirmation edges
// must go through their dedicated operations.
func (e *Engine) SetJobStatus(ctx context.Context, jobID, actorID string, target repository.JobStatus) (*repository.Job, error) {
	if jobID == "" || actorID == "" {
		return nil, fmt.Errorf("%w: job id and actor id are required", ErrValidation)
	}

	job, err := e.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	tr, ok := lookupEdge(job.JobType, job.Status, target)
	if !ok {
		return nil, fmt.Errorf("%w: %s job cannot move %s -> %s via set-status",
			ErrInvalidTransition, job.JobType, job.Status, target)
	}
	if err := e.authorize(tr, job, actorID); err != nil {
		return nil, err
	}

	updated, err := e.applyTransition(ctx, tr, job, actorID)
	if err != nil {
		return nil, err
	}

	if tr.To == repository.JobStatusCompleted {
		metrics.JobsCompletedTotal.Inc()
	}
	e.logger.Info("job status set",
		zap.String("job_id", jobID),
		zap.String("from", string(tr.From)),
		zap.String("to", string(tr.To)))
	return updated, nil
}

func (e *Engine) RequestPickupConfirmation(ctx context.Context, jobID, moverID string) error {
	return e.runVerb(ctx, VerbRequestPickup, jobID, moverID)
}

func (e *Engine) ConfirmPickup(ctx context.Context, jobID, studentID string) error {
	return e.runVerb(ctx, VerbConfirmPickup, jobID, studentID)
}

func (e *Engine) RequestDeliveryConfirmation(ctx context.Context, jobID, moverID string) error {
	return e.runVerb(ctx, VerbRequestDelivery, jobID, moverID)
}

func (e *Engine) ConfirmDelivery(ctx context.Context, jobID, studentID string) error {
	return e.runVerb(ctx, VerbConfirmDelivery, jobID, studentID)
}

func (e *Engine) runVerb(ctx context.Context, verb Verb, jobID, actorID string) error {
	if jobID == "" || actorID == "" {
		return fmt.Errorf("%w: job id and actor id are required", ErrValidation)
	}

	job, tr, err := e.resolveVerb(ctx, verb, jobID, actorID)
	if err != nil {
		return err
	}

	updated, err := e.applyTransition(ctx, tr, job, actorID)
	if err != nil {
		return err
	}

	if tr.To == repository.JobStatusCompleted {
		metrics.JobsCompletedTotal.Inc()
	}
	e.logger.Info("job transition applied",
		zap.String("job_id", jobID),
		zap.String("verb", string(verb)),
		zap.String("to", string(updated.Status)))
	return nil
}

func (e *Engine) loadJob(ctx context.Context, jobID string) (*repository.Job, error) {
	job, err := e.jobs.GetByID(ctx, jobID)
	if errors.Is(err, repository.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// resolveVerb reads the job and checks actor, job type and status against
// the transition table. Actor mismatch wins over type and status checks so a
// foreign mover always sees Forbidden, never a state hint.
func (e *Engine) resolveVerb(ctx context.Context, verb Verb, jobID, actorID string) (*repository.Job, Transition, error) {
	job, err := e.loadJob(ctx, jobID)
	if err != nil {
		return nil, Transition{}, err
	}

	tr, ok := lookupVerb(verb, job.JobType)
	if !ok {
		// The verb exists only for the other job type.
		if err := e.authorizeActor(verb, job, actorID); err != nil {
			return nil, Transition{}, err
		}
		return nil, Transition{}, fmt.Errorf("%w: %s does not apply to %s jobs", ErrInvalidTransition, verb, job.JobType)
	}

	if err := e.authorize(tr, job, actorID); err != nil {
		return nil, Transition{}, err
	}
	if job.Status != tr.From {
		if verb == VerbAccept {
			// A job taken by someone else is a conflict. Re-accepting a job
			// the mover already holds is a bad transition, not a lost race.
			if job.MoverID != nil && *job.MoverID == actorID {
				return nil, Transition{}, fmt.Errorf("%w: job %s is already %s by this mover", ErrInvalidTransition, jobID, job.Status)
			}
			return nil, Transition{}, fmt.Errorf("%w: job %s is no longer available (status %s)", ErrConflict, jobID, job.Status)
		}
		return nil, Transition{}, fmt.Errorf("%w: job %s is %s, %s requires %s",
			ErrInvalidTransition, jobID, job.Status, verb, tr.From)
	}
	return job, tr, nil
}

func (e *Engine) authorize(tr Transition, job *repository.Job, actorID string) error {
	switch tr.Actor {
	case RoleStudent:
		if job.StudentID != actorID {
			return fmt.Errorf("%w: actor %s is not the owning student", ErrForbidden, actorID)
		}
	case RoleMover:
		if tr.Verb == VerbAccept {
			return nil
		}
		if job.MoverID != nil && *job.MoverID != actorID {
			return fmt.Errorf("%w: actor %s is not the assigned mover", ErrForbidden, actorID)
		}
	}
	return nil
}

// authorizeActor applies the actor gate for a verb when no table row matches
// the job's type, so authorization still precedes the type error.
func (e *Engine) authorizeActor(verb Verb, job *repository.Job, actorID string) error {
	switch verb {
	case VerbConfirmPickup, VerbConfirmDelivery:
		if job.StudentID != actorID {
			return fmt.Errorf("%w: actor %s is not the owning student", ErrForbidden, actorID)
		}
	default:
		if job.MoverID != nil && *job.MoverID != actorID {
			return fmt.Errorf("%w: actor %s is not the assigned mover", ErrForbidden, actorID)
		}
	}
	return nil
}

// applyTransition performs the conditional update plus everything that must
// commit with it: history, mover crediting, the order cascade, and the
// outbox events.
func (e *Engine) applyTransition(ctx context.Context, tr Transition, job *repository.Job, actorID string) (*repository.Job, error) {
	now := time.Now().UTC()
	set := repository.StatusSet{}
	if tr.Verb == VerbAccept {
		set.MoverID = &actorID
	}
	if tr.SetVerification {
		set.VerificationRequestedAt = &now
	}
	if tr.ClearVerification {
		set.ClearVerification = true
	}

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transition tx: %w", err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	applied, err := e.jobs.UpdateStatusIfTx(ctx, tx, job.ID, tr.From, tr.To, set)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, e.explainUnapplied(ctx, tr, job.ID, actorID)
	}

	if err := e.history.RecordTx(ctx, tx, job.ID, tr.To); err != nil {
		return nil, fmt.Errorf("record job history: %w", err)
	}

	if tr.Credit {
		moverID := actorID
		if job.MoverID != nil {
			moverID = *job.MoverID
		}
		if err := e.movers.AddCreditsTx(ctx, tx, moverID, job.Price); err != nil {
			return nil, fmt.Errorf("credit mover %s: %w", moverID, err)
		}
	}

	if tr.Cascade != "" {
		if err := e.orders.UpdateStatusTx(ctx, tx, job.OrderID, tr.Cascade); err != nil {
			return nil, fmt.Errorf("cascade order %s to %s: %w", job.OrderID, tr.Cascade, err)
		}
	}

	updated := *job
	updated.Status = tr.To
	updated.UpdatedAt = now
	if set.MoverID != nil {
		updated.MoverID = set.MoverID
	}
	if set.VerificationRequestedAt != nil {
		updated.VerificationRequestedAt = set.VerificationRequestedAt
	}
	if set.ClearVerification {
		updated.VerificationRequestedAt = nil
	}

	if err := e.events.PublishTx(ctx, tx, "order:"+job.OrderID, events.EventJobUpdated, &updated); err != nil {
		return nil, fmt.Errorf("publish job.updated: %w", err)
	}
	if tr.Cascade != "" {
		payload := orderStatusPayload{ID: job.OrderID, Status: tr.Cascade}
		if err := e.events.PublishTx(ctx, tx, "order:"+job.OrderID, events.EventOrderUpdated, payload); err != nil {
			return nil, fmt.Errorf("publish order.updated: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transition tx: %w", err)
	}

	if e.cache != nil {
		if updated.Status.Terminal() {
			e.cache.Delete(updated.ID)
		} else {
			e.cache.Set(&updated)
		}
	}
	return &updated, nil
}

type orderStatusPayload struct {
	ID     string                 `json:"id"`
	Status repository.OrderStatus `json:"status"`
}

// explainUnapplied disambiguates a conditional update that matched no rows:
// the job is gone, or its status changed under us.
func (e *Engine) explainUnapplied(ctx context.Context, tr Transition, jobID, actorID string) error {
	current, err := e.jobs.GetByID(ctx, jobID)
	if errors.Is(err, repository.ErrObjectNotFound) {
		return fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}
	if err != nil {
		return err
	}
	if tr.Verb == VerbAccept {
		if current.MoverID != nil && *current.MoverID == actorID {
			return fmt.Errorf("%w: job %s is already %s by this mover", ErrInvalidTransition, jobID, current.Status)
		}
		return fmt.Errorf("%w: job %s was accepted concurrently (now %s)", ErrConflict, jobID, current.Status)
	}
	return fmt.Errorf("%w: job %s is %s, want %s", ErrInvalidTransition, jobID, current.Status, tr.From)
}

// CancelOrder cancels the order and all of its open jobs, then requests a
// refund. Refund failure is logged and swallowed: the state transition is
// authoritative.
func (e *Engine) CancelOrder(ctx context.Context, orderID, studentID string) (*repository.Order, error) {
	if orderID == "" || studentID == "" {
		return nil, fmt.Errorf("%w: order id and student id are required", ErrValidation)
	}

	order, err := e.orders.GetByID(ctx, orderID)
	if errors.Is(err, repository.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	if order.StudentID != studentID {
		return nil, fmt.Errorf("%w: actor %s is not the owning student", ErrForbidden, studentID)
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order %s is already %s", ErrInvalidTransition, orderID, order.Status)
	}

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	locked, err := e.orders.GetByIDTx(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, err
	}
	if locked.Status.Terminal() {
		return nil, fmt.Errorf("%w: order %s is already %s", ErrInvalidTransition, orderID, locked.Status)
	}

	openJobs, err := e.jobs.GetOpenByOrderTx(ctx, tx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load open jobs for order %s: %w", orderID, err)
	}

	now := time.Now().UTC()
	cancelled := make([]*repository.Job, 0, len(openJobs))
	for _, job := range openJobs {
		applied, err := e.jobs.UpdateStatusIfTx(ctx, tx, job.ID, job.Status, repository.JobStatusCancelled,
			repository.StatusSet{ClearVerification: true})
		if err != nil {
			return nil, err
		}
		if !applied {
			// Row was locked by our FOR UPDATE read; a miss here means the
			// snapshot is torn and the whole cancellation rolls back.
			return nil, fmt.Errorf("%w: job %s changed during cancellation", ErrConflict, job.ID)
		}
		if err := e.history.RecordTx(ctx, tx, job.ID, repository.JobStatusCancelled); err != nil {
			return nil, fmt.Errorf("record job history: %w", err)
		}

		snapshot := *job
		snapshot.Status = repository.JobStatusCancelled
		snapshot.VerificationRequestedAt = nil
		snapshot.UpdatedAt = now
		if err := e.events.PublishTx(ctx, tx, "order:"+orderID, events.EventJobUpdated, &snapshot); err != nil {
			return nil, fmt.Errorf("publish job.updated: %w", err)
		}
		cancelled = append(cancelled, &snapshot)
	}

	if err := e.orders.UpdateStatusTx(ctx, tx, orderID, repository.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel order %s: %w", orderID, err)
	}
	payload := orderStatusPayload{ID: orderID, Status: repository.OrderStatusCancelled}
	if err := e.events.PublishTx(ctx, tx, "order:"+orderID, events.EventOrderUpdated, payload); err != nil {
		return nil, fmt.Errorf("publish order.updated: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel tx: %w", err)
	}

	if e.cache != nil {
		for _, job := range cancelled {
			e.cache.Delete(job.ID)
		}
	}
	metrics.OrdersCancelledTotal.Inc()

	if locked.PaymentIntentID != nil {
		if err := e.payments.Refund(ctx, *locked.PaymentIntentID); err != nil {
			e.logger.Error("refund failed after cancellation",
				zap.String("order_id", orderID),
				zap.String("payment_intent_id", *locked.PaymentIntentID),
				zap.Error(err))
		}
	}

	result := *locked
	result.Status = repository.OrderStatusCancelled
	result.UpdatedAt = now
	e.logger.Info("order cancelled",
		zap.String("order_id", orderID),
		zap.Int("jobs_cancelled", len(cancelled)))
	return &result, nil
}

// PlanRoute assembles the planner's inputs (mover schedule, AVAILABLE job
// snapshot) and runs the pure planner over them.
func (e *Engine) PlanRoute(ctx context.Context, moverID string, origin geo.Point, maxDurationMinutes *float64) (*planner.Plan, error) {
	if moverID == "" {
		return nil, fmt.Errorf("%w: mover id is required", ErrValidation)
	}
	if maxDurationMinutes != nil && *maxDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: max duration must be positive", ErrValidation)
	}

	mover, err := e.movers.GetByID(ctx, moverID)
	if errors.Is(err, repository.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: mover %s", ErrNotFound, moverID)
	}
	if err != nil {
		return nil, err
	}

	schedule, err := availability.Parse(mover.Availability)
	if err != nil {
		return nil, err
	}

	candidates, err := e.jobs.GetByStatus(ctx, repository.JobStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("load available jobs: %w", err)
	}

	plan := planner.Build(planner.Input{
		MoverID:            moverID,
		Origin:             origin,
		Now:                time.Now().UTC(),
		Schedule:           schedule,
		Candidates:         candidates,
		MaxDurationMinutes: maxDurationMinutes,
	})

	metrics.RoutePlansTotal.Inc()
	e.logger.Debug("route planned",
		zap.String("mover_id", moverID),
		zap.Int("stops", plan.Metrics.TotalJobs),
		zap.Float64("earnings", plan.Metrics.TotalEarnings))
	return plan, nil
}

// SetAvailability validates and stores a mover's weekly schedule.
func (e *Engine) SetAvailability(ctx context.Context, moverID string, raw []byte) error {
	if moverID == "" {
		return fmt.Errorf("%w: mover id is required", ErrValidation)
	}

	schedule, err := availability.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	err = e.movers.UpdateAvailability(ctx, moverID, raw)
	if errors.Is(err, repository.ErrObjectNotFound) {
		return fmt.Errorf("%w: mover %s", ErrNotFound, moverID)
	}
	if err != nil {
		return err
	}
	e.logger.Info("mover availability updated", zap.String("mover_id", moverID))
	return nil
}

// ListStudentOrders returns all of a student's orders.
func (e *Engine) ListStudentOrders(ctx context.Context, studentID string) ([]*repository.Order, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student id is required", ErrValidation)
	}
	return e.orders.GetByStudentID(ctx, studentID)
}

// CashOut zeroes the mover's credit balance and returns the amount paid out.
func (e *Engine) CashOut(ctx context.Context, moverID string) (float64, error) {
	if moverID == "" {
		return 0, fmt.Errorf("%w: mover id is required", ErrValidation)
	}
	amount, err := e.movers.ResetCredits(ctx, moverID)
	if errors.Is(err, repository.ErrObjectNotFound) {
		return 0, fmt.Errorf("%w: mover %s", ErrNotFound, moverID)
	}
	if err != nil {
		return 0, err
	}
	e.logger.Info("mover cashed out",
		zap.String("mover_id", moverID),
		zap.Float64("amount", amount))
	return amount, nil
}
