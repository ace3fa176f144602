package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haulaway/haulaway/internal/db"
	"github.com/haulaway/haulaway/internal/geo"
	"github.com/haulaway/haulaway/internal/repository"
)

// memState is a mutex-backed in-memory store shared by the fakes below. Its
// conditional update mirrors the SQL "WHERE id AND status" semantics, which
// is what the engine's concurrency guarantees rest on.
type memState struct {
	mu        sync.Mutex
	jobs      map[string]*repository.Job
	orders    map[string]*repository.Order
	movers    map[string]*repository.Mover
	history   map[string][]repository.JobStatus
	events    []string
	refunds   []string
	refundErr error
}

func newMemState() *memState {
	return &memState{
		jobs:    make(map[string]*repository.Job),
		orders:  make(map[string]*repository.Order),
		movers:  make(map[string]*repository.Mover),
		history: make(map[string][]repository.JobStatus),
	}
}

type fakeTx struct{}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }
func (fakeTx) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}
func (fakeTx) Get(context.Context, interface{}, string, ...interface{}) error    { return nil }
func (fakeTx) Select(context.Context, interface{}, string, ...interface{}) error { return nil }

type fakeDB struct{}

func (fakeDB) Get(context.Context, interface{}, string, ...interface{}) error    { return nil }
func (fakeDB) Select(context.Context, interface{}, string, ...interface{}) error { return nil }
func (fakeDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}
func (fakeDB) ExecQueryRow(context.Context, string, ...interface{}) pgx.Row { return nil }
func (fakeDB) BeginTx(context.Context) (db.Tx, error)                       { return fakeTx{}, nil }

type fakeJobs struct{ s *memState }

func (f *fakeJobs) CreateTx(_ context.Context, _ db.Tx, job *repository.Job) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	jobCopy := *job
	f.s.jobs[job.ID] = &jobCopy
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, id string) (*repository.Job, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	job, ok := f.s.jobs[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	jobCopy := *job
	return &jobCopy, nil
}

func (f *fakeJobs) GetAll(ctx context.Context) ([]*repository.Job, error) {
	return f.collect(func(*repository.Job) bool { return true }), nil
}

func (f *fakeJobs) GetByStatus(_ context.Context, status repository.JobStatus) ([]*repository.Job, error) {
	return f.collect(func(j *repository.Job) bool { return j.Status == status }), nil
}

func (f *fakeJobs) GetByMoverID(_ context.Context, moverID string) ([]*repository.Job, error) {
	return f.collect(func(j *repository.Job) bool { return j.MoverID != nil && *j.MoverID == moverID }), nil
}

func (f *fakeJobs) GetByStudentID(_ context.Context, studentID string) ([]*repository.Job, error) {
	return f.collect(func(j *repository.Job) bool { return j.StudentID == studentID }), nil
}

func (f *fakeJobs) GetOpenByOrderTx(_ context.Context, _ db.Tx, orderID string) ([]*repository.Job, error) {
	return f.collect(func(j *repository.Job) bool { return j.OrderID == orderID && !j.Status.Terminal() }), nil
}

func (f *fakeJobs) collect(keep func(*repository.Job) bool) []*repository.Job {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*repository.Job
	for _, job := range f.s.jobs {
		if keep(job) {
			jobCopy := *job
			out = append(out, &jobCopy)
		}
	}
	return out
}

func (f *fakeJobs) UpdateStatusIfTx(_ context.Context, _ db.Tx, id string, from, to repository.JobStatus, set repository.StatusSet) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	job, ok := f.s.jobs[id]
	if !ok || job.Status != from {
		return false, nil
	}
	job.Status = to
	job.UpdatedAt = time.Now().UTC()
	if set.MoverID != nil {
		job.MoverID = set.MoverID
	}
	if set.VerificationRequestedAt != nil {
		job.VerificationRequestedAt = set.VerificationRequestedAt
	}
	if set.ClearVerification {
		job.VerificationRequestedAt = nil
	}
	return true, nil
}

type fakeOrders struct{ s *memState }

func (f *fakeOrders) CreateTx(_ context.Context, _ db.Tx, order *repository.Order) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	orderCopy := *order
	f.s.orders[order.ID] = &orderCopy
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*repository.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	order, ok := f.s.orders[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	orderCopy := *order
	return &orderCopy, nil
}

func (f *fakeOrders) GetByIDTx(ctx context.Context, _ db.Tx, id string) (*repository.Order, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeOrders) GetByStudentID(_ context.Context, studentID string) ([]*repository.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*repository.Order
	for _, order := range f.s.orders {
		if order.StudentID == studentID {
			orderCopy := *order
			out = append(out, &orderCopy)
		}
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatusTx(_ context.Context, _ db.Tx, id string, status repository.OrderStatus) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	order, ok := f.s.orders[id]
	if !ok {
		return repository.ErrObjectNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return nil
}

type fakeMovers struct{ s *memState }

func (f *fakeMovers) GetByID(_ context.Context, id string) (*repository.Mover, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	mover, ok := f.s.movers[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	moverCopy := *mover
	return &moverCopy, nil
}

func (f *fakeMovers) AddCreditsTx(_ context.Context, _ db.Tx, id string, amount float64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	mover, ok := f.s.movers[id]
	if !ok {
		return repository.ErrObjectNotFound
	}
	mover.Credits += amount
	return nil
}

func (f *fakeMovers) ResetCredits(_ context.Context, id string) (float64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	mover, ok := f.s.movers[id]
	if !ok {
		return 0, repository.ErrObjectNotFound
	}
	balance := mover.Credits
	mover.Credits = 0
	return balance, nil
}

func (f *fakeMovers) UpdateAvailability(_ context.Context, id string, schedule []byte) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	mover, ok := f.s.movers[id]
	if !ok {
		return repository.ErrObjectNotFound
	}
	mover.Availability = schedule
	return nil
}

type fakeHistory struct{ s *memState }

func (f *fakeHistory) RecordTx(_ context.Context, _ db.Tx, jobID string, status repository.JobStatus) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.history[jobID] = append(f.s.history[jobID], status)
	return nil
}

func (f *fakeHistory) GetByJobID(_ context.Context, jobID string) ([]*repository.JobHistoryEntry, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*repository.JobHistoryEntry
	for _, status := range f.s.history[jobID] {
		out = append(out, &repository.JobHistoryEntry{JobID: jobID, Status: status})
	}
	return out, nil
}

type fakeSink struct{ s *memState }

func (f *fakeSink) Publish(_ context.Context, _ string, event string, _ interface{}) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.events = append(f.s.events, event)
	return nil
}

func (f *fakeSink) PublishTx(ctx context.Context, _ db.Tx, room, event string, payload interface{}) error {
	return f.Publish(ctx, room, event, payload)
}

type fakeRefunder struct{ s *memState }

func (f *fakeRefunder) Refund(_ context.Context, paymentIntentID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.refundErr != nil {
		return f.s.refundErr
	}
	f.s.refunds = append(f.s.refunds, paymentIntentID)
	return nil
}

func (f *fakeRefunder) Close() error { return nil }

func newTestEngine(state *memState) *Engine {
	return NewEngine(
		fakeDB{},
		&fakeJobs{state},
		&fakeOrders{state},
		&fakeMovers{state},
		&fakeHistory{state},
		&fakeSink{state},
		&fakeRefunder{state},
		nil,
		zap.NewNop(),
	)
}

func seedMover(state *memState, id string) {
	state.movers[id] = &repository.Mover{ID: id, Name: id}
}

func seedJob(state *memState, job repository.Job) {
	if job.Status == "" {
		job.Status = repository.JobStatusAvailable
	}
	jobCopy := job
	state.jobs[job.ID] = &jobCopy
	if _, ok := state.orders[job.OrderID]; !ok {
		state.orders[job.OrderID] = &repository.Order{
			ID:        job.OrderID,
			StudentID: job.StudentID,
			Status:    repository.OrderStatusPending,
		}
	}
}

func storageJob(id, orderID, studentID string) repository.Job {
	return repository.Job{
		ID:            id,
		OrderID:       orderID,
		StudentID:     studentID,
		JobType:       repository.JobTypeStorage,
		Status:        repository.JobStatusAvailable,
		Volume:        2,
		Price:         80,
		ScheduledTime: time.Now().Add(24 * time.Hour),
	}
}

func returnJob(id, orderID, studentID string) repository.Job {
	job := storageJob(id, orderID, studentID)
	job.JobType = repository.JobTypeReturn
	return job
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	validInput := func() CreateJobInput {
		return CreateJobInput{
			OrderID:       "order-1",
			StudentID:     "student-1",
			JobType:       repository.JobTypeStorage,
			Volume:        2,
			Price:         80,
			PickupPoint:   geo.Point{Lat: 55.75, Lon: 37.61},
			DropoffPoint:  geo.Point{Lat: 55.80, Lon: 37.65},
			ScheduledTime: time.Now().Add(24 * time.Hour),
		}
	}

	t.Run("storage job creates pending order", func(t *testing.T) {
		state := newMemState()
		engine := newTestEngine(state)

		job, err := engine.CreateJob(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, repository.JobStatusAvailable, job.Status)
		assert.NotEmpty(t, job.ID)

		order, ok := state.orders["order-1"]
		require.True(t, ok)
		assert.Equal(t, repository.OrderStatusPending, order.Status)
		assert.Equal(t, []repository.JobStatus{repository.JobStatusAvailable}, state.history[job.ID])
		assert.Contains(t, state.events, "job.created")
	})

	t.Run("return job requires existing order", func(t *testing.T) {
		state := newMemState()
		engine := newTestEngine(state)

		in := validInput()
		in.JobType = repository.JobTypeReturn
		_, err := engine.CreateJob(ctx, in)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("order ownership is enforced", func(t *testing.T) {
		state := newMemState()
		state.orders["order-1"] = &repository.Order{
			ID: "order-1", StudentID: "someone-else", Status: repository.OrderStatusInStorage,
		}
		engine := newTestEngine(state)

		_, err := engine.CreateJob(ctx, validInput())
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("terminal order rejects new jobs", func(t *testing.T) {
		state := newMemState()
		state.orders["order-1"] = &repository.Order{
			ID: "order-1", StudentID: "student-1", Status: repository.OrderStatusCancelled,
		}
		engine := newTestEngine(state)

		_, err := engine.CreateJob(ctx, validInput())
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("validation", func(t *testing.T) {
		state := newMemState()
		engine := newTestEngine(state)

		bad := validInput()
		bad.Volume = 0
		_, err := engine.CreateJob(ctx, bad)
		assert.ErrorIs(t, err, ErrValidation)

		bad = validInput()
		bad.JobType = "TELEPORT"
		_, err = engine.CreateJob(ctx, bad)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAcceptJob(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns mover and cascades order", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		seedMover(state, "mover-1")
		engine := newTestEngine(state)

		job, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)
		assert.Equal(t, repository.JobStatusAccepted, job.Status)
		require.NotNil(t, job.MoverID)
		assert.Equal(t, "mover-1", *job.MoverID)

		assert.Equal(t, repository.OrderStatusAccepted, state.orders["order-1"].Status)
		assert.Contains(t, state.events, "job.updated")
		assert.Contains(t, state.events, "order.updated")
	})

	t.Run("unknown job", func(t *testing.T) {
		state := newMemState()
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "missing", "mover-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("job taken by another mover conflicts", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)

		_, err = engine.AcceptJob(ctx, "job-1", "mover-2")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("re-accepting an owned job is a bad transition, not a conflict", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)

		_, err = engine.AcceptJob(ctx, "job-1", "mover-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NotErrorIs(t, err, ErrConflict)
	})
}

// TestAcceptJobConcurrent is the at-most-one-mover guarantee: N movers race
// for one job, exactly one wins, everyone else gets a conflict.
func TestAcceptJobConcurrent(t *testing.T) {
	const racers = 40

	state := newMemState()
	seedJob(state, storageJob("job-1", "order-1", "student-1"))
	engine := newTestEngine(state)

	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			moverID := "mover-" + string(rune('a'+n%26)) + string(rune('a'+n/26))
			_, results[n] = engine.AcceptJob(context.Background(), "job-1", moverID)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrConflict):
			conflicts++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)

	job := state.jobs["job-1"]
	assert.Equal(t, repository.JobStatusAccepted, job.Status)
	require.NotNil(t, job.MoverID)
}

func TestStorageLifecycle(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	seedJob(state, storageJob("job-1", "order-1", "student-1"))
	seedMover(state, "mover-1")
	engine := newTestEngine(state)

	_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
	require.NoError(t, err)

	require.NoError(t, engine.RequestPickupConfirmation(ctx, "job-1", "mover-1"))
	assert.Equal(t, repository.JobStatusAwaitingStudentConf, state.jobs["job-1"].Status)
	assert.NotNil(t, state.jobs["job-1"].VerificationRequestedAt)

	require.NoError(t, engine.ConfirmPickup(ctx, "job-1", "student-1"))
	assert.Equal(t, repository.JobStatusPickedUp, state.jobs["job-1"].Status)
	assert.Nil(t, state.jobs["job-1"].VerificationRequestedAt)
	assert.Equal(t, repository.OrderStatusPickedUp, state.orders["order-1"].Status)

	job, err := engine.SetJobStatus(ctx, "job-1", "mover-1", repository.JobStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, repository.JobStatusCompleted, job.Status)
	assert.Equal(t, repository.OrderStatusInStorage, state.orders["order-1"].Status)
	assert.Equal(t, 80.0, state.movers["mover-1"].Credits)

	assert.Equal(t, []repository.JobStatus{
		repository.JobStatusAccepted,
		repository.JobStatusAwaitingStudentConf,
		repository.JobStatusPickedUp,
		repository.JobStatusCompleted,
	}, state.history["job-1"])
}

func TestReturnLifecycle(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	seedJob(state, returnJob("job-1", "order-1", "student-1"))
	seedMover(state, "mover-1")
	engine := newTestEngine(state)

	_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
	require.NoError(t, err)

	// Return pickup happens at the warehouse, no student confirmation.
	_, err = engine.SetJobStatus(ctx, "job-1", "mover-1", repository.JobStatusPickedUp)
	require.NoError(t, err)
	assert.Equal(t, repository.OrderStatusAccepted, state.orders["order-1"].Status)

	require.NoError(t, engine.RequestDeliveryConfirmation(ctx, "job-1", "mover-1"))
	require.NoError(t, engine.ConfirmDelivery(ctx, "job-1", "student-1"))

	assert.Equal(t, repository.JobStatusCompleted, state.jobs["job-1"].Status)
	assert.Equal(t, repository.OrderStatusCompleted, state.orders["order-1"].Status)
	assert.Equal(t, 80.0, state.movers["mover-1"].Credits)
}

func TestTransitionRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("storage job cannot skip pickup confirmation", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)

		_, err = engine.SetJobStatus(ctx, "job-1", "mover-1", repository.JobStatusPickedUp)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("foreign mover is forbidden before state is revealed", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)

		err = engine.RequestPickupConfirmation(ctx, "job-1", "mover-2")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("pickup confirmation on a return job", func(t *testing.T) {
		state := newMemState()
		seedJob(state, returnJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)

		err = engine.RequestPickupConfirmation(ctx, "job-1", "mover-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("wrong student cannot confirm", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)
		require.NoError(t, engine.RequestPickupConfirmation(ctx, "job-1", "mover-1"))

		err = engine.ConfirmPickup(ctx, "job-1", "student-2")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rejected transition changes nothing", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)

		before := *state.jobs["job-1"]
		_, err = engine.SetJobStatus(ctx, "job-1", "mover-1", repository.JobStatusCompleted)
		require.ErrorIs(t, err, ErrInvalidTransition)

		assert.Equal(t, before.Status, state.jobs["job-1"].Status)
		assert.Equal(t, []repository.JobStatus{repository.JobStatusAccepted}, state.history["job-1"])
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels open jobs and refunds", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
		require.NoError(t, err)

		intent := "pi_123"
		state.orders["order-1"].PaymentIntentID = &intent

		order, err := engine.CancelOrder(ctx, "order-1", "student-1")
		require.NoError(t, err)
		assert.Equal(t, repository.OrderStatusCancelled, order.Status)
		assert.Equal(t, repository.JobStatusCancelled, state.jobs["job-1"].Status)
		assert.Equal(t, []string{"pi_123"}, state.refunds)
	})

	t.Run("refund failure does not undo cancellation", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		state.refundErr = context.DeadlineExceeded
		intent := "pi_456"
		state.orders["order-1"].PaymentIntentID = &intent
		engine := newTestEngine(state)

		order, err := engine.CancelOrder(ctx, "order-1", "student-1")
		require.NoError(t, err)
		assert.Equal(t, repository.OrderStatusCancelled, order.Status)
		assert.Empty(t, state.refunds)
	})

	t.Run("only the owning student may cancel", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.CancelOrder(ctx, "order-1", "student-2")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("cancelling twice is rejected", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		engine := newTestEngine(state)

		_, err := engine.CancelOrder(ctx, "order-1", "student-1")
		require.NoError(t, err)

		_, err = engine.CancelOrder(ctx, "order-1", "student-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestPlanRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("plans over available jobs", func(t *testing.T) {
		state := newMemState()
		job := storageJob("job-1", "order-1", "student-1")
		job.ScheduledTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // Monday
		job.PickupLat, job.PickupLon = 55.75, 37.61
		job.DropoffLat, job.DropoffLon = 55.80, 37.65
		seedJob(state, job)

		state.movers["mover-1"] = &repository.Mover{
			ID:           "mover-1",
			Availability: []byte(`{"monday":[{"start":"08:00","end":"20:00"}]}`),
		}
		engine := newTestEngine(state)

		plan, err := engine.PlanRoute(ctx, "mover-1", geo.Point{Lat: 55.75, Lon: 37.61}, nil)
		require.NoError(t, err)
		require.Len(t, plan.Route, 1)
		assert.Equal(t, "job-1", plan.Route[0].Job.ID)
		assert.False(t, plan.NoJobsAvailable)
	})

	t.Run("empty schedule yields empty plan, not an error", func(t *testing.T) {
		state := newMemState()
		seedJob(state, storageJob("job-1", "order-1", "student-1"))
		seedMover(state, "mover-1")
		engine := newTestEngine(state)

		plan, err := engine.PlanRoute(ctx, "mover-1", geo.Point{}, nil)
		require.NoError(t, err)
		assert.True(t, plan.NoJobsAvailable)
		assert.Empty(t, plan.Route)
	})

	t.Run("unknown mover", func(t *testing.T) {
		state := newMemState()
		engine := newTestEngine(state)

		_, err := engine.PlanRoute(ctx, "missing", geo.Point{}, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-positive budget is rejected", func(t *testing.T) {
		state := newMemState()
		seedMover(state, "mover-1")
		engine := newTestEngine(state)

		budget := 0.0
		_, err := engine.PlanRoute(ctx, "mover-1", geo.Point{}, &budget)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCashOut(t *testing.T) {
	ctx := context.Background()

	t.Run("returns and zeroes the balance", func(t *testing.T) {
		state := newMemState()
		seedMover(state, "mover-1")
		state.movers["mover-1"].Credits = 120

		engine := newTestEngine(state)

		amount, err := engine.CashOut(ctx, "mover-1")
		require.NoError(t, err)
		assert.Equal(t, 120.0, amount)
		assert.Zero(t, state.movers["mover-1"].Credits)

		amount, err = engine.CashOut(ctx, "mover-1")
		require.NoError(t, err)
		assert.Zero(t, amount)
	})

	t.Run("unknown mover", func(t *testing.T) {
		state := newMemState()
		engine := newTestEngine(state)

		_, err := engine.CashOut(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid schedule", func(t *testing.T) {
		state := newMemState()
		seedMover(state, "mover-1")
		engine := newTestEngine(state)

		raw := []byte(`{"monday":[{"start":"09:00","end":"17:00"}]}`)
		require.NoError(t, engine.SetAvailability(ctx, "mover-1", raw))
		assert.Equal(t, raw, state.movers["mover-1"].Availability)
	})

	t.Run("rejects malformed windows", func(t *testing.T) {
		state := newMemState()
		seedMover(state, "mover-1")
		engine := newTestEngine(state)

		err := engine.SetAvailability(ctx, "mover-1", []byte(`{"monday":[{"start":"17:00","end":"09:00"}]}`))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown mover", func(t *testing.T) {
		state := newMemState()
		engine := newTestEngine(state)

		err := engine.SetAvailability(ctx, "missing", []byte(`{}`))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListStudentOrders(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	seedJob(state, storageJob("job-1", "order-1", "student-1"))
	seedJob(state, storageJob("job-2", "order-2", "student-2"))
	engine := newTestEngine(state)

	orders, err := engine.ListStudentOrders(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].ID)

	_, err = engine.ListStudentOrders(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJobHistory(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	seedJob(state, storageJob("job-1", "order-1", "student-1"))
	engine := newTestEngine(state)

	_, err := engine.AcceptJob(ctx, "job-1", "mover-1")
	require.NoError(t, err)

	entries, err := engine.JobHistory(ctx, "job-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, repository.JobStatusAccepted, entries[0].Status)

	_, err = engine.JobHistory(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
