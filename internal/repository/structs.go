package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type JobType string

const (
	JobTypeStorage JobType = "STORAGE"
	JobTypeReturn  JobType = "RETURN"
)

func (t JobType) Valid() bool {
	return t == JobTypeStorage || t == JobTypeReturn
}

type JobStatus string

const (
	JobStatusAvailable           JobStatus = "AVAILABLE"
	JobStatusAccepted            JobStatus = "ACCEPTED"
	JobStatusPickedUp            JobStatus = "PICKED_UP"
	JobStatusAwaitingStudentConf JobStatus = "AWAITING_STUDENT_CONFIRMATION"
	JobStatusCompleted           JobStatus = "COMPLETED"
	JobStatusCancelled           JobStatus = "CANCELLED"
)

func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusPickedUp  OrderStatus = "PICKED_UP"
	OrderStatusInStorage OrderStatus = "IN_STORAGE"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type Job struct {
	ID                      string     `db:"id" json:"id"`
	OrderID                 string     `db:"order_id" json:"order_id"`
	StudentID               string     `db:"student_id" json:"student_id"`
	MoverID                 *string    `db:"mover_id" json:"mover_id,omitempty"`
	JobType                 JobType    `db:"job_type" json:"job_type"`
	Status                  JobStatus  `db:"status" json:"status"`
	Volume                  float64    `db:"volume" json:"volume"`
	Price                   float64    `db:"price" json:"price"`
	PickupAddress           string     `db:"pickup_address" json:"pickup_address"`
	PickupLat               float64    `db:"pickup_lat" json:"pickup_lat"`
	PickupLon               float64    `db:"pickup_lon" json:"pickup_lon"`
	DropoffAddress          string     `db:"dropoff_address" json:"dropoff_address"`
	DropoffLat              float64    `db:"dropoff_lat" json:"dropoff_lat"`
	DropoffLon              float64    `db:"dropoff_lon" json:"dropoff_lon"`
	ScheduledTime           time.Time  `db:"scheduled_time" json:"scheduled_time"`
	VerificationRequestedAt *time.Time `db:"verification_requested_at" json:"verification_requested_at,omitempty"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}

type Order struct {
	ID               string      `db:"id" json:"id"`
	StudentID        string      `db:"student_id" json:"student_id"`
	Status           OrderStatus `db:"status" json:"status"`
	Volume           float64     `db:"volume" json:"volume"`
	Price            float64     `db:"price" json:"price"`
	StudentAddress   string      `db:"student_address" json:"student_address"`
	WarehouseAddress string      `db:"warehouse_address" json:"warehouse_address"`
	PickupTime       time.Time   `db:"pickup_time" json:"pickup_time"`
	ReturnTime       *time.Time  `db:"return_time" json:"return_time,omitempty"`
	ReturnAddress    *string     `db:"return_address" json:"return_address,omitempty"`
	PaymentIntentID  *string     `db:"payment_intent_id" json:"payment_intent_id,omitempty"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}

// Mover is the subset of a user account the core works with. Availability
// holds the raw weekly schedule JSON as stored in the movers table.
type Mover struct {
	ID           string   `db:"id" json:"id"`
	Name         string   `db:"name" json:"name"`
	Credits      float64  `db:"credits" json:"credits"`
	Availability []byte   `db:"availability" json:"-"`
	Capacity     *float64 `db:"capacity" json:"capacity,omitempty"`
}

// StatusSet carries the optional column writes applied together with a
// conditional status transition.
type StatusSet struct {
	MoverID                 *string
	VerificationRequestedAt *time.Time
	ClearVerification       bool
}

type JobHistoryEntry struct {
	ID        int64     `db:"id" json:"-"`
	JobID     string    `db:"job_id" json:"job_id"`
	Status    JobStatus `db:"status" json:"status"`
	ChangedAt time.Time `db:"changed_at" json:"changed_at"`
}
