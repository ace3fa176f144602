package lifecycle

import (
	"github.com/haulaway/haulaway/internal/repository"
)

type Verb string

const (
	VerbAccept          Verb = "accept"
	VerbSetStatus       Verb = "set_status"
	VerbRequestPickup   Verb = "request_pickup_confirmation"
	VerbConfirmPickup   Verb = "confirm_pickup"
	VerbRequestDelivery Verb = "request_delivery_confirmation"
	VerbConfirmDelivery Verb = "confirm_delivery"
)

type Role string

const (
	RoleMover   Role = "mover"
	RoleStudent Role = "student"
)

// Transition is one directed edge of the job state machine. The table below
// is the single authority for every status change: both the specialized
// confirmation endpoints and the generic set-status endpoint resolve against
// it, so preconditions cannot diverge between code paths.
type Transition struct {
	Verb    Verb
	JobType repository.JobType
	From    repository.JobStatus
	To      repository.JobStatus
	Actor   Role

	// Cascade, when set, is the order status implied by this job transition.
	Cascade repository.OrderStatus

	// Credit transfers the job price to the assigned mover, atomically with
	// the status change.
	Credit bool

	SetVerification   bool
	ClearVerification bool
}

var transitionTable = []Transition{
	{Verb: VerbAccept, JobType: repository.JobTypeStorage, From: repository.JobStatusAvailable, To: repository.JobStatusAccepted, Actor: RoleMover, Cascade: repository.OrderStatusAccepted},
	{Verb: VerbAccept, JobType: repository.JobTypeReturn, From: repository.JobStatusAvailable, To: repository.JobStatusAccepted, Actor: RoleMover, Cascade: repository.OrderStatusAccepted},

	{Verb: VerbRequestPickup, JobType: repository.JobTypeStorage, From: repository.JobStatusAccepted, To: repository.JobStatusAwaitingStudentConf, Actor: RoleMover, SetVerification: true},
	{Verb: VerbConfirmPickup, JobType: repository.JobTypeStorage, From: repository.JobStatusAwaitingStudentConf, To: repository.JobStatusPickedUp, Actor: RoleStudent, Cascade: repository.OrderStatusPickedUp, ClearVerification: true},
	{Verb: VerbSetStatus, JobType: repository.JobTypeStorage, From: repository.JobStatusPickedUp, To: repository.JobStatusCompleted, Actor: RoleMover, Cascade: repository.OrderStatusInStorage, Credit: true},

	{Verb: VerbSetStatus, JobType: repository.JobTypeReturn, From: repository.JobStatusAccepted, To: repository.JobStatusPickedUp, Actor: RoleMover},
	{Verb: VerbRequestDelivery, JobType: repository.JobTypeReturn, From: repository.JobStatusPickedUp, To: repository.JobStatusAwaitingStudentConf, Actor: RoleMover, SetVerification: true},
	{Verb: VerbConfirmDelivery, JobType: repository.JobTypeReturn, From: repository.JobStatusAwaitingStudentConf, To: repository.JobStatusCompleted, Actor: RoleStudent, Cascade: repository.OrderStatusCompleted, Credit: true, ClearVerification: true},
}

// Transitions returns a copy of the full table, for inspection and tests.
func Transitions() []Transition {
	out := make([]Transition, len(transitionTable))
	copy(out, transitionTable)
	return out
}

// lookupVerb finds the table row for a specialized verb and job type.
func lookupVerb(verb Verb, jobType repository.JobType) (Transition, bool) {
	for _, tr := range transitionTable {
		if tr.Verb == verb && tr.JobType == jobType {
			return tr, true
		}
	}
	return Transition{}, false
}

// lookupEdge finds the generic set-status row for a (jobType, from, to) edge.
// Only edges the table marks VerbSetStatus are reachable this way; the
// confirmation edges require their dedicated endpoints.
func lookupEdge(jobType repository.JobType, from, to repository.JobStatus) (Transition, bool) {
	for _, tr := range transitionTable {
		if tr.Verb == VerbSetStatus && tr.JobType == jobType && tr.From == from && tr.To == to {
			return tr, true
		}
	}
	return Transition{}, false
}
