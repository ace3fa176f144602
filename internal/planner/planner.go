// Package planner builds a mover's route over currently available jobs using
// a greedy earnings-per-minute heuristic.
//
// The algorithm maximizes immediate earnings density at each step. It does
// not attempt global route optimization (e.g., VRP solvers). The design
// prioritizes determinism and simplicity over optimality.
//
// The planner is pure: it reads a snapshot of candidates and never reserves
// or locks anything. A planned job can be accepted by another mover before
// this mover acts on the plan; acceptance re-validates status atomically.
package planner

import (
	"time"

	"github.com/haulaway/haulaway/internal/availability"
	"github.com/haulaway/haulaway/internal/geo"
	"github.com/haulaway/haulaway/internal/repository"
)

type Input struct {
	MoverID            string
	Origin             geo.Point
	Now                time.Time
	Schedule           availability.Schedule
	Candidates         []*repository.Job
	MaxDurationMinutes *float64
}

type Stop struct {
	Job                       *repository.Job `json:"job"`
	DistanceFromPreviousKm    float64         `json:"distance_from_previous_km"`
	TravelMinutesFromPrevious float64         `json:"travel_minutes_from_previous"`
	EstimatedStartTime        time.Time       `json:"estimated_start_time"`
	EstimatedDurationMinutes  float64         `json:"estimated_duration_minutes"`
}

type Metrics struct {
	TotalEarnings        float64 `json:"total_earnings"`
	TotalJobs            int     `json:"total_jobs"`
	TotalDistanceKm      float64 `json:"total_distance_km"`
	TotalDurationMinutes float64 `json:"total_duration_minutes"`
	EarningsPerHour      float64 `json:"earnings_per_hour"`
}

type Plan struct {
	MoverID         string    `json:"mover_id"`
	StartLocation   geo.Point `json:"start_location"`
	Route           []Stop    `json:"route"`
	Metrics         Metrics   `json:"metrics"`
	NoJobsAvailable bool      `json:"no_jobs_available"`
}

// Build selects and orders a subset of the candidate jobs.
//
// Jobs whose scheduled time falls outside the mover's availability windows
// are excluded entirely. At each step the remaining candidate with the best
// price per minute of (travel + service) is committed, provided the
// cumulative duration stays inside the budget; candidates that would exceed
// the budget are skipped and the next best is tried. Ties break by soonest
// scheduled time, then job ID, so plans are deterministic.
func Build(in Input) *Plan {
	plan := &Plan{
		MoverID:       in.MoverID,
		StartLocation: in.Origin,
		Route:         []Stop{},
	}

	remaining := make(map[string]*repository.Job)
	for _, job := range in.Candidates {
		if job.Status != repository.JobStatusAvailable {
			continue
		}
		if !in.Schedule.Covers(job.ScheduledTime) {
			continue
		}
		remaining[job.ID] = job
	}

	if len(remaining) == 0 {
		plan.NoJobsAvailable = true
		return plan
	}

	current := in.Origin
	currentTime := in.Now
	var totalEarnings, totalDistance, totalDuration float64

	for len(remaining) > 0 {
		best := selectBest(remaining, current, totalDuration, in.MaxDurationMinutes)
		if best == nil {
			break
		}

		job := best.job
		serviceMinutes := geo.JobMinutes(job.JobType)
		startTime := currentTime.Add(minutes(best.travelMinutes))

		plan.Route = append(plan.Route, Stop{
			Job:                       job,
			DistanceFromPreviousKm:    best.distanceKm,
			TravelMinutesFromPrevious: best.travelMinutes,
			EstimatedStartTime:        startTime,
			EstimatedDurationMinutes:  serviceMinutes,
		})

		totalEarnings += job.Price
		totalDistance += best.distanceKm
		totalDuration += best.travelMinutes + serviceMinutes
		currentTime = startTime.Add(minutes(serviceMinutes))
		current = geo.Point{Lat: job.DropoffLat, Lon: job.DropoffLon}

		delete(remaining, job.ID)
	}

	if len(plan.Route) == 0 {
		plan.NoJobsAvailable = true
	}

	plan.Metrics = Metrics{
		TotalEarnings:        totalEarnings,
		TotalJobs:            len(plan.Route),
		TotalDistanceKm:      totalDistance,
		TotalDurationMinutes: totalDuration,
	}
	if totalDuration > 0 {
		plan.Metrics.EarningsPerHour = totalEarnings / (totalDuration / 60)
	}
	return plan
}

type candidate struct {
	job           *repository.Job
	distanceKm    float64
	travelMinutes float64
	score         float64
}

// selectBest returns the highest-scoring candidate that fits the remaining
// duration budget, or nil when none fits.
func selectBest(remaining map[string]*repository.Job, from geo.Point, usedMinutes float64, budget *float64) *candidate {
	var best *candidate

	for _, job := range remaining {
		distance := geo.Haversine(from, geo.Point{Lat: job.PickupLat, Lon: job.PickupLon})
		travel := geo.TravelMinutes(distance)
		service := geo.JobMinutes(job.JobType)

		if budget != nil && usedMinutes+travel+service > *budget {
			continue
		}

		c := &candidate{
			job:           job,
			distanceKm:    distance,
			travelMinutes: travel,
			score:         job.Price / (travel + service),
		}

		if best == nil || better(c, best) {
			best = c
		}
	}
	return best
}

func better(a, b *candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if !a.job.ScheduledTime.Equal(b.job.ScheduledTime) {
		return a.job.ScheduledTime.Before(b.job.ScheduledTime)
	}
	// Tie-breaker ensures deterministic ordering when scores are equal.
	return a.job.ID < b.job.ID
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
