// Package geo holds the pure distance and travel-time estimators used by the
// route planner. Distances are great-circle (haversine); travel time assumes
// a constant average speed. No road-network routing is attempted.
package geo

import (
	"math"
	"time"

	"github.com/haulaway/haulaway/internal/repository"
)

const (
	earthRadiusKm = 6371.0

	// AverageSpeedKmh converts straight-line distance into travel minutes.
	AverageSpeedKmh = 30.0
)

// Service-time constants per job type, in minutes.
const (
	storageJobMinutes = 45.0
	returnJobMinutes  = 45.0
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// TravelMinutes estimates travel time for a straight-line distance.
func TravelMinutes(distanceKm float64) float64 {
	return distanceKm / AverageSpeedKmh * 60
}

// JobMinutes is the fixed on-site service duration for a job type.
func JobMinutes(t repository.JobType) float64 {
	if t == repository.JobTypeReturn {
		return returnJobMinutes
	}
	return storageJobMinutes
}

// MinutesOfDay returns the minute offset of t within its day.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
