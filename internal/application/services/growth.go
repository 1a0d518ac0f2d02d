package services

import "math"

// Growth describes a period-over-period change. Percentage is a
// direction-less magnitude; Direction carries the sign.
type Growth struct {
	Percentage float64 `json:"percentage"`
	Direction  string  `json:"direction"`
	Absolute   int     `json:"absolute"`
}

// CalculateGrowth compares two adjacent period counts. A zero previous
// period yields a stable zero-percent result rather than infinite growth.
func CalculateGrowth(current, previous int) Growth {
	if previous == 0 {
		return Growth{Percentage: 0, Direction: "stable", Absolute: current}
	}

	percentage := round1(math.Abs(float64(current-previous)) / float64(previous) * 100)

	direction := "stable"
	if current > previous {
		direction = "up"
	} else if current < previous {
		direction = "down"
	}

	return Growth{
		Percentage: percentage,
		Direction:  direction,
		Absolute:   current - previous,
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// roundInt rounds to the nearest integer.
func roundInt(v float64) int {
	return int(math.Round(v))
}
