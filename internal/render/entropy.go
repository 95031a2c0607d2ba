package render

import (
	"math"
	"time"
)

const (
	freshDays   = 14.0
	decayDays   = 60.0
	entropyMin  = 0.3
	hoursPerDay = 24.0
)

// Entropy is the staleness multiplier for a node's opacity: 1 for the
// first two weeks, then a linear fade to 0.3 over the following 60 days.
// Missing or future timestamps count as fresh.
func Entropy(lastUpdated, now time.Time) float64 {
	if lastUpdated.IsZero() || now.IsZero() {
		return 1
	}
	days := now.Sub(lastUpdated).Hours() / hoursPerDay
	if math.IsNaN(days) || days <= freshDays {
		return 1
	}
	return math.Max(entropyMin, 1-(days-freshDays)/decayDays)
}
