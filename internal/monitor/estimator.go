package monitor

import (
	"math"
	"time"
)

// Estimate returns the speed implied by covering a fixed distance between
// two timestamps, converted with factor and rounded to one decimal place.
// A non-positive elapsed time clamps to 0 so clock skew or out-of-order
// stamps can never produce a negative or infinite speed.
func Estimate(start, end time.Time, distance, factor float64) float64 {
	elapsed := end.Sub(start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return math.Round(distance/elapsed*factor*10) / 10
}
