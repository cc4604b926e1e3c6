package utils

import "math"

// ProgressPercent computes a completion percentage rounded to two decimal
// places. Rounding is half away from zero (math.Round), so 1 of 3 lessons
// yields 33.33 and 2 of 3 yields 66.67. A course with no lessons reports 0
// rather than dividing by zero.
func ProgressPercent(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}
