package utils

import "math"

// AggregateProgress turns lesson counts into a rounded completion percentage.
// A course with no lessons is 0% complete, never a division by zero. The
// inputs are plain counts, so the result is independent of lesson ordering.
func AggregateProgress(totalLessons, completedLessons int) int {
	if totalLessons <= 0 {
		return 0
	}
	return int(math.Round(float64(completedLessons) / float64(totalLessons) * 100))
}
