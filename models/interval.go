package models

import "time"

// IntervalsOverlap applies the half-open overlap test to two date
// ranges: [aStart, aEnd) and [bStart, bEnd) collide iff
// aStart < bEnd && aEnd > bStart. Touching endpoints (one stay's
// check-out equal to the next check-in) never overlap, which is what
// allows same-day turnover.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
