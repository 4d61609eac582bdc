package model

import "time"

// TimeRange is a pure value type describing a half-open interval
// [Start, End).  It is derived from a booking's scheduled start and its
// service-kind duration and is never persisted on its own.  All
// instants are expected to be in UTC.
type TimeRange struct {
    Start time.Time // inclusive start instant
    End   time.Time // exclusive end instant
}

// NewTimeRange builds a range from a start instant and a duration in
// minutes.  Durations are always positive constants derived from the
// service kind, so the Start < End invariant holds for every range
// produced through this constructor.
func NewTimeRange(start time.Time, minutes int) TimeRange {
    return TimeRange{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
}

// Valid reports whether the range satisfies the Start < End invariant.
func (r TimeRange) Valid() bool {
    return r.Start.Before(r.End)
}

// Overlaps reports whether two ranges share at least one instant under
// half-open semantics: a booking ending exactly when another starts
// does not overlap.  Strict inequality on both ends encodes that rule.
func Overlaps(a, b TimeRange) bool {
    return a.Start.Before(b.End) && a.End.After(b.Start)
}

// DayBounds normalizes a calendar date to its inclusive day boundaries
// 00:00:00–23:59:59 in UTC.  Availability reads and the blocked-date
// check both interpret a caller-supplied date through these bounds.
func DayBounds(date time.Time) (time.Time, time.Time) {
    y, m, d := date.Date()
    start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
    end := time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
    return start, end
}
