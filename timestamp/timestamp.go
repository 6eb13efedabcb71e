// Package timestamp implements the simulator's virtual-time value type: an
// immutable (seconds, nanoseconds) pair with a total order and carry/borrow
// normalized arithmetic.
package timestamp

import "fmt"

const nanosPerSecond int64 = 1_000_000_000

// Timestamp is a virtual-time instant at nanosecond resolution. The zero
// value is time zero. Values are immutable: every operation returns a new
// Timestamp rather than mutating the receiver.
type Timestamp struct {
	Seconds     int64
	Nanoseconds int64
}

// New returns a Timestamp with its nanosecond field normalized into
// [0, 1e9), carrying any overflow/underflow into Seconds.
func New(seconds, nanoseconds int64) Timestamp {
	return normalize(seconds, nanoseconds)
}

// normalize folds nanoseconds outside [0, 1e9) into seconds, using floor
// division so the result is well-defined for negative inputs too.
func normalize(seconds, nanoseconds int64) Timestamp {
	carry := floorDiv(nanoseconds, nanosPerSecond)
	nanoseconds -= carry * nanosPerSecond
	return Timestamp{Seconds: seconds + carry, Nanoseconds: nanoseconds}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Add returns t + other, normalized.
func (t Timestamp) Add(other Timestamp) Timestamp {
	return normalize(t.Seconds+other.Seconds, t.Nanoseconds+other.Nanoseconds)
}

// Sub returns t - other, normalized. Subtracting a larger timestamp from a
// smaller one yields a negative Seconds field with Nanoseconds still in
// [0, 1e9) (borrow-and-normalize) rather than a negative duration in the
// ordinary sense — ordering is all the kernel ever needs from the result.
func (t Timestamp) Sub(other Timestamp) Timestamp {
	return normalize(t.Seconds-other.Seconds, t.Nanoseconds-other.Nanoseconds)
}

// Compare returns -1, 0, or 1 as t is less than, equal to, or greater than
// other, comparing lexicographically (seconds then nanoseconds).
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.Seconds < other.Seconds:
		return -1
	case t.Seconds > other.Seconds:
		return 1
	case t.Nanoseconds < other.Nanoseconds:
		return -1
	case t.Nanoseconds > other.Nanoseconds:
		return 1
	default:
		return 0
	}
}

// Equal reports whether t and other denote the same instant.
func (t Timestamp) Equal(other Timestamp) bool { return t.Compare(other) == 0 }

// Before reports whether t < other.
func (t Timestamp) Before(other Timestamp) bool { return t.Compare(other) < 0 }

// After reports whether t > other.
func (t Timestamp) After(other Timestamp) bool { return t.Compare(other) > 0 }

// BeforeOrEqual reports whether t <= other.
func (t Timestamp) BeforeOrEqual(other Timestamp) bool { return t.Compare(other) <= 0 }

// AfterOrEqual reports whether t >= other.
func (t Timestamp) AfterOrEqual(other Timestamp) bool { return t.Compare(other) >= 0 }

// String renders the timestamp as "<seconds>.<nanoseconds>s", zero-padded to
// nine fractional digits.
func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%09ds", t.Seconds, t.Nanoseconds)
}
