package event

import (
	"log/slog"
	"time"
)

// Time is a point in a queue's virtual timeline, measured in nanoseconds
// from that queue's epoch. It is distinct from time.Time so that SimQueue
// can advance it arbitrarily fast without touching the wall clock.
type Time time.Duration

// Zero is the epoch every Queue starts at.
const Zero Time = 0

// Add returns t advanced by d. d may be negative; callers that need a delay
// relative to "now" should use EnqueueIn instead of computing this
// themselves.
func (t Time) Add(d time.Duration) Time {
	return t + Time(d)
}

// Sub returns the duration separating t from u (t - u). It panics if u is
// later than t: virtual time never runs backwards, so a negative result
// means the caller subtracted the operands in the wrong order.
func (t Time) Sub(u Time) time.Duration {
	if t < u {
		panic("event: negative time subtraction")
	}
	return time.Duration(t - u)
}

// Mul returns t scaled by the integer factor n.
func (t Time) Mul(n int64) Time {
	return Time(int64(t) * n)
}

// Div returns t scaled by 1/divisor.
func (t Time) Div(divisor float64) Time {
	return Time(float64(t) / divisor)
}

// Ratio returns t/u as a float64, e.g. for reporting how far through an
// interval t falls relative to u.
func (t Time) Ratio(u Time) float64 {
	return float64(t) / float64(u)
}

// Before reports whether t is strictly earlier than u.
func (t Time) Before(u Time) bool { return t < u }

// After reports whether t is strictly later than u.
func (t Time) After(u Time) bool { return t > u }

// Duration returns t as a time.Duration offset from the epoch.
func (t Time) Duration() time.Duration { return time.Duration(t) }

// String renders t as its underlying duration, e.g. "1.5s".
func (t Time) String() string { return time.Duration(t).String() }

// LogValue lets a Time be passed directly to a slog.Logger call, so log
// lines can carry simulation time the way the queue's own clock sees it
// rather than the wall clock the logger would otherwise stamp.
func (t Time) LogValue() slog.Value { return slog.StringValue(t.String()) }
