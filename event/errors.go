package event

import "fmt"

var (
	// ErrNegativeDelay is returned by Consumer.EnqueueIn when asked to
	// schedule an event at a zero or negative offset from the current time.
	ErrNegativeDelay = fmt.Errorf("event: %w", errNegativeDelay)
	// ErrPastDeadline is returned when an event is scheduled at or before a
	// queue's current time.
	ErrPastDeadline = fmt.Errorf("event: %w", errPastDeadline)
)

var (
	errNegativeDelay = fmt.Errorf("negative delay")
	errPastDeadline  = fmt.Errorf("event scheduled at or before current time")
)
