// Package event provides a virtual-time priority queue that schedules
// Consumer callbacks in strict time order, breaking ties by insertion
// order.
//
// Queue is implemented by SimQueue, which advances its clock directly from
// event to event (no wall-clock delay — suitable for batch simulation), and
// RealQueue, which sleeps between events so that virtual time tracks actual
// elapsed time (suitable for interactive or replay use). Every Consumer
// tracks how many events are still outstanding for it; Close refuses to
// tear one down while any remain scheduled, so a caller cannot silently
// leak a callback onto a discarded handler.
package event
