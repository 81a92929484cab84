package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngvozdiev/netsim/event"
)

func TestTime_AddAndSub(t *testing.T) {
	start := event.Zero.Add(5 * time.Second)
	end := start.Add(2 * time.Second)

	assert.Equal(t, 2*time.Second, end.Sub(start))
	assert.True(t, start.Before(end))
	assert.True(t, end.After(start))
}

func TestTime_String(t *testing.T) {
	tm := event.Zero.Add(1500 * time.Millisecond)
	assert.Equal(t, "1.5s", tm.String())
}

func TestTime_SubPanicsOnNegativeResult(t *testing.T) {
	early := event.Zero
	late := event.Zero.Add(time.Second)

	assert.Panics(t, func() { early.Sub(late) })
}

func TestTime_Mul(t *testing.T) {
	tm := event.Zero.Add(3 * time.Second)
	assert.Equal(t, 9*time.Second, tm.Mul(3).Duration())
}

func TestTime_Div(t *testing.T) {
	tm := event.Zero.Add(9 * time.Second)
	assert.Equal(t, 3*time.Second, tm.Div(3).Duration())
}

func TestTime_Ratio(t *testing.T) {
	a := event.Zero.Add(3 * time.Second)
	b := event.Zero.Add(9 * time.Second)
	assert.InDelta(t, 1.0/3.0, a.Ratio(b), 1e-9)
}
