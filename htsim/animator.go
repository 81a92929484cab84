package htsim

import (
	"fmt"
	"sort"
	"time"

	"github.com/ngvozdiev/netsim/event"
)

// AnimationTarget receives the interpolated value an Animator produces.
// FIFOQueue (via ApplyValue, changing its drain rate) is the typical
// implementation.
type AnimationTarget interface {
	ApplyValue(value float64)
}

// Keyframe pairs a virtual time with the value an Animator should hold at
// that time.
type Keyframe struct {
	At    event.Time
	Value float64
}

// Animator drives a value over virtual time by linearly interpolating
// between a sorted set of Keyframes, delivering the result to a target on
// demand.
type Animator struct {
	keyframes   []Keyframe
	target      AnimationTarget
	startAtZero bool
}

// NewAnimator returns an Animator over keyframes (not required to be
// pre-sorted; NewAnimator sorts a copy) delivering to target. If
// startAtZero is true, evaluating before the first keyframe interpolates
// from (time zero, value zero) rather than holding the first keyframe's
// value flat. At least one keyframe is required, and no two may share a
// time.
func NewAnimator(target AnimationTarget, startAtZero bool, keyframes ...Keyframe) (*Animator, error) {
	if len(keyframes) == 0 {
		return nil, ErrNoKeyframes
	}

	sorted := append([]Keyframe(nil), keyframes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].At == sorted[i-1].At {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKeyframe, sorted[i].At)
		}
	}

	return &Animator{keyframes: sorted, target: target, startAtZero: startAtZero}, nil
}

// ValueAt evaluates the animator at virtual time t.
func (a *Animator) ValueAt(t event.Time) float64 {
	first := a.keyframes[0]
	if !t.After(first.At) {
		if a.startAtZero {
			return lerp(event.Zero, 0, first.At, first.Value, t)
		}
		return first.Value
	}

	last := a.keyframes[len(a.keyframes)-1]
	if !t.Before(last.At) {
		return last.Value
	}

	idx := sort.Search(len(a.keyframes), func(i int) bool { return a.keyframes[i].At.After(t) })
	before, after := a.keyframes[idx-1], a.keyframes[idx]
	return lerp(before.At, before.Value, after.At, after.Value, t)
}

// Apply evaluates the animator at t and delivers the result to its target.
func (a *Animator) Apply(t event.Time) {
	a.target.ApplyValue(a.ValueAt(t))
}

func lerp(t0 event.Time, v0 float64, t1 event.Time, v1 float64, t event.Time) float64 {
	span := t1.Sub(t0)
	if span <= 0 {
		return v1
	}
	frac := float64(t.Sub(t0)) / float64(span)
	return v0 + frac*(v1-v0)
}

// AnimationContainer periodically re-evaluates a set of Animators and
// delivers their values, acting as a single event.Consumer that
// reschedules itself every timestep.
type AnimationContainer struct {
	evQueue   event.Queue
	consumer  *event.Consumer
	timestep  time.Duration
	animators []*Animator
}

// NewAnimationContainer returns a container that ticks every timestep on
// evQueue, applying every animator in animators on each tick. Call Start to
// begin ticking.
func NewAnimationContainer(name string, evQueue event.Queue, timestep time.Duration, animators ...*Animator) *AnimationContainer {
	c := &AnimationContainer{evQueue: evQueue, timestep: timestep, animators: animators}
	c.consumer = event.NewConsumer(evQueue, c, name)
	return c
}

// Start schedules the container's first tick, timestep from now.
func (c *AnimationContainer) Start() error {
	return c.consumer.EnqueueIn(c.timestep)
}

// HandleEvent applies every animator at the current time and reschedules
// the next tick.
func (c *AnimationContainer) HandleEvent() {
	now := c.evQueue.CurrentTime()
	for _, a := range c.animators {
		a.Apply(now)
	}
	_ = c.consumer.EnqueueIn(c.timestep)
}
