package htsim

import "fmt"

var (
	// ErrNoKeyframes is returned by NewAnimator when given no keyframes.
	ErrNoKeyframes = fmt.Errorf("htsim: %w", errNoKeyframes)
	// ErrDuplicateKeyframe is returned by NewAnimator when two keyframes
	// share the same time.
	ErrDuplicateKeyframe = fmt.Errorf("htsim: %w", errDuplicateKeyframe)
)

var (
	errNoKeyframes       = fmt.Errorf("at least one keyframe is required")
	errDuplicateKeyframe = fmt.Errorf("duplicate keyframe time")
)
