package pcapingest

import "fmt"

var (
	// ErrBadDownscaleIndex is returned when WithDownscaling is given an
	// index outside [0, n).
	ErrBadDownscaleIndex = fmt.Errorf("pcapingest: %w", errBadDownscaleIndex)
	// ErrBadDownscaleN is returned when WithDownscaling is given n <= 1.
	ErrBadDownscaleN = fmt.Errorf("pcapingest: %w", errBadDownscaleN)
	// ErrDownscalingAlreadyEnabled is returned when WithDownscaling is
	// passed more than once for the same Generator.
	ErrDownscalingAlreadyEnabled = fmt.Errorf("pcapingest: %w", errDownscalingAlreadyEnabled)
	// ErrTimeWentBackwards is returned when a capture's packets are not in
	// non-decreasing timestamp order.
	ErrTimeWentBackwards = fmt.Errorf("pcapingest: %w", errTimeWentBackwards)
)

var (
	errBadDownscaleIndex         = fmt.Errorf("downscale index out of range")
	errBadDownscaleN             = fmt.Errorf("downscale n must be greater than 1")
	errDownscalingAlreadyEnabled = fmt.Errorf("downscaling already enabled")
	errTimeWentBackwards         = fmt.Errorf("packet timestamp precedes the previous packet's")
)
