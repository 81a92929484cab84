package mcflow

import "fmt"

// ErrBadMultiplier is returned when NewProblem is given a non-positive
// capacity multiplier.
var ErrBadMultiplier = fmt.Errorf("mcflow: %w", errBadMultiplier)
var errBadMultiplier = fmt.Errorf("capacity multiplier must be positive")

// ErrUnknownNode is returned when a commodity or link references a node
// absent from the Problem's graph.Storage.
var ErrUnknownNode = fmt.Errorf("mcflow: %w", errUnknownNode)
var errUnknownNode = fmt.Errorf("node not found")

// ErrInfeasible is returned by queries that require a feasible base problem
// (e.g. MaxFlow) when the underlying LP has no feasible solution.
var ErrInfeasible = fmt.Errorf("mcflow: %w", errInfeasible)
var errInfeasible = fmt.Errorf("problem is infeasible")
