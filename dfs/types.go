package dfs

import "errors"

// Sentinel errors for dfs construction and search.
var (
	// ErrStorageNil is returned when a nil *graph.Storage is passed to
	// NewArrayGraph.
	ErrStorageNil = errors.New("dfs: storage is nil")

	// ErrDestinationNotFound indicates the destination node passed to
	// NewArrayGraph does not belong to the storage.
	ErrDestinationNotFound = errors.New("dfs: destination not found")

	// ErrSourceNotFound indicates the source node passed to Search does not
	// belong to the ArrayGraph.
	ErrSourceNotFound = errors.New("dfs: source not found")

	// ErrMalformedConstraint indicates CompileConstraint was given a
	// ConstraintDescription it could not build, e.g. a binary operator with
	// the wrong number of operands.
	ErrMalformedConstraint = errors.New("dfs: malformed constraint description")
)
