package main

import "fmt"

var (
	// ErrNoConfigFile is returned when a subcommand that needs a graph
	// description finds no "graph" key in its configuration, as happens
	// when it is invoked without --config.
	ErrNoConfigFile = fmt.Errorf("netsimctl: %w", errNoConfigFile)
	// ErrUnknownNode is returned when a --src/--dst flag names a node the
	// loaded graph has never interned.
	ErrUnknownNode = fmt.Errorf("netsimctl: %w", errUnknownNode)
)

var (
	errNoConfigFile = fmt.Errorf("no config file; pass --config")
	errUnknownNode  = fmt.Errorf("unknown node")
)
