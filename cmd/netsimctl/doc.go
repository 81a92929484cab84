// Command netsimctl is a thin CLI over the netsim packages: it loads a
// graph (and, for flow queries, a commodity matrix) from a YAML or JSON
// config file, then runs one of a handful of read-only queries against it —
// path enumeration, multi-commodity flow feasibility, or a packet-capture
// replay through a simulated queue.
package main
