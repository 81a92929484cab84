// Package mcflow solves multi-commodity flow problems over a graph.Storage
// by building a linear program and handing it to gonum's simplex solver.
//
// A Problem holds one LP row per link capacity constraint and one row per
// (commodity, node) flow-conservation constraint, with a commodity's own
// source and sink rows special-cased to enforce "at least Demand leaves the
// source" and "nothing leaves the sink" respectively. IsFeasible, MaxFlow,
// MaxScaleFactor, and MaxIncrement are all thin queries over that same LP;
// RecoverPaths turns a solved flow assignment back into concrete paths by
// iteratively peeling off source-to-sink routes with positive residual
// flow.
package mcflow
