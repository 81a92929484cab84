// Package htsim implements the packet-level simulation primitives that sit
// on top of package event: Packet, the fixed-delay Pipe, the FIFO and
// random-early-drop Queue implementations, and the keyframe-based Animator
// used to vary a queue's drain rate over virtual time.
package htsim
