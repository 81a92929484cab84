// Package pcapingest reads TCP/UDP packets out of an offline packet
// capture and replays them into the simulator's virtual time: the first
// packet's capture timestamp becomes time zero, large gaps between
// consecutive packets are collapsed out of the replay, and an optional
// hash-based downscale rule can restrict replay to one of N traffic
// shards.
package pcapingest
