package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/ngvozdiev/netsim/graph"
	"github.com/ngvozdiev/netsim/mcflow"
)

// runConfig holds the settings every subcommand resolves from flags, a
// config file, and environment variables; a non-empty log level from the
// config file or environment overrides the --log-level flag.
// RunOption mutates a runConfig the same way a functional option mutates
// any other configuration struct in this codebase.
type runConfig struct {
	logLevel string
}

// RunOption customizes a runConfig before a subcommand executes.
type RunOption func(*runConfig)

// WithLogLevel overrides the log level resolved from flags/config/env. An
// empty level is a no-op, so zero-value RunOption application never
// silences logging unexpectedly.
func WithLogLevel(level string) RunOption {
	return func(rc *runConfig) {
		if level != "" {
			rc.logLevel = level
		}
	}
}

func newRunConfig(opts ...RunOption) *runConfig {
	rc := &runConfig{logLevel: "info"}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// wireLink is the YAML/JSON form of one graph.LinkDescription.
type wireLink struct {
	Src, Dst         string
	SrcPort          uint32 `mapstructure:"src_port"`
	DstPort          uint32 `mapstructure:"dst_port"`
	DelayMicros      int64  `mapstructure:"delay_micros"`
	BandwidthBps     uint64 `mapstructure:"bandwidth_bps"`
}

// wireCluster is the YAML/JSON form of one graph.ClusterDescription.
type wireCluster struct {
	ID    string
	Nodes []string
}

// wireGraph is the top-level shape a --config file's "graph" key unmarshals
// into, mirroring graph.GraphDescription with CLI-friendly field names
// (delay as an integer microsecond count rather than a time.Duration, which
// viper's YAML/JSON decoders cannot unmarshal directly).
type wireGraph struct {
	Links    []wireLink
	Clusters []wireCluster
}

// toGraphDescription converts the wire form into the graph package's own
// description type.
func (g *wireGraph) toGraphDescription() *graph.GraphDescription {
	desc := &graph.GraphDescription{
		Links:    make([]graph.LinkDescription, len(g.Links)),
		Clusters: make([]graph.ClusterDescription, len(g.Clusters)),
	}
	for i, l := range g.Links {
		desc.Links[i] = graph.LinkDescription{
			Src:          l.Src,
			Dst:          l.Dst,
			SrcPort:      l.SrcPort,
			DstPort:      l.DstPort,
			Delay:        time.Duration(l.DelayMicros) * time.Microsecond,
			BandwidthBps: l.BandwidthBps,
		}
	}
	for i, c := range g.Clusters {
		desc.Clusters[i] = graph.ClusterDescription{ID: c.ID, Nodes: append([]string(nil), c.Nodes...)}
	}
	return desc
}

// loadGraph reads the "graph" key out of v and interns it into a fresh
// graph.Storage.
func loadGraph(v *viper.Viper) (*graph.Storage, error) {
	if !v.IsSet("graph") {
		return nil, ErrNoConfigFile
	}

	var wg wireGraph
	if err := v.UnmarshalKey("graph", &wg); err != nil {
		return nil, fmt.Errorf("netsimctl: decoding graph config: %w", err)
	}
	return graph.LoadGraph(wg.toGraphDescription())
}

// findNode resolves id in storage, wrapping the zero value graph.FindNode
// returns for a miss into an error subcommands can propagate directly.
func findNode(storage *graph.Storage, id string) (*graph.Node, error) {
	n := storage.FindNode(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return n, nil
}

// wireCommodity is the YAML/JSON form of one mcflow.Commodity.
type wireCommodity struct {
	Source, Sink string
	Demand       float64
}

// loadCommodities reads the "commodities" key out of v and resolves each
// entry's node ids against storage.
func loadCommodities(v *viper.Viper, storage *graph.Storage) ([]mcflow.Commodity, error) {
	var wcs []wireCommodity
	if err := v.UnmarshalKey("commodities", &wcs); err != nil {
		return nil, fmt.Errorf("netsimctl: decoding commodities config: %w", err)
	}

	out := make([]mcflow.Commodity, len(wcs))
	for i, wc := range wcs {
		src, err := findNode(storage, wc.Source)
		if err != nil {
			return nil, err
		}
		dst, err := findNode(storage, wc.Sink)
		if err != nil {
			return nil, err
		}
		out[i] = mcflow.Commodity{Source: src, Sink: dst, Demand: wc.Demand}
	}
	return out, nil
}
