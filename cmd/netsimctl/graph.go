package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Inspect the graph loaded from --config",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := loadGraph(v)
			if err != nil {
				return err
			}

			nodes := storage.AllNodes()
			links := storage.AllLinks()
			logger.Info("loaded graph", "nodes", len(nodes), "links", len(links))

			for _, n := range nodes {
				fmt.Fprintf(cmd.OutOrStdout(), "node %s (cluster %q)\n", n.ID(), storage.ClusterOf(n))
			}
			for _, l := range links {
				fmt.Fprintf(cmd.OutOrStdout(), "link %s delay=%s bw=%dbps\n", l, l.Delay(), l.BandwidthBps())
			}
			return nil
		},
	}
	return cmd
}
