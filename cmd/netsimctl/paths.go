package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngvozdiev/netsim/dfs"
	"github.com/ngvozdiev/netsim/graph"
)

func newPathsCmd() *cobra.Command {
	var (
		src, dst     string
		mode         string
		k            int
		maxHops      int
		maxDelay     time.Duration
		delayLimit   time.Duration
		nodeDisjoint bool
		cookie       uint64
	)

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Enumerate paths between two nodes using the path cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := loadGraph(v)
			if err != nil {
				return err
			}
			srcNode, err := findNode(storage, src)
			if err != nil {
				return err
			}
			dstNode, err := findNode(storage, dst)
			if err != nil {
				return err
			}

			var opts []dfs.PathCacheOption
			if maxHops > 0 {
				opts = append(opts, dfs.WithCacheMaxHops(maxHops))
			}
			if maxDelay > 0 {
				opts = append(opts, dfs.WithCacheMaxDelay(maxDelay))
			}
			if nodeDisjoint {
				opts = append(opts, dfs.WithCacheNodeDisjoint())
			}
			cache := dfs.NewPathCache(storage, opts...)

			ctx := context.Background()
			var results []*graph.Path
			switch mode {
			case "lowest":
				path, err := cache.LowestDelay(ctx, srcNode, dstNode, nil, delayLimit, cookie)
				if err != nil {
					return err
				}
				results = []*graph.Path{path}
			case "klowest":
				results, err = cache.KLowest(ctx, srcNode, dstNode, k, nil, delayLimit, cookie)
			case "khops":
				results, err = cache.KHopsFromLowest(ctx, srcNode, dstNode, k, nil, delayLimit, cookie)
			case "kdiverse":
				results, err = cache.KDiverse(ctx, srcNode, dstNode, k, nil, delayLimit, cookie)
			default:
				return fmt.Errorf("netsimctl: unknown paths mode %q", mode)
			}
			if err != nil {
				return err
			}

			logger.Info("computed paths", "mode", mode, "count", len(results))
			for i, path := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "path %d: %s (delay=%s, hops=%d)\n",
					i, path, path.Delay(), path.Size())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "source node id")
	cmd.Flags().StringVar(&dst, "dst", "", "destination node id")
	cmd.Flags().StringVar(&mode, "mode", "lowest", "lowest, klowest, khops, or kdiverse")
	cmd.Flags().IntVar(&k, "k", 1, "number of paths for klowest/khops/kdiverse")
	cmd.Flags().IntVar(&maxHops, "max-hops", 0, "cap the cached paths' hop count (0 = the graph's node count)")
	cmd.Flags().DurationVar(&maxDelay, "max-delay", 0, "cap the cached paths' delay (0 = unbounded)")
	cmd.Flags().DurationVar(&delayLimit, "delay-limit", 0, "reject cached paths over this delay at query time (0 = unbounded)")
	cmd.Flags().BoolVar(&nodeDisjoint, "node-disjoint", false, "enumerate node-disjoint rather than edge-disjoint paths")
	cmd.Flags().Uint64Var(&cookie, "cookie", 0, "cookie under which returned paths are interned")
	cmd.MarkFlagRequired("src")
	cmd.MarkFlagRequired("dst")
	return cmd
}
