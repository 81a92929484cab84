package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngvozdiev/netsim/mcflow"
)

func newFlowCmd() *cobra.Command {
	var (
		mode       string
		multiplier float64
	)

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Run a multi-commodity flow query over the graph and commodities from --config",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := loadGraph(v)
			if err != nil {
				return err
			}
			commodities, err := loadCommodities(v, storage)
			if err != nil {
				return err
			}

			problem, err := mcflow.NewProblem(storage, commodities, multiplier)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch mode {
			case "feasible":
				ok, err := problem.IsFeasible()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "feasible: %t\n", ok)
			case "maxflow":
				z, err := problem.MaxFlow()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "max flow: %g\n", z)
			case "maxscale":
				z, err := problem.MaxScaleFactor()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "max scale factor: %g\n", z)
			case "maxincrement":
				z, err := problem.MaxIncrement()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "max increment: %g\n", z)
			default:
				return fmt.Errorf("netsimctl: unknown flow mode %q", mode)
			}

			logger.Info("flow query complete", "mode", mode, "commodities", len(commodities))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "feasible", "feasible, maxflow, maxscale, or maxincrement")
	cmd.Flags().Float64Var(&multiplier, "capacity-multiplier", 1, "scales every link's capacity before solving")
	return cmd
}
