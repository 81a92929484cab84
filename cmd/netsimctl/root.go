package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string

	v      = viper.New()
	logger *slog.Logger
)

// runID correlates every log line emitted by a single netsimctl invocation.
var runID = uuid.New().String()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "netsimctl",
		Short:         "Inspect graphs, plan paths, and replay packet captures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a graph/run config file (YAML or JSON)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newGraphCmd())
	root.AddCommand(newPathsCmd())
	root.AddCommand(newFlowCmd())
	root.AddCommand(newPcapCmd())
	return root
}

func initConfig() error {
	v.SetEnvPrefix("NETSIMCTL")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("netsimctl: reading config %s: %w", cfgFile, err)
		}
	}

	rc := newRunConfig(WithLogLevel(logLevel), WithLogLevel(v.GetString("log_level")))
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(rc.logLevel),
	})).With("run_id", runID)
	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "netsimctl:", err)
		os.Exit(1)
	}
}
