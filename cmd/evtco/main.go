package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetscope/evtco/internal/server"
	"github.com/fleetscope/evtco/pkg/tco"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "evtco",
		Short: "Fleet electrification total-cost-of-ownership engine",
	}

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type calculateOptions struct {
	defaultsPath    string
	batteryCosts    string
	jsonOutput      bool
	sensitivityStep float64
}

func calculateCmd() *cobra.Command {
	var opts calculateOptions

	cmd := &cobra.Command{
		Use:   "calculate [scenario.yaml]",
		Short: "Run the full EV vs diesel cost comparison for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCalculate(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.defaultsPath, "defaults", "", "defaults YAML merged under the scenario file")
	cmd.Flags().StringVar(&opts.batteryCosts, "battery-costs", "", "battery pack cost projection YAML")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "emit the full result as JSON")
	cmd.Flags().Float64Var(&opts.sensitivityStep, "sensitivity", 0, "also report TCO deltas for discount rate +/- this step (e.g. 0.01)")
	return cmd
}

func validateCmd() *cobra.Command {
	var defaultsPath string

	cmd := &cobra.Command{
		Use:   "validate [scenario.yaml]",
		Short: "Validate a scenario file without running the calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], defaultsPath)
		},
	}

	cmd.Flags().StringVar(&defaultsPath, "defaults", "", "defaults YAML merged under the scenario file")
	return cmd
}

func compareCmd() *cobra.Command {
	var opts calculateOptions

	cmd := &cobra.Command{
		Use:   "compare [scenario.yaml...]",
		Short: "Run several scenarios and compare their headline results",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCompare(args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.defaultsPath, "defaults", "", "defaults YAML merged under each scenario file")
	cmd.Flags().StringVar(&opts.batteryCosts, "battery-costs", "", "battery pack cost projection YAML")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int
	var batteryCosts string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			srv := server.New(port, newCalculator(batteryCosts))
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	cmd.Flags().StringVar(&batteryCosts, "battery-costs", "", "battery pack cost projection YAML")
	return cmd
}

func newCalculator(batteryCostsPath string) *tco.Calculator {
	if batteryCostsPath == "" {
		return tco.NewCalculator(nil)
	}
	return tco.NewCalculator(tco.NewBatteryCostCache(tco.FileBatteryCostSource(batteryCostsPath)))
}
