package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raykavin/tradechart/pkg/config"
	"github.com/raykavin/tradechart/pkg/indicator"
)

// Persistent flags
var (
	configFile string
	overrides  map[string]string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tradechart",
		Short:         "Candlestick chart rendering tools",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringToStringVar(&overrides, "set", nil, "Configuration overrides (e.g. zoom.step=5)")

	rootCmd.AddCommand(buildRenderCmd())
	rootCmd.AddCommand(buildServeCmd())
	rootCmd.AddCommand(buildTimeFramesCmd())
	rootCmd.AddCommand(buildIndicatorsCmd())
	rootCmd.AddCommand(buildResampleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, if any, and applies the --set
// overrides on top
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return config.Config{}, err
		}
	}

	if len(overrides) == 0 {
		return cfg, nil
	}

	values := make(map[string]any, len(overrides))
	for key, value := range overrides {
		values[key] = value
	}
	return config.Apply(cfg, values)
}

func parseIndicators(raw []string) ([]indicator.Spec, error) {
	specs := make([]indicator.Spec, 0, len(raw))
	for _, r := range raw {
		spec, err := indicator.ParseSpec(r)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
