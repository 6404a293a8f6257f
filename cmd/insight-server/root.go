package main

import (
	"github.com/spf13/cobra"

	"supplychain-insights/internal/common/config"
)

var (
	cfgFile          string
	capabilitiesFile string
)

var rootCmd = &cobra.Command{
	Use:   "insight-server",
	Short: "Natural-language supply chain analytics",
	Long: `insight-server answers plain-English questions about demand, inventory,
shipping, customer sentiment and warehouse efficiency. Questions are
classified, routed to an analytics handler and returned as a list of
insights, optionally rewritten into a narrative by a generative model.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&capabilitiesFile, "capabilities", "", "capability registry file (JSON or YAML); built-in list when empty")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.Load()
}
