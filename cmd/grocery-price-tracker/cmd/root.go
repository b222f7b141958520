// Package cmd implements the CLI commands for grocery-price-tracker.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/grocery-price-tracker/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "grocery-price-tracker",
	Short: "Match grocery products to UK retailer listings",
	Long: "grocery-price-tracker finds the best matching retailer listing for a\n" +
		"product description, scores how confident the match is, and records\n" +
		"prices per retailer. It runs as an API service, a one-off matcher, or a\n" +
		"CSV batch processor.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initViper)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "config.yaml", "config file path")
	pf.String("log-level", "", "override logging.level (debug, info, warn, error)")
	pf.String("log-format", "", "override logging.format (text, json)")

	for _, name := range []string{"config", "log-level", "log-format"} {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(cacheCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCommand())
}

// initViper lets every flag be set as GPT_<FLAG>, e.g. GPT_CONFIG or
// GPT_LOG_LEVEL.
func initViper() {
	viper.SetEnvPrefix("GPT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file named by --config and applies logging
// overrides from flags or environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if lvl := viper.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if f := viper.GetString("log-format"); f != "" {
		cfg.Logging.Format = f
	}
	return cfg, nil
}
