// Package cmd provides the CLI commands for energy-quote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"energy-quote/core/template"
	"energy-quote/internal/config"
	"energy-quote/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "energy-quote",
	Short: "Produce battery storage quotes from facility intake answers",
	Long: `energy-quote runs the wizard contract quote pipeline: it maps facility
intake answers through an industry template and load calculator into a
validated load profile and pricing freeze.

Examples:
  energy-quote quote --industry hotel --answers answers.json
  energy-quote templates
  energy-quote replay session.json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.energy-quote.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
		cfg.Wizard.VerboseSanityChecks = true
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	if dir := cfg.Templates.Directory; dir != "" {
		if n, err := template.Default.LoadDir(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading templates from %s: %v\n", dir, err)
		} else if n > 0 {
			logging.Sugar.Debugf("loaded %d templates from %s", n, dir)
		}
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("energy-quote version 0.1.0")
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(config.Get())
	},
}
