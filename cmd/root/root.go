// Package root contains the root command for the application
package root

import (
	"fjacquet/qfx-ledger/internal/amortize"
	"fjacquet/qfx-ledger/internal/config"
	"fjacquet/qfx-ledger/internal/ledger"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/pdfarchive"
	"fjacquet/qfx-ledger/internal/qfxparser"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Suffix   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRunE has run.
	Cfg *config.Config

	// ConfigFile is the path given via --config; empty means search the
	// default locations.
	ConfigFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "qfx-ledger",
		Short: "A CLI tool to extract ledger entries from OFX/QFX bank statements.",
		Long: `qfx-ledger is a CLI tool that parses OFX/QFX statement downloads,
matches them against configured accounts and emits plain-text ledger entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			Log.Info("Welcome to qfx-ledger!")
			Log.Info("Use --help to see available commands")
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(ConfigFile)
			if err != nil {
				return err
			}
			Cfg = cfg

			Log = config.ConfigureLogging(cfg)
			logging.SetDefaultLogger(Log)

			// Set the configured logger for all packages
			qfxparser.SetLogger(Log)
			ledger.SetLogger(Log)
			pdfarchive.SetLogger(Log)
			amortize.SetLogger(Log)
			return nil
		},
		SilenceUsage: true,
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "", "Config file (default is $HOME/.qfx-ledger/config.yaml)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default is stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Suffix, "suffix", "s", "", "Account identifier suffix to match")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before processing")
}
