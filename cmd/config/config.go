// Package config handles the effective-configuration command
package config

import (
	"fjacquet/qfx-ledger/cmd/common"
	"fjacquet/qfx-ledger/cmd/root"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration the tool is actually running with, after
defaults, the config file and QFX_* environment variables have been merged.`,
	Run: configFunc,
}

func configFunc(cmd *cobra.Command, args []string) {
	out, err := yaml.Marshal(root.Cfg)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to marshal configuration")
	}

	w, closeOutput, err := common.OpenOutput(root.SharedFlags.Output)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to open output file")
	}
	defer closeOutput()

	if _, err := w.Write(out); err != nil {
		root.Log.WithError(err).Fatal("Failed to write configuration")
	}
}
