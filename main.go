package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/qfx-ledger/cmd/amortize"
	configcmd "fjacquet/qfx-ledger/cmd/config"
	"fjacquet/qfx-ledger/cmd/extract"
	"fjacquet/qfx-ledger/cmd/identify"
	"fjacquet/qfx-ledger/cmd/preview"
	"fjacquet/qfx-ledger/cmd/root"
	"fjacquet/qfx-ledger/cmd/version"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables silently first (no logging yet); the
	// config layer picks QFX_* variables up through viper.
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(preview.Cmd)
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(identify.Cmd)
	root.Cmd.AddCommand(amortize.Cmd)
	root.Cmd.AddCommand(configcmd.Cmd)
	root.Cmd.AddCommand(version.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	// Try to find .env file in current directory
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// Try to find .env in parent directory (project root)
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

func main() {
	cc.Init(&cc.Config{
		RootCmd:  root.Cmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
