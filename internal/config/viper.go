package config

import (
	"fmt"
	"strings"

	"fjacquet/qfx-ledger/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Load initializes Viper configuration with hierarchical loading:
// defaults, then the config file, then QFX_* environment variables.
// configFile may be empty, in which case the usual search paths apply and a
// missing file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.qfx-ledger")
		v.AddConfigPath(".qfx-ledger")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("QFX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
		}
		// No config file is fine; defaults and env vars still apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("downloads", "downloads")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	for i, account := range config.Accounts {
		if account.LedgerAccount == "" {
			return fmt.Errorf("accounts[%d]: ledger_account is required", i)
		}
		if account.AcctIDSuffix == "" {
			return fmt.Errorf("accounts[%d]: acctid_suffix is required", i)
		}
		if account.Org == "" {
			return fmt.Errorf("accounts[%d]: org is required", i)
		}
	}

	for name, loan := range config.Loans {
		if _, err := loan.LoanDetail(); err != nil {
			return fmt.Errorf("loan '%s': %w", name, err)
		}
	}

	return nil
}

// ConfigureLogging builds the application logger from the config.
func ConfigureLogging(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
