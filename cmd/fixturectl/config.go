package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "FIXTURECTL"

	cfgKeyCatalog  = "catalog"
	cfgKeyLogLevel = "log_level"

	defaultCatalog  = ".fixtures.db"
	defaultLogLevel = "warn"
)

// loadConfig reads the optional config file and binds flags and
// FIXTURECTL_* environment variables. Flags win over the environment,
// which wins over the file.
func loadConfig(cmd *cobra.Command, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyCatalog, defaultCatalog)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Root().PersistentFlags()
	if err := v.BindPFlag(cfgKeyCatalog, flags.Lookup("catalog")); err != nil {
		return nil, fmt.Errorf("bind catalog flag: %w", err)
	}
	if err := v.BindPFlag(cfgKeyLogLevel, flags.Lookup("log-level")); err != nil {
		return nil, fmt.Errorf("bind log-level flag: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".fixturectl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// parseLevel maps a level name to a slog level. Unknown names are an error.
func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
