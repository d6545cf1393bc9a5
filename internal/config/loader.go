package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".languatage"

// configType is the config file format.
const configType = "yaml"

// Load reads the language table from a config file.
// If path is non-empty it is used as the explicit config file path and
// must exist. Otherwise the config file is searched in CWD and $HOME,
// and a missing file falls back to the embedded default table.
func Load(path string) (*Config, error) {
	viperCfg := viper.New()
	viperCfg.SetConfigType(configType)

	if path != "" {
		viperCfg.SetConfigFile(path)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	if readErr := viperCfg.ReadInConfig(); readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(readErr, &notFound) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read config: %w", readErr)
	}

	var cfg Config

	if unmarshalErr := viperCfg.Unmarshal(&cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("validate config %q: %w", viperCfg.ConfigFileUsed(), validateErr)
	}

	return &cfg, nil
}
