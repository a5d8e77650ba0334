package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the startup settings. Values come from qcanvas.yaml (cwd
// or ~/.config/qcanvas), overridable through QCANVAS_* environment
// variables; preferences stored in the persistence area override the
// theme and shot count once loaded.
type Config struct {
	NumQubits int    `mapstructure:"qubits"`
	Shots     int    `mapstructure:"shots"`
	Theme     string `mapstructure:"theme"`
	DBPath    string `mapstructure:"db_path"`
	LogFile   string `mapstructure:"log_file"`
}

// LoadConfig reads the config file if present and applies defaults
// otherwise. A missing file is not an error; a malformed one is.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("qcanvas")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "qcanvas"))
	}
	v.SetEnvPrefix("QCANVAS")
	v.AutomaticEnv()

	v.SetDefault("qubits", 4)
	v.SetDefault("shots", defaultShots)
	v.SetDefault("theme", "dark")
	v.SetDefault("db_path", "qcanvas.db")
	v.SetDefault("log_file", "qcanvas.log")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if cfg.NumQubits < 1 || cfg.NumQubits > MaxQubits {
		cfg.NumQubits = 4
	}
	if cfg.Shots <= 0 {
		cfg.Shots = defaultShots
	}
	return cfg, nil
}
