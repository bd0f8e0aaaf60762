package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// CLIConfigDirName is the per-user directory holding the operator CLI config.
const CLIConfigDirName = ".bookarc"

// CLIConfigFileName is the operator CLI config file name.
const CLIConfigFileName = "config.yaml"

const cliConfigDirPermissions = 0o700

// CLIConfig holds operator CLI settings. The CLI talks to the database
// directly, so it only needs the connection string and a log level.
// Environment variables with the BOOKARC_ prefix override file values.
type CLIConfig struct {
	DatabaseURL string `mapstructure:"database_url" yaml:"database_url"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
}

// LoadCLI loads the operator CLI configuration from ~/.bookarc/config.yaml
// and the environment. A missing config file is fine when BOOKARC_DATABASE_URL
// is set.
func LoadCLI() (*CLIConfig, error) {
	v := viper.New()
	v.SetDefault("log_level", "INFO")

	if dir, err := cliConfigDir(); err == nil {
		v.SetConfigName(strings.TrimSuffix(CLIConfigFileName, filepath.Ext(CLIConfigFileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("BOOKARC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database_url")
	_ = v.BindEnv("log_level")

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// SaveCLI writes the configuration to ~/.bookarc/config.yaml, overwriting any
// existing file.
func SaveCLI(cfg *CLIConfig) error {
	dir, err := cliConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, cliConfigDirPermissions); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	v := viper.New()
	v.Set("database_url", cfg.DatabaseURL)
	v.Set("log_level", cfg.LogLevel)

	return v.WriteConfigAs(filepath.Join(dir, CLIConfigFileName))
}

func cliConfigDir() (string, error) {
	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("error getting current user: %w", err)
	}
	return filepath.Join(currentUser.HomeDir, CLIConfigDirName), nil
}
