// Package config defines the application configuration and loads it from a
// YAML file, the process environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// Configuration holds all configuration for fincalc.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Format  FormatConfig  `yaml:"format,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, yaml
}

// FormatConfig tunes how results are displayed.
type FormatConfig struct {
	PercentDecimals int `yaml:"percentDecimals,omitempty"`
}

// ServerConfig points at the HTTP server's own configuration file.
type ServerConfig struct {
	ConfigFile string `yaml:"configFile,omitempty"`
}

// LoadConfiguration loads the YAML configuration at configPath, applying
// FINCALC_* environment overrides and a .env file in the working directory.
// A missing configuration file yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	return LoadConfigurationWithEnv(configPath, DefaultEnvFile)
}

// LoadConfigurationWithEnv is LoadConfiguration with an explicit dotenv
// path. Variables already set in the environment win over the file.
func LoadConfigurationWithEnv(configPath, envFile string) (*Configuration, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("format.percentDecimals", constants.DefaultPercentDecimals)
	v.SetDefault("server.configFile", constants.DefaultServerConfigFile)
}

// Validate checks the values that cannot be corrected silently.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Format.PercentDecimals < 1 || c.Format.PercentDecimals > 2 {
		return fmt.Errorf("format.percentDecimals must be 1 or 2, got %d", c.Format.PercentDecimals)
	}
	return nil
}
