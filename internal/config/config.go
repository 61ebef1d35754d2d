// Package config provides Viper-based hierarchical configuration with
// .env loading and environment variable overrides.
package config

import (
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Correlation struct {
		// WindowSeconds bounds the temporal fallback match.
		WindowSeconds int `mapstructure:"window_seconds" yaml:"window_seconds"`
	} `mapstructure:"correlation" yaml:"correlation"`

	Extractor struct {
		// FieldsFile points at a YAML override for the identifier-field
		// allow-list. Empty means built-in defaults.
		FieldsFile string `mapstructure:"fields_file" yaml:"fields_file"`
	} `mapstructure:"extractor" yaml:"extractor"`
}

// Window returns the configured correlation window as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.Correlation.WindowSeconds) * time.Second
}

var (
	envOnce sync.Once

	// Logger is the shared application logger, reconfigured from the
	// loaded configuration at startup.
	Logger = logrus.New()
)

// LoadEnv loads variables from a .env file once, if one exists.
func LoadEnv() {
	envOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// InitializeConfig builds the configuration from defaults, an optional
// config.yaml and LOGLENS_* environment variables, in increasing priority.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.loglens")
	v.AddConfigPath(".loglens")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LOGLENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
		// Missing config file is fine, defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("correlation.window_seconds", 10)
	v.SetDefault("extractor.fields_file", "")
}

// ConfigureLoggingFromConfig applies the log section to the shared logger
// and returns it.
func ConfigureLoggingFromConfig(cfg *Config) *logrus.Logger {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if strings.ToLower(cfg.Log.Format) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return Logger
}
