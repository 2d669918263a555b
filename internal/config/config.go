package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Data sources the API can build its store from.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Radius search strategies.
const (
	IndexLinear = "linear"
	IndexRTree  = "rtree"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress     string `mapstructure:"server_address"`
	GinMode           string `mapstructure:"gin_mode"`
	LogLevel          string `mapstructure:"log_level"`
	LogFormat         string `mapstructure:"log_format"`
	DataSource        string `mapstructure:"data_source"`
	CSVPath           string `mapstructure:"csv_path"`
	CSVHasHeader      bool   `mapstructure:"csv_has_header"`
	StrictCoordinates bool   `mapstructure:"strict_coordinates"`
	DBSource          string `mapstructure:"db_source"`
	NearbyIndex       string `mapstructure:"nearby_index"`
}

// LoadConfig reads configuration from file "app" in path, then from POSTALGEO_* environment
// variables. A missing file is fine; defaults and the environment still apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("server_address", ":8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("data_source", SourceCSV)
	v.SetDefault("csv_path", "data/postalcodes.csv")
	v.SetDefault("csv_has_header", false)
	v.SetDefault("strict_coordinates", true)
	v.SetDefault("db_source", "")
	v.SetDefault("nearby_index", IndexLinear)

	v.SetEnvPrefix("POSTALGEO")
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, config.validate()
}

func (c Config) validate() error {
	switch c.DataSource {
	case SourceCSV:
		if c.CSVPath == "" {
			return errors.New("config: csv_path is required when data_source is csv")
		}
	case SourcePostgres:
		if c.DBSource == "" {
			return errors.New("config: db_source is required when data_source is postgres")
		}
	default:
		return fmt.Errorf("config: unknown data_source %q", c.DataSource)
	}

	switch c.NearbyIndex {
	case IndexLinear, IndexRTree:
	default:
		return fmt.Errorf("config: unknown nearby_index %q", c.NearbyIndex)
	}
	return nil
}

// NewLogger creates a zerolog logger writing to w at the configured level and format.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.ToLower(c.LogFormat) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
