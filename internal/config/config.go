package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Data sources the facility store can be loaded from.
const (
	DataSourceFile     = "file"
	DataSourcePostgres = "postgres"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variable.
type Config struct {
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	DataSource       string `mapstructure:"DATA_SOURCE"`
	DataFile         string `mapstructure:"DATA_FILE"`
	DataSheet        string `mapstructure:"DATA_SHEET"`
	DBSource         string `mapstructure:"DB_SOURCE"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	LogFormat        string `mapstructure:"LOG_FORMAT"`
	DefaultNeighbors int    `mapstructure:"DEFAULT_NEIGHBORS"`
	GinMode          string `mapstructure:"GIN_MODE"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":    "0.0.0.0:8080",
	"DATA_SOURCE":       DataSourceFile,
	"DATA_FILE":         "data/Mobile_Food_Facility_Permit.csv",
	"DATA_SHEET":        "",
	"DB_SOURCE":         "",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "json",
	"DEFAULT_NEIGHBORS": 5,
	"GIN_MODE":          "release",
}

// LoadConfig reads configuration from path/app.env, if present, and from
// environment variables, which take precedence. A .env file in path is
// loaded into the environment first without overriding variables already set.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read app.env: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.DataSource {
	case DataSourceFile:
		if c.DataFile == "" {
			return errors.New("config: DATA_FILE is required when DATA_SOURCE is file")
		}
	case DataSourcePostgres:
		if c.DBSource == "" {
			return errors.New("config: DB_SOURCE is required when DATA_SOURCE is postgres")
		}
	default:
		return fmt.Errorf("config: unknown DATA_SOURCE %q", c.DataSource)
	}

	if c.DefaultNeighbors < 0 {
		return fmt.Errorf("config: DEFAULT_NEIGHBORS must not be negative, got %d", c.DefaultNeighbors)
	}
	return nil
}
