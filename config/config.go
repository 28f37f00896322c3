package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	MongoURI       string `mapstructure:"MONGO_URI"`
	MongoDatabase  string `mapstructure:"MONGO_DATABASE"`
	PostgresDSN    string `mapstructure:"POSTGRES_DSN"`
	StorageTimeout int    `mapstructure:"STORAGE_TIMEOUT_SECONDS"`
}

// GetConfig reads .env (TOML) from the working directory, overridden by
// environment variables. A missing file is fine; missing connection
// settings are not.
func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "bookstore")
	viper.SetDefault("STORAGE_TIMEOUT_SECONDS", 5)

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if config.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	return &config, nil
}

// Timeout returns the per-storage-call timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.StorageTimeout) * time.Second
}
