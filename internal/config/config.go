package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

type ClassifierConfig struct {
	HotWindowDays      int           `mapstructure:"hot_window_days"`
	WarmWindowDays     int           `mapstructure:"warm_window_days"`
	ReclassifyInterval time.Duration `mapstructure:"reclassify_interval"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type DashboardConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type Config struct {
	Server       ServerConfig     `mapstructure:"server"`
	Storage      StorageConfig    `mapstructure:"storage"`
	Classifier   ClassifierConfig `mapstructure:"classifier"`
	RateLimit    RateLimitConfig  `mapstructure:"rate_limit"`
	CORS         CORSConfig       `mapstructure:"cors"`
	Dashboard    DashboardConfig  `mapstructure:"dashboard"`
	LogLevel     string           `mapstructure:"log_level"`
	DefaultOwner string           `mapstructure:"default_owner"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("salestrack")
	viper.AutomaticEnv()

	setDefaults()

	// A missing config file is fine; defaults and env cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("storage.dir", "data")
	viper.SetDefault("classifier.hot_window_days", 14)
	viper.SetDefault("classifier.warm_window_days", 30)
	viper.SetDefault("classifier.reclassify_interval", time.Hour)
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 50.0)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID"})
	viper.SetDefault("dashboard.cache_ttl", 15*time.Second)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("default_owner", "Sammy")
}
