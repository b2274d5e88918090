package config

import (
	"golang-asset-analytics/internal/provider"
	"golang-asset-analytics/pkg/config"
)

// JWT holds token signing configuration.
type JWT struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

// Quotes holds quote-cache tuning for the read side.
type Quotes struct {
	TTL string `mapstructure:"ttl"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App       config.App               `mapstructure:"app"`
	Logger    config.Logger            `mapstructure:"logger"`
	Database  config.Database          `mapstructure:"database"`
	Redis     config.Redis             `mapstructure:"redis"`
	API       config.API               `mapstructure:"api"`
	JWT       JWT                      `mapstructure:"jwt"`
	Quotes    Quotes                   `mapstructure:"quotes"`
	Finnhub   provider.FinnhubConfig   `mapstructure:"finnhub"`
	CoinGecko provider.CoinGeckoConfig `mapstructure:"coingecko"`
}

// Load loads the API configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
