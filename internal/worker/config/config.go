package config

import (
	"time"

	"golang-asset-analytics/internal/provider"
	"golang-asset-analytics/pkg/config"
)

// Worker holds worker-specific configuration.
type Worker struct {
	RedisStreamTaskExecutionTimeout time.Duration `mapstructure:"redis_stream_task_execution_timeout"`
	MaxConcurrentSymbols            int           `mapstructure:"max_concurrent_symbols"`
	RSSFeeds                        []string      `mapstructure:"rss_feeds"`
	ConvertCurrency                 string        `mapstructure:"convert_currency"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the worker service.
type Config struct {
	App           config.App                    `mapstructure:"app"`
	Logger        config.Logger                 `mapstructure:"logger"`
	Database      config.Database               `mapstructure:"database"`
	Redis         config.Redis                  `mapstructure:"redis"`
	Worker        Worker                        `mapstructure:"worker"`
	Finnhub       provider.FinnhubConfig       `mapstructure:"finnhub"`
	CoinMarketCap provider.CoinMarketCapConfig `mapstructure:"coinmarketcap"`
	NewsData      provider.NewsDataConfig      `mapstructure:"newsdata"`
	Gemini        Gemini                       `mapstructure:"gemini"`
	Telegram      Telegram                     `mapstructure:"telegram"`
}

// Load loads the worker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
