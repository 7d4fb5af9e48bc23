package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"financebot/internal/storage"
)

// TelegramConfig holds Telegram transport settings. The token is the only
// credential that prevents startup when missing.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// DealsConfig configures the deals API client. A missing key is not
// validated at startup; requests simply fail at call time.
type DealsConfig struct {
	APIKey  string `yaml:"api_key" envconfig:"DISCOUNT_API_KEY"`
	BaseURL string `yaml:"base_url" envconfig:"DISCOUNT_API_BASE_URL"`
	Limit   int    `yaml:"limit" envconfig:"DISCOUNT_API_LIMIT"`
}

// SearchConfig configures the product search scraper.
type SearchConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"SEARCH_BASE_URL"`
}

// OpenAIConfig configures the assistant. An empty key disables the AI flows
// without preventing startup.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key" envconfig:"OPENAI_API_KEY"`
	Model  string `yaml:"model" envconfig:"OPENAI_MODEL"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Config aggregates the whole bot configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Database storage.Config `yaml:"database"`
	Deals    DealsConfig    `yaml:"deals"`
	Search   SearchConfig   `yaml:"search"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AIEnabled reports whether the completion API credential is configured.
func (c *Config) AIEnabled() bool {
	return strings.TrimSpace(c.OpenAI.APIKey) != ""
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if strings.TrimSpace(cfg.Deals.BaseURL) == "" {
		cfg.Deals.BaseURL = "https://api.discountapi.com/v2"
	}
	if cfg.Deals.Limit <= 0 {
		cfg.Deals.Limit = 5
	}
	if strings.TrimSpace(cfg.Search.BaseURL) == "" {
		cfg.Search.BaseURL = "https://shopee.com.br"
	}
	if strings.TrimSpace(cfg.OpenAI.Model) == "" {
		cfg.OpenAI.Model = "gpt-4.1-mini"
	}
	if strings.TrimSpace(cfg.Database.SSLMode) == "" {
		cfg.Database.SSLMode = "disable"
	}

	return nil
}
