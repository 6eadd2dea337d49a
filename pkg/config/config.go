package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adhocore/gronx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Assistant AssistantConfig `json:"assistant"`
	Providers ProvidersConfig `json:"providers"`
	Channels  ChannelsConfig  `json:"channels"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Chat      ChatConfig      `json:"chat"`
	Gateway   GatewayConfig   `json:"gateway"`
}

type AssistantConfig struct {
	Name        string  `env:"DUMA_ASSISTANT_NAME"        json:"name"`
	Provider    string  `env:"DUMA_ASSISTANT_PROVIDER"    json:"provider"` // "openai" | "anthropic"
	Model       string  `env:"DUMA_ASSISTANT_MODEL"       json:"model"`
	MaxTokens   int     `env:"DUMA_ASSISTANT_MAX_TOKENS"  json:"max_tokens"`
	Temperature float64 `env:"DUMA_ASSISTANT_TEMPERATURE" json:"temperature"`
}

type ProvidersConfig struct {
	OpenAI    ProviderConfig `envPrefix:"DUMA_PROVIDERS_OPENAI_"    json:"openai"`
	Anthropic ProviderConfig `envPrefix:"DUMA_PROVIDERS_ANTHROPIC_" json:"anthropic"`
}

type ProviderConfig struct {
	APIKey  string `env:"API_KEY"  json:"api_key"`
	APIBase string `env:"API_BASE" json:"api_base"`
}

// IsEmpty reports whether no provider has an API key or base URL set.
func (p ProvidersConfig) IsEmpty() bool {
	return p.OpenAI.APIKey == "" && p.OpenAI.APIBase == "" &&
		p.Anthropic.APIKey == "" && p.Anthropic.APIBase == ""
}

type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
	Discord  DiscordConfig  `json:"discord"`
	Slack    SlackConfig    `json:"slack"`
	Web      WebConfig      `json:"web"`
}

type TelegramConfig struct {
	Enabled   bool     `env:"DUMA_CHANNELS_TELEGRAM_ENABLED"    json:"enabled"`
	Token     string   `env:"DUMA_CHANNELS_TELEGRAM_TOKEN"      json:"token"`
	AllowFrom []string `env:"DUMA_CHANNELS_TELEGRAM_ALLOW_FROM" json:"allow_from"`
}

type DiscordConfig struct {
	Enabled   bool     `env:"DUMA_CHANNELS_DISCORD_ENABLED"    json:"enabled"`
	Token     string   `env:"DUMA_CHANNELS_DISCORD_TOKEN"      json:"token"`
	AllowFrom []string `env:"DUMA_CHANNELS_DISCORD_ALLOW_FROM" json:"allow_from"`
}

type SlackConfig struct {
	Enabled   bool     `env:"DUMA_CHANNELS_SLACK_ENABLED"    json:"enabled"`
	BotToken  string   `env:"DUMA_CHANNELS_SLACK_BOT_TOKEN"  json:"bot_token"`
	AppToken  string   `env:"DUMA_CHANNELS_SLACK_APP_TOKEN"  json:"app_token"`
	AllowFrom []string `env:"DUMA_CHANNELS_SLACK_ALLOW_FROM" json:"allow_from"`
}

type WebConfig struct {
	Enabled   bool     `env:"DUMA_CHANNELS_WEB_ENABLED"    json:"enabled"`
	AllowFrom []string `env:"DUMA_CHANNELS_WEB_ALLOW_FROM" json:"allow_from"`
}

type SchedulerConfig struct {
	PollIntervalSeconds int            `env:"DUMA_SCHEDULER_POLL_INTERVAL_SECONDS" json:"poll_interval_seconds"`
	Announcements       []Announcement `json:"announcements,omitempty"`
}

// Announcement is a recurring broadcast fired by the scheduler on a cron
// schedule, e.g. a weekly timetable post to the class group.
type Announcement struct {
	Cron    string `json:"cron"`
	Channel string `json:"channel"`
	ChatID  string `json:"chat_id"`
	Text    string `json:"text"`
}

type ChatConfig struct {
	LogCapacity     int `env:"DUMA_CHAT_LOG_CAPACITY"       json:"log_capacity"`
	ContextLines    int `env:"DUMA_CHAT_CONTEXT_LINES"      json:"context_lines"`
	MinAIIntervalMS int `env:"DUMA_CHAT_MIN_AI_INTERVAL_MS" json:"min_ai_interval_ms"`
}

type GatewayConfig struct {
	Host string `env:"DUMA_GATEWAY_HOST" json:"host"`
	Port int    `env:"DUMA_GATEWAY_PORT" json:"port"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, cfg.Validate()
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate checks cross-field constraints that JSON decoding cannot express.
func (c *Config) Validate() error {
	switch c.Assistant.Provider {
	case "openai", "anthropic":
	case "":
		return errors.New("assistant.provider is required")
	default:
		return fmt.Errorf("assistant.provider %q not supported (want openai or anthropic)", c.Assistant.Provider)
	}

	if c.Scheduler.PollIntervalSeconds <= 0 {
		return errors.New("scheduler.poll_interval_seconds must be positive")
	}
	if c.Chat.LogCapacity <= 0 {
		return errors.New("chat.log_capacity must be positive")
	}

	for i, a := range c.Scheduler.Announcements {
		if !gronx.IsValid(a.Cron) {
			return fmt.Errorf("scheduler.announcements[%d]: invalid cron expression %q", i, a.Cron)
		}
		if a.Channel == "" || a.ChatID == "" {
			return fmt.Errorf("scheduler.announcements[%d]: channel and chat_id are required", i)
		}
	}

	return nil
}

// ActiveProvider returns the provider config selected by assistant.provider.
func (c *Config) ActiveProvider() ProviderConfig {
	if c.Assistant.Provider == "anthropic" {
		return c.Providers.Anthropic
	}
	return c.Providers.OpenAI
}
