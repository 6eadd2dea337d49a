package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.json"))
	require.NoError(t, err)

	assert.Equal(t, "Duma", cfg.Assistant.Name)
	assert.Equal(t, "openai", cfg.Assistant.Provider)
	assert.Equal(t, 15, cfg.Scheduler.PollIntervalSeconds)
	assert.Equal(t, 200, cfg.Chat.LogCapacity)
	assert.True(t, cfg.Channels.Web.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DUMA_PROVIDERS_OPENAI_API_KEY", "sk-test")
	t.Setenv("DUMA_ASSISTANT_MODEL", "gpt-4o")
	t.Setenv("DUMA_CHAT_MIN_AI_INTERVAL_MS", "2500")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Assistant.Model)
	assert.Equal(t, 2500, cfg.Chat.MinAIIntervalMS)
}

func TestSaveConfig_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duma", "config.json")

	cfg := DefaultConfig()
	cfg.Assistant.Provider = "anthropic"
	cfg.Providers.Anthropic.APIKey = "sk-ant"
	cfg.Scheduler.Announcements = []Announcement{
		{Cron: "0 8 * * 1", Channel: "telegram", ChatID: "42", Text: "Weekly timetable"},
	}
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", loaded.Assistant.Provider)
	assert.Equal(t, "sk-ant", loaded.Providers.Anthropic.APIKey)
	require.Len(t, loaded.Scheduler.Announcements, 1)
	assert.Equal(t, "0 8 * * 1", loaded.Scheduler.Announcements[0].Cron)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty provider", func(c *Config) { c.Assistant.Provider = "" }, true},
		{"unknown provider", func(c *Config) { c.Assistant.Provider = "groq" }, true},
		{"zero poll interval", func(c *Config) { c.Scheduler.PollIntervalSeconds = 0 }, true},
		{"zero log capacity", func(c *Config) { c.Chat.LogCapacity = 0 }, true},
		{"bad announcement cron", func(c *Config) {
			c.Scheduler.Announcements = []Announcement{{Cron: "nope", Channel: "web", ChatID: "x"}}
		}, true},
		{"announcement missing target", func(c *Config) {
			c.Scheduler.Announcements = []Announcement{{Cron: "* * * * *"}}
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActiveProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Providers.OpenAI.APIKey = "sk-oa"
	cfg.Providers.Anthropic.APIKey = "sk-ant"

	assert.Equal(t, "sk-oa", cfg.ActiveProvider().APIKey)
	cfg.Assistant.Provider = "anthropic"
	assert.Equal(t, "sk-ant", cfg.ActiveProvider().APIKey)
}
