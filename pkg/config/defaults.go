package config

// DefaultConfig returns the configuration template used when no config
// file exists yet. Values here are safe to run with; only provider
// credentials and channel tokens need filling in.
func DefaultConfig() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Name:        "Duma",
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			MaxTokens:   300,
			Temperature: 0.1,
		},
		Channels: ChannelsConfig{
			Web: WebConfig{Enabled: true},
		},
		Scheduler: SchedulerConfig{
			PollIntervalSeconds: 15,
		},
		Chat: ChatConfig{
			LogCapacity:     200,
			ContextLines:    6,
			MinAIIntervalMS: 1000,
		},
		Gateway: GatewayConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
	}
}
