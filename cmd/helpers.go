package cmd

import (
	"fmt"

	"topictrail/internal/config"
	"topictrail/internal/llm"
	"topictrail/internal/logger"
	"topictrail/internal/oracle"
)

// setup loads and validates the config and configures logging. Shared
// by the ask, explore, serve, and mcp commands.
func setup() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `topictrail init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger.Setup(verbose, cfg.LogFile)
	return cfg, nil
}

// buildProvider creates the LLM provider from config, wrapped with a
// rate limiter when requests_per_minute is set.
func buildProvider(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	if cfg.RequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute)
	}
	return provider, nil
}

// buildOracle maps the loaded config onto an oracle service.
func buildOracle(cfg *config.Config, provider llm.Provider) *oracle.Service {
	return oracle.New(provider, oracle.Config{
		Model:          cfg.Model,
		ArtModel:       cfg.ArtModel,
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		MaxAttempts:    cfg.MaxAttempts,
		ThinkingBudget: cfg.ThinkingBudget,
	})
}
