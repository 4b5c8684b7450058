package config

// QualityPreset describes the models used at a given quality tier. The
// art model can be cheaper than the answer model since decorative art
// tolerates weaker output.
type QualityPreset struct {
	Model    string
	ArtModel string
}

// qualityPresets maps each provider+quality combination to its models.
var qualityPresets = map[ProviderType]map[QualityTier]QualityPreset{
	ProviderGoogle: {
		QualityLite:   {Model: "gemini-2.5-flash-lite", ArtModel: "gemini-2.5-flash-lite"},
		QualityNormal: {Model: "gemini-2.5-flash", ArtModel: "gemini-2.5-flash-lite"},
		QualityMax:    {Model: "gemini-2.5-pro", ArtModel: "gemini-2.5-flash"},
	},
	ProviderOpenAI: {
		QualityLite:   {Model: "gpt-4o-mini", ArtModel: "gpt-4o-mini"},
		QualityNormal: {Model: "gpt-4o", ArtModel: "gpt-4o-mini"},
		QualityMax:    {Model: "gpt-4o", ArtModel: "gpt-4o"},
	},
	ProviderOpenRouter: {
		QualityLite:   {Model: "google/gemini-2.5-flash-lite", ArtModel: "google/gemini-2.5-flash-lite"},
		QualityNormal: {Model: "google/gemini-2.5-flash", ArtModel: "google/gemini-2.5-flash-lite"},
		QualityMax:    {Model: "anthropic/claude-sonnet-4", ArtModel: "google/gemini-2.5-flash"},
	},
	ProviderOllama: {
		QualityLite:   {Model: "llama3", ArtModel: "llama3"},
		QualityNormal: {Model: "llama3", ArtModel: "llama3"},
		QualityMax:    {Model: "llama3:70b", ArtModel: "llama3"},
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGoogle,
		Model:             "gemini-2.5-flash",
		ArtModel:          "gemini-2.5-flash-lite",
		Quality:           QualityNormal,
		Temperature:       0.7,
		MaxTokens:         1024,
		MaxAttempts:       1,
		ThinkingBudget:    0,
		RequestsPerMinute: 0,
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8484,
			CORSOrigins: []string{"*"},
		},
	}
}

// GetPreset returns the quality preset for the given provider and tier.
// Unknown combinations fall back to the Google normal preset.
func GetPreset(provider ProviderType, tier QualityTier) QualityPreset {
	if tiers, ok := qualityPresets[provider]; ok {
		if preset, ok := tiers[tier]; ok {
			return preset
		}
	}
	return qualityPresets[ProviderGoogle][QualityNormal]
}
