package config

// QualityTier selects the speed/cost versus quality trade-off.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderGoogle     ProviderType = "google"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderOllama     ProviderType = "ollama"
)

// Config is the top-level topictrail configuration, corresponding to
// .topictrail.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
	// ArtModel generates the ASCII art; empty means reuse Model.
	ArtModel    string      `yaml:"art_model" koanf:"art_model"`
	Quality     QualityTier `yaml:"quality" koanf:"quality"`
	Temperature float64     `yaml:"temperature" koanf:"temperature"`
	MaxTokens   int         `yaml:"max_tokens" koanf:"max_tokens"`
	MaxAttempts int         `yaml:"max_attempts" koanf:"max_attempts"`
	// ThinkingBudget caps reasoning tokens on models that support it.
	// -1 keeps the provider default; 0 disables thinking.
	ThinkingBudget int `yaml:"thinking_budget" koanf:"thinking_budget"`
	// RequestsPerMinute rate-limits provider calls; 0 means unlimited.
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	LogFile           string       `yaml:"log_file" koanf:"log_file"`
	Server            ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Host        string   `yaml:"host" koanf:"host"`
	Port        int      `yaml:"port" koanf:"port"`
	CORSOrigins []string `yaml:"cors_origins" koanf:"cors_origins"`
}
