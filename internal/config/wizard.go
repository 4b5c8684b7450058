package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs the interactive configuration wizard and saves the
// result to .topictrail.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to topictrail! Let's set up your explorer.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"google", "openai", "openrouter", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	// 2. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   — fastest & cheapest (flash-lite / gpt-4o-mini)",
			"normal — balanced (flash / gpt-4o)",
			"max    — best answers (pro / gpt-4o)",
		},
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}
	quality := tiers[qualityIdx]

	preset := GetPreset(provider, quality)

	// 3. Temperature.
	tempPrompt := promptui.Prompt{
		Label:   "Temperature (0 to 2)",
		Default: "0.7",
		Validate: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v < 0 || v > 2 {
				return fmt.Errorf("enter a number between 0 and 2")
			}
			return nil
		},
	}
	tempStr, err := tempPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("temperature: %w", err)
	}
	temperature, _ := strconv.ParseFloat(tempStr, 64)

	// 4. Server port for the serve command.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port for topictrail serve",
		Default: "8484",
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 5. Allowed browser origins.
	corsPrompt := promptui.Prompt{
		Label:   "Allowed CORS origins (comma-separated, * for any)",
		Default: "*",
	}
	corsStr, err := corsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cors origins: %w", err)
	}
	origins := splitAndTrim(corsStr)
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = preset.Model
	cfg.ArtModel = preset.ArtModel
	cfg.Quality = quality
	cfg.Temperature = temperature
	cfg.Server.Port = port
	cfg.Server.CORSOrigins = origins

	// Check for API key.
	if envVar := APIKeyEnvVar(provider); envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before exploring.\n", envVar)
		}
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty tokens.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
