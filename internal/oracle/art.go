package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"topictrail/internal/topic"
)

// maxFallbackTitle is the rune budget for a topic inside the fallback box
// before it is truncated with an ellipsis.
const maxFallbackTitle = 17

// parseArt validates the art contract: after fence stripping the payload
// must be a JSON object (begin with { and end with }) whose "art" field
// is a non-empty string.
func parseArt(raw string) (string, error) {
	cleaned := StripFence(raw)
	if !strings.HasPrefix(cleaned, "{") || !strings.HasSuffix(cleaned, "}") {
		return "", fmt.Errorf("%w: art payload is not a JSON object", ErrMalformed)
	}

	var payload struct {
		Art string `json:"art"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return "", fmt.Errorf("parsing art JSON: %w", err)
	}
	if strings.TrimSpace(payload.Art) == "" {
		return "", fmt.Errorf("%w: empty art", ErrMalformed)
	}
	return payload.Art, nil
}

// FallbackArt draws a deterministic placeholder box for a topic when art
// generation fails. The topic is truncated to 17 runes plus an ellipsis
// and centered with one space of padding on each side.
func FallbackArt(subject string) string {
	runes := []rune(topic.Normalize(subject))
	if len(runes) > maxFallbackTitle {
		runes = append(runes[:maxFallbackTitle], '…')
	}
	title := " " + string(runes) + " "
	bar := strings.Repeat("─", utf8.RuneCountInString(title))
	return "┌" + bar + "┐\n│" + title + "│\n└" + bar + "┘"
}
