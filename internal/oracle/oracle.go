// Package oracle issues the two generation requests behind topic
// exploration: the structured answer and the decorative ASCII art.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"topictrail/internal/llm"
	"topictrail/internal/topic"
)

// ErrMalformed is returned when a response parses as JSON but fails the
// required-shape check.
var ErrMalformed = errors.New("malformed model response")

// Config holds the generation parameters for a Service.
type Config struct {
	Model       string
	ArtModel    string
	Temperature float64
	MaxTokens   int
	// MaxAttempts bounds the structured-answer attempts per request.
	// Values below 1 behave as 1.
	MaxAttempts int
	// ThinkingBudget caps the model's reasoning tokens when >= 0;
	// -1 leaves the model default in place.
	ThinkingBudget int
}

// Service fetches answers and art from an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Service on top of the given provider.
func New(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Result couples a parsed answer with the observed latency and token
// usage. Elapsed is populated even when the request fails.
type Result struct {
	Answer       topic.Answer
	Elapsed      time.Duration
	Model        string
	InputTokens  int
	OutputTokens int
}

// Answer fetches the structured answer for a subject. Failures after the
// configured number of attempts surface the last error; Elapsed covers
// the whole call either way.
func (s *Service) Answer(ctx context.Context, subject string) (Result, error) {
	attempts := s.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < attempts; i++ {
		res, err := s.answerOnce(ctx, subject)
		if err == nil {
			res.Elapsed = time.Since(start)
			return res, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return Result{Elapsed: time.Since(start)}, lastErr
}

func (s *Service) answerOnce(ctx context.Context, subject string) (Result, error) {
	resp, err := s.provider.Complete(ctx, s.request(s.cfg.Model, answerSystemPrompt, answerUserPrompt(subject)))
	if err != nil {
		return Result{}, fmt.Errorf("answer request failed: %w", err)
	}

	ans, err := parseAnswer(resp.Content)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Answer:       ans,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	}, nil
}

// Art fetches ASCII art for a subject. Callers are expected to substitute
// FallbackArt on error; art failure is never fatal to exploration.
func (s *Service) Art(ctx context.Context, subject string) (string, error) {
	model := s.cfg.ArtModel
	if model == "" {
		model = s.cfg.Model
	}

	resp, err := s.provider.Complete(ctx, s.request(model, artSystemPrompt, artUserPrompt(subject)))
	if err != nil {
		return "", fmt.Errorf("art request failed: %w", err)
	}
	return parseArt(resp.Content)
}

func (s *Service) request(model, system, user string) llm.CompletionRequest {
	req := llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: user},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		JSONMode:    true,
	}
	if s.cfg.ThinkingBudget >= 0 {
		budget := s.cfg.ThinkingBudget
		req.ThinkingBudget = &budget
	}
	return req
}

// parseAnswer validates the structured-answer contract: non-empty
// explanation and suggestion, and at least one link with both fields set.
func parseAnswer(raw string) (topic.Answer, error) {
	var ans topic.Answer
	if err := json.Unmarshal([]byte(StripFence(raw)), &ans); err != nil {
		return ans, fmt.Errorf("parsing answer JSON: %w", err)
	}
	if strings.TrimSpace(ans.Explanation) == "" {
		return ans, fmt.Errorf("%w: missing explanation", ErrMalformed)
	}
	if strings.TrimSpace(ans.Suggestion) == "" {
		return ans, fmt.Errorf("%w: missing suggestion", ErrMalformed)
	}
	if len(ans.Links) == 0 {
		return ans, fmt.Errorf("%w: no links", ErrMalformed)
	}
	for i, l := range ans.Links {
		if strings.TrimSpace(l.Title) == "" || strings.TrimSpace(l.URL) == "" {
			return ans, fmt.Errorf("%w: link %d is incomplete", ErrMalformed, i)
		}
	}
	return ans, nil
}

// StripFence removes a wrapping markdown code fence from a model
// response.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
