package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"topictrail/internal/llm"
	"topictrail/internal/oracle"
	"topictrail/internal/progress"
	"topictrail/internal/textspan"
	"topictrail/internal/topic"
)

var (
	askJSON   bool
	askRandom bool
	askNoArt  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [topic]",
	Short: "Explore a single topic and print the result",
	Long:  `Fetches an explanation, a suggested next angle, and resource links for one topic. Use --random to let topictrail pick.`,
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := topic.Normalize(strings.Join(args, " "))
		if askRandom {
			subject = topic.Random()
		}
		if subject == "" {
			return fmt.Errorf("provide a topic or pass --random")
		}

		cfg, err := setup()
		if err != nil {
			return err
		}
		provider, err := buildProvider(cfg)
		if err != nil {
			return err
		}
		svc := buildOracle(cfg, provider)

		var waiter progress.Waiter
		if !askJSON {
			waiter = progress.NewWaiter()
			waiter.Start(fmt.Sprintf("Exploring %q", subject))
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		// Answer and art are independent requests; run them together.
		type artOut struct {
			art string
		}
		artCh := make(chan artOut, 1)
		if askNoArt {
			artCh <- artOut{}
		} else {
			go func() {
				art, err := svc.Art(ctx, subject)
				if err != nil {
					art = oracle.FallbackArt(subject)
				}
				artCh <- artOut{art: art}
			}()
		}

		res, ansErr := svc.Answer(ctx, subject)
		art := (<-artCh).art

		if waiter != nil {
			waiter.Stop()
		}
		if ansErr != nil {
			return fmt.Errorf("exploring %q: %w", subject, ansErr)
		}

		if askJSON {
			return printAskJSON(subject, res, art)
		}
		printAskText(subject, res, art)
		return nil
	},
}

// askResult is the --json output shape.
type askResult struct {
	Topic        string              `json:"topic"`
	Explanation  string              `json:"explanation"`
	Suggestion   string              `json:"suggestion"`
	Links        []topic.Link        `json:"links"`
	Fragments    []textspan.Fragment `json:"fragments"`
	Art          string              `json:"art,omitempty"`
	Model        string              `json:"model"`
	ElapsedMS    int64               `json:"elapsed_ms"`
	InputTokens  int                 `json:"input_tokens"`
	OutputTokens int                 `json:"output_tokens"`
	CostUSD      float64             `json:"cost_usd"`
}

func printAskJSON(subject string, res oracle.Result, art string) error {
	used := textspan.NewUsedSet()
	frags := textspan.Render(res.Answer.Explanation, res.Answer.Links, used)

	out := askResult{
		Topic:        subject,
		Explanation:  res.Answer.Explanation,
		Suggestion:   res.Answer.Suggestion,
		Links:        res.Answer.Links,
		Fragments:    frags,
		Art:          art,
		Model:        res.Model,
		ElapsedMS:    res.Elapsed.Milliseconds(),
		InputTokens:  res.InputTokens,
		OutputTokens: res.OutputTokens,
		CostUSD:      llm.EstimateCost(res.Model, res.InputTokens, res.OutputTokens),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printAskText(subject string, res oracle.Result, art string) {
	if art != "" {
		fmt.Println(art)
		fmt.Println()
	}
	fmt.Printf("%s\n\n", subject)
	fmt.Println(res.Answer.Explanation)
	fmt.Println()
	fmt.Println(res.Answer.Suggestion)

	if len(res.Answer.Links) > 0 {
		fmt.Println("\nResources:")
		for _, l := range res.Answer.Links {
			fmt.Printf("  %s\n    %s\n", l.Title, l.URL)
		}
	}

	stats := fmt.Sprintf("\nanswered in %.1fs", res.Elapsed.Seconds())
	if res.Model != "" {
		stats += " by " + res.Model
	}
	if res.InputTokens > 0 || res.OutputTokens > 0 {
		stats += fmt.Sprintf(" (%d in / %d out tokens", res.InputTokens, res.OutputTokens)
		if cost := llm.EstimateCost(res.Model, res.InputTokens, res.OutputTokens); cost > 0 {
			stats += fmt.Sprintf(", ~$%.4f", cost)
		}
		stats += ")"
	}
	fmt.Fprintln(os.Stderr, stats)
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the result as JSON")
	askCmd.Flags().BoolVar(&askRandom, "random", false, "explore a random starter topic")
	askCmd.Flags().BoolVar(&askNoArt, "no-art", false, "skip the ASCII art request")
	rootCmd.AddCommand(askCmd)
}
