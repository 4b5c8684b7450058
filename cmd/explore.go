package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"topictrail/internal/explorer"
	"topictrail/internal/progress"
	"topictrail/internal/textspan"
	"topictrail/internal/topic"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [topic]",
	Short: "Start an interactive exploration session",
	Long: `Opens an interactive session. Type a topic to explore it, then keep
typing topics (any word from an answer works) to follow your curiosity.

Session commands:
  /back      go back on the trail
  /forward   go forward on the trail
  /random    explore a random starter topic
  /trail     show the visited topics
  /quit      leave the session`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		provider, err := buildProvider(cfg)
		if err != nil {
			return err
		}

		exp := explorer.New(buildOracle(cfg, provider))
		views := make(chan explorer.View, 64)
		exp.OnChange(func(v explorer.View) { views <- v })

		session := &exploreSession{exp: exp, views: views}

		if initial := topic.Normalize(strings.Join(args, " ")); initial != "" {
			session.run(func(ctx context.Context) bool {
				return exp.Submit(ctx, initial)
			}, msgSameTopic)
		}

		return session.loop()
	},
}

// exploreSession drives the prompt loop for one terminal session.
type exploreSession struct {
	exp   *explorer.Explorer
	views chan explorer.View
}

func (s *exploreSession) loop() error {
	for {
		prompt := promptui.Prompt{Label: "topic"}
		input, err := prompt.Run()
		if err != nil {
			// Interrupt or EOF ends the session.
			fmt.Println("Happy trails!")
			return nil
		}

		input = strings.TrimSpace(input)
		switch strings.ToLower(input) {
		case "":
			continue
		case "/quit", "/exit", "/q":
			fmt.Println("Happy trails!")
			return nil
		case "/back", "/b":
			s.run(func(ctx context.Context) bool { return s.exp.Back(ctx) }, msgTrailEnd)
		case "/forward", "/f":
			s.run(func(ctx context.Context) bool { return s.exp.Forward(ctx) }, msgTrailEnd)
		case "/random", "/r":
			s.run(func(ctx context.Context) bool {
				_, started := s.exp.Random(ctx)
				return started
			}, msgSameTopic)
		case "/trail", "/t":
			s.printTrail()
		default:
			if strings.HasPrefix(input, "/") {
				fmt.Printf("Unknown command %s. Try /back, /forward, /random, /trail, /quit.\n", input)
				continue
			}
			s.run(func(ctx context.Context) bool { return s.exp.Submit(ctx, input) }, msgSameTopic)
		}
	}
}

const (
	msgTrailEnd  = "Nothing there; the trail ends here."
	msgSameTopic = "Already exploring this topic."
)

// run executes a navigation and waits for its view to settle. When nav
// reports that nothing started, idleMsg is printed instead of waiting,
// since no view update will arrive.
func (s *exploreSession) run(nav func(context.Context) bool, idleMsg string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	drain(s.views)
	if !nav(ctx) {
		fmt.Println(idleMsg)
		return
	}

	waiter := progress.NewWaiter()
	waiter.Start("Exploring")
	v, ok := s.await(ctx)
	waiter.Stop()

	if !ok {
		fmt.Fprintln(os.Stderr, "Timed out waiting for an answer.")
		return
	}
	printView(v)
}

// await reads view updates until one is fully settled.
func (s *exploreSession) await(ctx context.Context) (explorer.View, bool) {
	for {
		select {
		case v := <-s.views:
			if !v.Loading && !v.ArtPending {
				return v, true
			}
		case <-ctx.Done():
			return explorer.View{}, false
		}
	}
}

func (s *exploreSession) printTrail() {
	v := s.exp.View()
	if len(v.Trail) == 0 {
		fmt.Println("The trail is empty.")
		return
	}
	for i, t := range v.Trail {
		marker := "  "
		if i == v.Cursor {
			marker = "> "
		}
		fmt.Printf("%s%d. %s\n", marker, i+1, t)
	}
}

func drain(ch chan explorer.View) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func printView(v explorer.View) {
	fmt.Println()
	if v.Art != "" {
		fmt.Println(v.Art)
		fmt.Println()
	}
	fmt.Printf("%s\n\n", v.Topic)

	if v.Error != "" {
		fmt.Printf("Fetch failed: %s\nType the topic again to retry.\n", v.Error)
		return
	}

	fmt.Println(textspan.Flatten(v.Explanation))
	fmt.Println()
	fmt.Println(textspan.Flatten(v.Suggestion))

	if len(v.Links) > 0 {
		fmt.Println("\nResources:")
		for _, l := range v.Links {
			fmt.Printf("  %s\n    %s\n", l.Title, l.URL)
		}
	}

	var nav []string
	if v.CanBack {
		nav = append(nav, "/back")
	}
	if v.CanForward {
		nav = append(nav, "/forward")
	}
	if len(nav) > 0 {
		fmt.Fprintf(os.Stderr, "\n(%s available)\n", strings.Join(nav, ", "))
	}
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
