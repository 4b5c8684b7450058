package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"topictrail/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "topictrail",
	Short: "AI-powered interactive topic explorer",
	Long: `topictrail turns any topic into a starting point: ask about something
and get an explanation, a suggested next angle, and resource links.
Every word is a door to the next topic, with browser-style back and
forward over your trail. Runs in the terminal, as an HTTP server with
a web UI, or as an MCP server for AI agents.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// API keys are commonly kept in a local .env file.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
