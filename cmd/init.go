package cmd

import (
	"github.com/spf13/cobra"

	"topictrail/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize topictrail with an interactive wizard",
	Long:  `Runs an interactive wizard to choose a provider and quality tier, and writes a .topictrail.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
