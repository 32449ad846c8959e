package main

import (
	"os"

	"hireable-backend/cmd/hireable/commands"
	"hireable-backend/pkg/logger"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hireable",
	Short: "Hireable - candidate directory from the terminal",
	Long: `Hireable - browse candidates and manage your profile from the terminal.

Settings come from --config (or ./hireable.yaml), HIREABLE_* environment
variables and flags. Keys: api_url, token, locale, email.

Available commands:
  browse  - Browse the candidate directory
  onboard - Create your candidate profile
  export  - Download the directory as xlsx or csv (recruiters)
  stats   - Show directory statistics

Examples:
  hireable browse --location Dubai --pages 2
  HIREABLE_TOKEN=... hireable onboard --draft draft.yaml --resume cv.pdf --picture me.jpg`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		logger.InitTo(os.Stderr, level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&commands.ConfigFile, "config", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(commands.BrowseCmd)
	rootCmd.AddCommand(commands.OnboardCmd)
	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.StatsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
