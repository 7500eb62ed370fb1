package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "medication-alarm",
	Short: "Daily medication reminders with escalating follow-ups.",
	Long: `Runs the medication alarm service.

Without a subcommand the HTTP server is started. Configuration is read from
built-in defaults, an optional YAML file and the environment, in that order.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML configuration file (defaults to $CONFIG_FILE)")

	rootCmd.AddCommand(
		serveCmd,
		snoozeCmd,
		nextTriggerCmd,
		historyCmd,
		&cobra.Command{
			Use:   "version",
			Short: "Print version information.",
			Run: func(cmd *cobra.Command, _ []string) {
				cmd.Println(Version)
			},
		},
	)
}
