package cmd

import (
	"github.com/spf13/cobra"
)

const app = "interview-sim"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "interview-sim: AI interview simulator backend",
	// без подкоманды запускается сервер
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// Execute запускает корневую команду
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, interviewCmd, sessionsCmd, aiLogCmd)
}
