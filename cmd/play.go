package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play <setID>",
	Short: "Start a quiz on a set, skipping the set picker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}

// runApp opens the environment and launches the TUI.
func runApp(cmd *cobra.Command, setID string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	env.logger.Info("starting", "version", version, "set", setID)
	return app.Run(app.Options{
		Deps:         env.deps(),
		UserLabel:    env.userLabel(cmd.Context()),
		InitialSetID: setID,
	})
}
