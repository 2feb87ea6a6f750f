package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the signed-in user's quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if all, _ := cmd.Flags().GetBool("all"); all {
			return resetAll(cmd, env)
		}

		userID, ok := env.users.UserID(cmd.Context())
		if !ok {
			fmt.Println("Not signed in; there is no history to reset.")
			return nil
		}

		if !confirmReset(cmd, fmt.Sprintf("Delete all quiz history for %s?", userID)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if !env.results.Clear(cmd.Context()) {
			return fmt.Errorf("could not clear history; see the log file for details")
		}
		env.logger.Info("history cleared", "user", userID)
		fmt.Println("History cleared.")
		return nil
	},
}

func resetAll(cmd *cobra.Command, env *appEnv) error {
	if !confirmReset(cmd, "Delete quiz history for every user on this device?") {
		fmt.Println("Cancelled.")
		return nil
	}
	removed, ok := env.results.ClearAll(cmd.Context())
	if !ok {
		return fmt.Errorf("could not clear all history; see the log file for details")
	}
	fmt.Printf("History cleared for %d list(s).\n", removed)
	return nil
}

func confirmReset(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	fmt.Printf("%s [y/N] ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	a := strings.ToLower(strings.TrimSpace(line))
	return a == "y" || a == "yes"
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	resetCmd.Flags().Bool("all", false, "Delete history for every user on this device")
}
