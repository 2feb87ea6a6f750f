package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/identity"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token for the backend",
	Long: "Store a bearer token issued by the backend. The user object is taken from --user " +
		"or derived from the token's claims. The token is not verified locally.",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		userJSON, _ := cmd.Flags().GetString("user")

		if token == "" {
			fmt.Print("Token: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.users.SignIn(cmd.Context(), token, userJSON); err != nil {
			if errors.Is(err, identity.ErrNoToken) {
				return fmt.Errorf("no token given")
			}
			return err
		}

		userID, _ := env.users.UserID(cmd.Context())
		env.logger.Info("signed in", "user", userID)
		fmt.Printf("Signed in as %s.\n", userID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token and user",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.users.SignOut(cmd.Context()); err != nil {
			return err
		}
		env.logger.Info("signed out")
		fmt.Println("Signed out. Quiz history stays on this device.")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("token", "", "Bearer token (prompted for when omitted)")
	loginCmd.Flags().String("user", "", "User object as JSON, e.g. '{\"id\":\"42\"}'")
}
