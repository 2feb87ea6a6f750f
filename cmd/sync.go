package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/decksource"
)

var syncDecksCmd = &cobra.Command{
	Use:   "sync-decks [git-url]",
	Short: "Clone or update the offline deck directory from a git repository",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		url := env.cfg.Decks.GitURL
		if len(args) == 1 {
			url = args[0]
		}
		if url == "" {
			return fmt.Errorf("no repository given: pass a URL or set decks.git_url")
		}
		dir, err := env.cfg.DecksDir()
		if err != nil {
			return fmt.Errorf("resolve deck directory: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		res, err := decksource.GitSync(ctx, url, dir, env.logger)
		if err != nil {
			return err
		}

		sets, err := decksource.NewDir(dir).ListSets(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Decks %s: %d sets in %s\n", res, len(sets), dir)
		return nil
	},
}
