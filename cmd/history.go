package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/results"
	"github.com/abhisek/flashquiz/internal/session"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if _, ok := env.users.UserID(cmd.Context()); !ok {
			fmt.Println("Not signed in. Run `flashquiz login` to keep a history.")
			return nil
		}

		records := env.results.LoadAll(cmd.Context())
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		newest := make([]results.Record, 0, len(records))
		for i := len(records) - 1; i >= 0 && (limit <= 0 || len(newest) < limit); i-- {
			newest = append(newest, records[i])
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(newest)
		}

		if len(newest) == 0 {
			fmt.Println("No quizzes yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSET\tMODE\tSCORE\tTIME")
		for _, r := range newest {
			mode := r.Mode
			if m, err := session.ParseMode(r.Mode); err == nil {
				mode = m.Label()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d (%d%%)\t%s\n",
				r.CompletedAt.Local().Format("2006-01-02 15:04"),
				r.SetName, mode,
				r.CorrectAnswers, r.TotalQuestions, r.Percentage(),
				r.Duration(),
			)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of quizzes to list (0 for all)")
	historyCmd.Flags().Bool("json", false, "Print records as JSON")
}
