package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/stats"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		sum := stats.Compute(env.results.LoadAll(cmd.Context()))
		if sum.Quizzes == 0 {
			fmt.Println("No quizzes yet.")
			return nil
		}

		fmt.Printf("Quizzes:     %d\n", sum.Quizzes)
		fmt.Printf("Questions:   %d (%d correct)\n", sum.Questions, sum.Correct)
		fmt.Printf("Average:     %d%%\n", sum.AveragePercent)
		fmt.Printf("Best:        %d%%\n", sum.BestPercent)
		fmt.Printf("Time spent:  %s\n", layout.FormatDuration(sum.TotalTime))
		fmt.Printf("Last played: %s\n", sum.LastPlayed.Local().Format("2006-01-02 15:04"))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nMODE\tQUIZZES\tAVERAGE")
		for _, m := range sum.Modes {
			label := m.Mode
			if mode, err := session.ParseMode(m.Mode); err == nil {
				label = mode.Label()
			}
			fmt.Fprintf(w, "%s\t%d\t%d%%\n", label, m.Quizzes, m.AveragePercent)
		}
		fmt.Fprintln(w, "\nSET\tQUIZZES\tBEST\tLAST")
		for _, s := range sum.Sets {
			fmt.Fprintf(w, "%s\t%d\t%d%%\t%d%%\n", s.SetName, s.Quizzes, s.BestPercent, s.LastPercent)
		}
		return w.Flush()
	},
}
