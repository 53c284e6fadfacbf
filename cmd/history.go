package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathspace/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished missions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		answers, _ := cmd.Flags().GetBool("answers")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		missions, err := repo.QueryMissions(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query missions: %w", err)
		}
		if len(missions) == 0 {
			fmt.Println("No missions yet.")
			return nil
		}

		fmt.Printf("%-16s  %-16s  %-8s  %7s  %6s  %6s\n", "Date", "Category", "Level", "Correct", "Score", "Time")
		fmt.Println(strings.Repeat("─", 70))
		for _, m := range missions {
			fmt.Printf("%-16s  %-16s  %-8s  %3d/%-3d  %6d  %6s\n",
				m.Timestamp.Local().Format("2006-01-02 15:04"),
				m.Category, m.Difficulty, m.Correct, m.Answered, m.Score,
				formatDuration(m.DurationSecs))

			if !answers {
				continue
			}
			rows, err := repo.QueryAnswers(ctx, m.SessionID)
			if err != nil {
				return fmt.Errorf("query answers: %w", err)
			}
			for _, a := range rows {
				mark := "✓"
				if !a.Correct {
					mark = "✗"
				}
				fmt.Printf("    %s %s  %s\n", mark, a.Question, a.GivenAnswer)
			}
		}
		return nil
	},
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of missions to show")
	historyCmd.Flags().BoolP("answers", "a", false, "Show every answer of each mission")
}
