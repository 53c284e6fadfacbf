package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathspace/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show points, level, badges and per-category results",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		svc, err := progress.NewService(ctx, s.SnapshotRepo(), s.EventRepo())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		st := svc.Stats()

		fmt.Printf("Level:     %d\n", st.Level)
		fmt.Printf("Points:    %d\n", st.Points)
		fmt.Printf("Missions:  %d (%d perfect)\n", st.Missions, st.PerfectMissions)
		fmt.Printf("Problems:  %d\n", st.CompletedProblems)

		badges := st.BadgeList()
		fmt.Println()
		if len(badges) == 0 {
			fmt.Println("No badges yet. Finish a mission to earn one!")
		} else {
			fmt.Println("Badges")
			fmt.Println(strings.Repeat("─", 48))
			for _, b := range badges {
				fmt.Printf("%-30s  %s\n", b.Name, b.EarnedAt.Local().Format("2006-01-02 15:04"))
			}
		}

		cats, err := s.EventRepo().CategoryStats(ctx)
		if err != nil {
			return fmt.Errorf("query category stats: %w", err)
		}
		if len(cats) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Printf("%-16s  %8s  %8s  %8s  %8s\n", "Category", "Answered", "Correct", "Accuracy", "Points")
		fmt.Println(strings.Repeat("─", 56))
		for _, c := range cats {
			fmt.Printf("%-16s  %8d  %8d  %7.0f%%  %8d\n",
				c.Category, c.Answered, c.Correct, c.Accuracy()*100, c.Points)
		}
		return nil
	},
}
