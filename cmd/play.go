package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathspace/internal/app"
	"github.com/abhisek/mathspace/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a mission right away",
	Long:  "Start a mission without the launch splash. Without --category the home menu opens with the given defaults.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := playOptions(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, opts)
	},
}

func playOptions(cmd *cobra.Command) (app.Options, error) {
	var opts app.Options
	catFlag, _ := cmd.Flags().GetString("category")
	diffFlag, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	if catFlag != "" {
		c, err := quiz.ParseCategory(catFlag)
		if err != nil {
			return opts, err
		}
		opts.Category = c
	}
	d, err := quiz.ParseDifficulty(diffFlag)
	if err != nil {
		return opts, err
	}
	if count < 1 {
		return opts, fmt.Errorf("--count must be at least 1, got %d", count)
	}
	opts.Quiz = quiz.Config{Count: count, Difficulty: d}
	return opts, nil
}

func init() {
	def := quiz.DefaultConfig()
	playCmd.Flags().StringP("category", "c", "", "Mission category (Addition, Subtraction, Multiplication, Division, Geometry, Logic)")
	playCmd.Flags().StringP("difficulty", "d", string(def.Difficulty), "Difficulty (Easy, Medium, Hard)")
	playCmd.Flags().IntP("count", "n", def.Count, "Problems per mission")
}
