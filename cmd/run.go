package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathspace/internal/app"
	"github.com/abhisek/mathspace/internal/quiz"
)

// runApp opens the environment and launches the TUI. opts.Deps is filled
// in here; a zero opts.Quiz means mission defaults.
func runApp(cmd *cobra.Command, opts app.Options) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := opts.Quiz
	if cfg.Count <= 0 {
		cfg.Count = quiz.DefaultConfig().Count
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = quiz.DefaultConfig().Difficulty
	}
	opts.Deps = e.homeDeps(cfg)
	return app.Run(cmd.Context(), opts)
}
