package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve missions and Professor Robot over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("allow-origin")
		count, _ := cmd.Flags().GetInt("count")
		if count > server.MaxCount {
			return fmt.Errorf("--count must be at most %d", server.MaxCount)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cfg := quiz.DefaultConfig()
		if count > 0 {
			cfg.Count = count
		}
		srv := server.New(server.Options{
			Source:       e.quizSource(),
			Tutor:        e.tutor,
			Progress:     e.progress,
			Journal:      e.journal,
			Quiz:         cfg,
			AllowOrigins: origins,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		cmd.Printf("Mathspace API listening on %s\n", addr)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("allow-origin", nil, "Allowed CORS origin (repeatable; default any)")
	serveCmd.Flags().IntP("count", "n", quiz.DefaultConfig().Count, "Problems per mission")
}
