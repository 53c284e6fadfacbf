package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/llm"
	"github.com/abhisek/mathspace/internal/logging"
	"github.com/abhisek/mathspace/internal/problemgen"
	"github.com/abhisek/mathspace/internal/progress"
	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/screens/home"
	"github.com/abhisek/mathspace/internal/store"
	"github.com/abhisek/mathspace/internal/tutor"
)

// env is everything a command needs to run missions and the tutor.
type env struct {
	store    *store.Store
	logger   *slog.Logger
	progress *progress.Service
	journal  *progress.Journal

	// Nil when no LLM provider is configured.
	source *problemgen.LLMSource
	tutor  *tutor.Service

	logFile io.Closer
}

// openEnv opens the store, configures file logging next to it and builds
// the services. A missing LLM provider is reported as a warning; the
// game still runs offline.
func openEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	e := &env{}
	if err := e.setupLogging(dbPath); err != nil {
		warn("%v", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st

	events := st.EventRepo()
	e.progress, err = progress.NewService(ctx, st.SnapshotRepo(), events)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load progress: %w", err)
	}
	e.journal = progress.NewJournal(events, e.progress)

	providers, err := llm.NewProvidersFromEnv(ctx, events)
	if err != nil {
		warn("LLM provider not configured: %v", err)
		warn("missions and Professor Robot will be unavailable")
		return e, nil
	}
	if providers.SpeechErr != nil {
		slog.Info("speech disabled", "reason", providers.SpeechErr)
	}

	lang := language()
	genCfg := problemgen.DefaultConfig()
	genCfg.Language = lang
	e.source = problemgen.New(providers.Text, genCfg)

	tutorCfg := tutor.DefaultConfig()
	tutorCfg.Language = lang
	e.tutor = tutor.NewService(providers.Text, providers.Speech, events, tutorCfg)

	slog.Info("providers ready",
		"text", providers.Text.ModelID(), "speech", providers.Config.SpeechProviderName(), "language", lang)
	return e, nil
}

func (e *env) setupLogging(dbPath string) error {
	e.logger = logging.Discard()
	slog.SetDefault(e.logger)

	level, err := logging.ParseLevel(os.Getenv("MATHSPACE_LOG"))
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(logging.PathFor(dbPath), level)
	if err != nil {
		return err
	}
	e.logger, e.logFile = logger, closer
	slog.SetDefault(logger)
	return nil
}

// language reads MATHSPACE_LANGUAGE, defaulting to English.
func language() string {
	if l := strings.TrimSpace(os.Getenv("MATHSPACE_LANGUAGE")); l != "" {
		return l
	}
	return "English"
}

// quizSource returns the problem source as an interface value that is nil
// when offline.
func (e *env) quizSource() quiz.Source {
	if e.source == nil {
		return nil
	}
	return e.source
}

// pipeline returns an audio pipeline sending speech to player.
func (e *env) pipeline(player audio.Player) *audio.Pipeline {
	return audio.NewPipeline(player, e.logger)
}

// homeDeps wires the services into the TUI.
func (e *env) homeDeps(cfg quiz.Config) home.Deps {
	return home.Deps{
		Source:   e.quizSource(),
		Quiz:     cfg,
		Tutor:    e.tutor,
		Progress: e.progress,
		Journal:  e.journal,
		Missions: e.store.EventRepo(),
		Pipeline: e.pipeline(audio.NewSpeakerPlayer(audio.SpeechFormat)),
	}
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}
