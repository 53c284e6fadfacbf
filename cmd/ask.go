package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask Professor Robot a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetString("save")
		noVoice, _ := cmd.Flags().GetBool("no-voice")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if e.tutor == nil {
			return errors.New("Professor Robot needs an LLM provider; set MATHSPACE_LLM_PROVIDER and an API key")
		}

		ctx := cmd.Context()
		ans, err := e.tutor.Explain(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(ans.Text)

		if ans.Fallback || (noVoice && save == "") {
			return nil
		}
		if !e.tutor.SpeechEnabled() {
			warn("speech is not available for this provider")
			return nil
		}
		return speakAnswer(cmd, e.tutor, e.pipelineFor(save, noVoice), ans.Text, save)
	},
}

// pipelineFor picks the output: a WAV file when save is set, otherwise the
// speaker.
func (e *env) pipelineFor(save string, noVoice bool) *audio.Pipeline {
	switch {
	case save != "":
		return e.pipeline(audio.WAVPlayer{Path: save})
	case noVoice:
		return e.pipeline(audio.NopPlayer{})
	}
	return e.pipeline(audio.NewSpeakerPlayer(audio.SpeechFormat))
}

func speakAnswer(cmd *cobra.Command, t *tutor.Service, p *audio.Pipeline, text, save string) error {
	ctx := cmd.Context()
	payload := t.Speak(ctx, text)
	if payload == "" {
		warn("no speech was produced")
		return nil
	}
	buf, err := p.Prepare(payload)
	if err != nil {
		warn("speech payload unusable: %v", err)
		return nil
	}
	if !p.Speak(ctx, payload) {
		warn("speech playback failed; see the log file")
		return nil
	}
	if save != "" {
		fmt.Printf("Saved %.1fs of speech to %s\n", buf.Duration(), save)
		return nil
	}

	// The speaker plays in the background; keep the process alive until
	// the buffer drains.
	wait := time.Duration(buf.Duration()*float64(time.Second)) + 200*time.Millisecond
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
	return nil
}

func init() {
	askCmd.Flags().String("save", "", "Write the spoken answer to this WAV file instead of playing it")
	askCmd.Flags().Bool("no-voice", false, "Print the answer without speaking it")
}
