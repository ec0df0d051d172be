package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var runFlags struct {
	profile    string
	device     string
	file       string
	speed      float64
	window     string
	noGate     bool
	jitter     bool
	noFallback bool
	transpose  int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Translate live input and/or play a MIDI file",
	Long: `Run translates notes into keystrokes until interrupted.

With --device, notes from that MIDI input are translated live. With --file,
the file is played once; the play/pause and stop hotkeys control it.`,
	RunE: runTranslator,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.profile, "profile", "p", "", "Profile to load (default: built-in map or a linked profile)")
	f.StringVarP(&runFlags.device, "device", "d", "", "MIDI input device name for live translation")
	f.StringVarP(&runFlags.file, "file", "f", "", "MIDI file to play")
	f.Float64VarP(&runFlags.speed, "speed", "s", 1.0,
		fmt.Sprintf("Playback speed multiplier (%.2f-%.1f)", contracts.MinSpeed, contracts.MaxSpeed))
	f.StringVarP(&runFlags.window, "window", "w", "", "Only send keys while this window title is focused")
	f.BoolVar(&runFlags.noGate, "no-gate", false, "Send keys regardless of the focused window")
	f.BoolVar(&runFlags.jitter, "jitter", false, "Add a small random delay before each key press")
	f.BoolVar(&runFlags.noFallback, "no-fallback", false, "Ignore notes without a mapping instead of using the nearest octave")
	f.IntVarP(&runFlags.transpose, "transpose", "t", 0, "Initial transpose in semitones")
}

func runConfig() (contracts.Config, error) {
	if runFlags.speed < contracts.MinSpeed || runFlags.speed > contracts.MaxSpeed {
		return contracts.Config{}, fmt.Errorf("--speed must be between %.2f and %.1f, got %v",
			contracts.MinSpeed, contracts.MaxSpeed, runFlags.speed)
	}
	cfg := contracts.DefaultConfig()
	cfg.Speed = runFlags.speed
	cfg.TargetTitle = runFlags.window
	cfg.GateEnabled = !runFlags.noGate
	cfg.Jitter = runFlags.jitter
	cfg.Fallback = !runFlags.noFallback
	return cfg, nil
}

func runTranslator(cmd *cobra.Command, _ []string) error {
	if runFlags.device == "" && runFlags.file == "" {
		return errors.New("nothing to do: pass --device, --file or both")
	}
	cfg, err := runConfig()
	if err != nil {
		return err
	}

	opts := []contracts.TranslatorOption{contracts.WithConfig(cfg)}
	if runFlags.profile != "" {
		opts = append(opts, contracts.WithProfile(runFlags.profile))
	}
	log := logger.NewZapLogger()
	t, err := newTranslator(log, append(opts, contracts.WithStatusListener(&logListener{log: log}))...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runFlags.profile == "" {
		if match, ok, err := t.AutoSelectProfile(); err != nil {
			log.Warn("Linked profile lookup failed", log.Field().Error("error", err))
		} else if ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q selected for window %q\n", match.Metadata.Name, match.Metadata.LinkedWindow)
		}
	}
	if runFlags.transpose != 0 {
		t.SetTranspose(runFlags.transpose)
	}
	if err := t.StartHotkeys(); err != nil {
		log.Warn("Global hotkeys unavailable", log.Field().Error("error", err))
	}

	if runFlags.device != "" {
		if err := t.StartLive(runFlags.device); err != nil {
			return shutdown(t, err)
		}
	}
	if runFlags.file != "" {
		if err := t.PlayFile(runFlags.file); err != nil {
			return shutdown(t, err)
		}
	}

	_, meta := t.Profile()
	fmt.Fprintf(cmd.OutOrStdout(), "Running with profile %q (%s play/pause, %s stop). Press Ctrl+C to exit.\n",
		meta.Name, meta.Hotkeys.PlayPause, meta.Hotkeys.Stop)

	if runFlags.device == "" {
		if err := t.WaitFile(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return shutdown(t, err)
		}
	} else {
		<-ctx.Done()
	}
	return shutdown(t, nil)
}

func shutdown(t interface {
	Close(context.Context) error
}, cause error) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := t.Close(ctx); err != nil && cause == nil {
		return err
	}
	return cause
}

// logListener reports session changes through the logger.
type logListener struct {
	log contracts.Logger
}

func (l *logListener) OnStatus(s contracts.Status) {
	l.log.Info("Status", l.log.Field().String("state", s.State.String()), l.log.Field().String("detail", s.Detail))
}

func (l *logListener) OnNote(name string, active bool) {
	if active {
		l.log.Debug("Note", l.log.Field().String("note", name))
	}
}
