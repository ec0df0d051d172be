package main

import (
	"fmt"
	"os"

	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/leandrodaf/midikeys/sdk/keybind"
	"github.com/spf13/cobra"
)

var global struct {
	logLevel    string
	logFile     string
	profilesDir string
}

var rootCmd = &cobra.Command{
	Use:   "midikeys",
	Short: "Play keyboard-driven instruments from a MIDI keyboard or file",
	Long: `midikeys turns MIDI notes into keystrokes sent to the focused window.

Notes come from a live MIDI input device or from a Standard MIDI File, are
mapped to keys through a JSON profile, and are only sent while the target
window has focus.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&global.logFile, "log-file", "",
		"Write logs to this file instead of the console")
	rootCmd.PersistentFlags().StringVar(&global.profilesDir, "profiles-dir", ".",
		"Directory scanned for profiles linked to open windows")

	rootCmd.AddCommand(runCmd, devicesCmd, windowsCmd, profileCmd, hotkeyCmd)
}

// newTranslator builds a translator logging to log, configured from the global flags plus opts.
func newTranslator(log contracts.Logger, opts ...contracts.TranslatorOption) (*keybind.Translator, error) {
	base := []contracts.TranslatorOption{
		contracts.WithTranslatorLogger(log),
		contracts.WithTranslatorLogLevel(contracts.ParseLogLevel(global.logLevel)),
		contracts.WithProfilesDir(global.profilesDir),
	}
	if global.logFile != "" {
		base = append(base, contracts.WithTranslatorLogFile(global.logFile))
	}
	return keybind.NewTranslator(append(base, opts...)...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
