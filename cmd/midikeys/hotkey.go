package main

import (
	"context"
	"fmt"
	"time"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/spf13/cobra"
)

var hotkeyTimeout time.Duration

var hotkeyCmd = &cobra.Command{
	Use:   "hotkey",
	Short: "Press a key and print the name to use for it in a profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := newTranslator(logger.NewZapLogger())
		if err != nil {
			return err
		}
		defer shutdown(t, nil)

		fmt.Fprintln(cmd.OutOrStdout(), "Press a key...")
		ctx, cancel := context.WithTimeout(cmd.Context(), hotkeyTimeout)
		defer cancel()
		key, err := t.ReadHotkey(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}

func init() {
	hotkeyCmd.Flags().DurationVar(&hotkeyTimeout, "timeout", 10*time.Second, "Give up after this long")
}
