package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List MIDI input devices",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := newTranslator(logger.NewZapLogger())
		if err != nil {
			return err
		}
		defer shutdown(t, nil)

		devices, err := t.Devices()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No MIDI input devices found.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMANUFACTURER\tENTITY")
		for _, d := range devices {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Manufacturer, d.EntityName)
		}
		return w.Flush()
	},
}

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List visible window titles usable with --window",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := newTranslator(logger.NewZapLogger())
		if err != nil {
			return err
		}
		defer shutdown(t, nil)

		titles, err := t.Windows()
		if err != nil {
			return err
		}
		for _, title := range titles {
			fmt.Fprintln(cmd.OutOrStdout(), title)
		}
		return nil
	},
}
