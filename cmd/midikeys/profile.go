package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/internal/platform"
	"github.com/leandrodaf/midikeys/internal/profile"
	"github.com/spf13/cobra"
)

var profileFlags struct {
	name string
	link string
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create and inspect key-map profiles",
}

var profileInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a profile holding the default 88-key map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := profile.NewStore(logger.NewZapLogger())
		meta := profile.DefaultMetadata(args[0])
		if profileFlags.name != "" {
			meta.Name = profileFlags.name
		}
		meta.LinkedWindow = profileFlags.link
		if err := store.Save(args[0], keymap.Default(), meta); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%q)\n", args[0], meta.Name)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print a profile's metadata and mappings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		km, meta := profile.NewStore(logger.NewZapLogger()).Load(args[0])

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:           %s\n", meta.Name)
		fmt.Fprintf(out, "Linked window:  %s\n", meta.LinkedWindow)
		fmt.Fprintf(out, "Hotkeys:        play/pause=%s stop=%s transpose=%s/%s\n\n",
			meta.Hotkeys.PlayPause, meta.Hotkeys.Stop, meta.Hotkeys.TransposeUp, meta.Hotkeys.TransposeDown)

		notes := make([]int, 0, len(km))
		for n := range km {
			notes = append(notes, n)
		}
		sort.Ints(notes)

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NOTE\tNAME\tKEYS")
		for _, n := range notes {
			b := km[n]
			mark := ""
			if err := platform.ValidateKeys(b.Keys()...); err != nil {
				mark = "\t(unknown key)"
			}
			fmt.Fprintf(w, "%d\t%s\t%s%s\n", n, keymap.NoteName(n), b, mark)
		}
		return w.Flush()
	},
}

func init() {
	profileInitCmd.Flags().StringVar(&profileFlags.name, "name", "", "Display name (default: derived from the file name)")
	profileInitCmd.Flags().StringVar(&profileFlags.link, "link", "", "Window title substring that auto-selects this profile")
	profileCmd.AddCommand(profileInitCmd, profileShowCmd)
}
