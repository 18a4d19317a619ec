package main

import (
	"fmt"

	"github.com/npillmayer/sbixtract/applename"
	"github.com/npillmayer/sbixtract/extract"
	"github.com/npillmayer/sbixtract/glyphname"
	"github.com/npillmayer/sbixtract/internal/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newNameCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name <code points...>",
		Short: "Look up the name and file name of an emoji",
		Long: `Name decodes an emoji sequence given as code points (U+1F600, 1f600) or as
a glyph name (u1F9D1_u1F4BB.0.W) and prints its name and output file name.`,
		Example: "  sbix-tools name U+1F3C3 U+1F3FB\n  sbix-tools name u1F46B.5.B",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := applename.Load(a.cfg.Names)
			if err != nil {
				pterm.Warning.Printf("no emoji names loaded: %v\n", err)
			}
			d := glyphname.Parse(args...)
			if d.Sequence == "" {
				return fmt.Errorf("no code points found in %q", args)
			}
			name, source := extract.Name(names, d)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sequence: %s (%s)\n", d.Sequence, d.Escaped())
			fmt.Fprintf(out, "name:     %s [%s]\n", name, source)
			if d.Modifiers.SkinTone != "" {
				fmt.Fprintf(out, "skin:     %s\n", d.Modifiers.SkinTone)
			}
			if d.Modifiers.Gender != "" {
				fmt.Fprintf(out, "gender:   %s\n", d.Modifiers.Gender)
			}
			fmt.Fprintf(out, "file:     %s\n", d.FileName(name))
			return nil
		},
	}
	cmd.Flags().String("names", config.DefaultNames, "property list with emoji names")
	return cmd
}
