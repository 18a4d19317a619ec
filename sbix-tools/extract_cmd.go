package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/sbixtract/extract"
	"github.com/npillmayer/sbixtract/internal/config"
	"github.com/npillmayer/sbixtract/sbixml"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract emoji bitmaps to PNG files",
		Long: fmt.Sprintf(`Extract writes every bitmap of the font's sbix table to
"<out>/<width>x<height>/<name>.png". Names are taken from Apple's emoji name
table, falling back to emoji shortcodes and finally to glyph names.

Valid sizes are %v.`, extract.ValidSizes),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd)
		},
	}
	fontFlags(cmd)
	cmd.Flags().String("names", config.DefaultNames, "property list with emoji names")
	cmd.Flags().IntSliceP("sizes", "s", nil, "sizes to extract (repeatable), default all")
	cmd.Flags().StringP("out", "o", "images", "output directory")
	cmd.Flags().String("xml-dir", ".", "directory for the intermediate XML file")
	cmd.Flags().Bool("refresh", false, "re-create the XML file even if it exists")
	cmd.Flags().Bool("dupes", false, "write files for duplicate glyphs as well")
	cmd.Flags().Bool("dry-run", false, "do not write images")
	cmd.Flags().String("report", "", "write a YAML report to this file")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command) error {
	opts := a.cfg.Options()
	if err := extract.CheckSizes(opts.Sizes); err != nil {
		return err
	}
	if path := sbixml.XMLPathFor(opts.Font, opts.XMLDir); !opts.Refresh {
		if _, err := os.Stat(path); err == nil {
			pterm.Info.Printf("re-using %s\n", path)
		}
	}
	report, err := extract.Run(opts)
	if err != nil {
		return err
	}
	verb := "saved"
	if opts.DryRun {
		verb = "would save"
	}
	pterm.Success.Printf("%s %d images in %d directories, skipped %d\n",
		verb, len(report.Saved), len(report.Dirs), report.Skipped)
	if report.Failed > 0 {
		pterm.Warning.Printf("%d glyphs could not be extracted\n", report.Failed)
	}
	if len(report.Unnamed) > 0 {
		pterm.Warning.Printf("%d glyphs without a name, saved under their glyph name\n", len(report.Unnamed))
	}
	if a.cfg.Report != "" {
		if err := writeReport(report, a.cfg.Report); err != nil {
			return err
		}
		pterm.Info.Printf("report written to %s\n", a.cfg.Report)
	}
	return nil
}

func writeReport(report *extract.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create report: %w", err)
	}
	if err := report.WriteYAML(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write report: %w", err)
	}
	return f.Close()
}
