package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/npillmayer/sbixtract/sbix"
	"github.com/npillmayer/sbixtract/sbixml"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the sbix table of a font to XML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xmlPath := sbixml.XMLPathFor(a.cfg.Font, a.cfg.XMLDir)
			path, written, err := sbixml.Dump(a.cfg.Font, a.cfg.Index, xmlPath, a.cfg.Refresh)
			if err != nil {
				return err
			}
			if written {
				pterm.Success.Printf("wrote %s\n", path)
			} else {
				pterm.Info.Printf("%s already exists, use --refresh to re-create it\n", path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	fontFlags(cmd)
	cmd.Flags().String("xml-dir", ".", "directory for the XML file")
	cmd.Flags().Bool("refresh", false, "re-create the XML file even if it exists")
	return cmd
}

func newStrikesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strikes",
		Short: "List the bitmap strikes of a font",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := sbix.Load(a.cfg.Font, a.cfg.Index)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Font: %s (%d of %d)\n", table.Font, table.Index, table.Fonts)
			fmt.Fprintf(cmd.OutOrStdout(), "Glyphs: %d\n", table.NumGlyphs)
			s, err := pterm.DefaultTable.WithHasHeader().WithData(strikeTable(table)).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			errs, warns := table.Errors(), table.Warnings()
			fmt.Fprintf(cmd.OutOrStdout(), "Issues: errors=%d warnings=%d\n", len(errs), len(warns))
			for _, e := range errs {
				pterm.Error.Println(e.Error())
			}
			for _, w := range warns {
				pterm.Warning.Println(w.String())
			}
			return nil
		},
	}
	fontFlags(cmd)
	return cmd
}

// strikeTable lists strikes with their glyph counts per graphic type.
func strikeTable(table *sbix.Table) [][]string {
	types := make(map[sbix.Tag]bool)
	for _, strike := range table.Strikes {
		for _, g := range strike.Glyphs {
			types[g.GraphicType] = true
		}
	}
	tags := make([]sbix.Tag, 0, len(types))
	for tag := range types {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	header := []string{"PPEM", "PPI", "Glyphs"}
	for _, tag := range tags {
		header = append(header, strconv.Quote(tag.String()))
	}
	data := [][]string{header}
	for _, strike := range table.Strikes {
		count := make(map[sbix.Tag]int)
		for _, g := range strike.Glyphs {
			count[g.GraphicType]++
		}
		row := []string{
			strconv.Itoa(int(strike.PPEM)),
			strconv.Itoa(int(strike.Resolution)),
			strconv.Itoa(len(strike.Glyphs)),
		}
		for _, tag := range tags {
			row = append(row, strconv.Itoa(count[tag]))
		}
		data = append(data, row)
	}
	return data
}
