package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strconv"

	"github.com/npillmayer/sbixtract/extract"
	"github.com/npillmayer/sbixtract/glyphname"
	"github.com/npillmayer/sbixtract/sbix"
	"github.com/pterm/pterm"
	_ "golang.org/x/image/tiff"
)

// number of glyphs listed for a strike
const listLength = 16

func strikesOp(intp *Intp, args []string) (bool, error) {
	data := [][]string{
		{"PPEM", "Resolution", "Glyphs", "Dupes"},
	}
	for _, strike := range intp.table.Strikes {
		dupes := 0
		for _, g := range strike.Glyphs {
			if g.IsDupe() {
				dupes++
			}
		}
		data = append(data, []string{
			strconv.Itoa(int(strike.PPEM)),
			strconv.Itoa(int(strike.Resolution)),
			strconv.Itoa(len(strike.Glyphs)),
			strconv.Itoa(dupes),
		})
	}
	return false, intp.render(data)
}

func strikeOp(intp *Intp, args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("strike: %w (ppem)", ErrNoArg)
	}
	ppem, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		return false, fmt.Errorf("strike: PPEM not a number in 0…65535: %v", args[0])
	}
	strike, ok := intp.table.StrikeFor(uint16(ppem))
	if !ok {
		return false, fmt.Errorf("no strike with PPEM %d", ppem)
	}
	intp.strike = strike
	tracer().Infof("selected strike %d", ppem)
	fmt.Fprintf(intp.out, "strike %d has %d glyphs\n", strike.PPEM, len(strike.Glyphs))
	data := [][]string{
		{"GID", "Name", "Type", "Bytes"},
	}
	for i, g := range strike.Glyphs {
		if i == listLength {
			break
		}
		size := strconv.Itoa(len(g.Data))
		if g.IsDupe() {
			size = "-> " + g.Ref
		}
		data = append(data, []string{strconv.Itoa(g.ID), g.Name, g.GraphicType.String(), size})
	}
	return false, intp.render(data)
}

func glyphOp(intp *Intp, args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("glyph: %w (glyph name)", ErrNoArg)
	}
	g, strike, ok := intp.findGlyph(args[0])
	if !ok {
		return false, fmt.Errorf("glyph %s not found", args[0])
	}
	fmt.Fprintf(intp.out, "glyph %d %q in strike %d: type %q\n", g.ID, g.Name, strike.PPEM, g.GraphicType.String())
	if g.IsDupe() {
		fmt.Fprintf(intp.out, "duplicate of %s\n", g.Ref)
		if ref, ok := strike.Glyph(g.Ref); ok {
			g.Data = ref.Data
		}
	}
	d := glyphname.Decode(g.Name)
	name, source := extract.Name(intp.names, d)
	printDecoded(intp, d, name, source)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(g.Data))
	if err != nil {
		return false, fmt.Errorf("cannot decode bitmap of %s: %w", g.Name, err)
	}
	fmt.Fprintf(intp.out, "bitmap:   %s %dx%d, %d bytes\n", format, cfg.Width, cfg.Height, len(g.Data))
	fmt.Fprintf(intp.out, "path:     %s\n", path.Join(fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), d.FileName(name)))
	return false, nil
}

func nameOp(intp *Intp, args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("name: %w (code points)", ErrNoArg)
	}
	d := glyphname.Parse(args...)
	if d.Sequence == "" {
		return false, fmt.Errorf("no code points found in %v", args)
	}
	name, source := extract.Name(intp.names, d)
	printDecoded(intp, d, name, source)
	return false, nil
}

func printDecoded(intp *Intp, d glyphname.Decoded, name, source string) {
	fmt.Fprintf(intp.out, "sequence: %s (%s)\n", d.Sequence, d.Escaped())
	fmt.Fprintf(intp.out, "name:     %s [%s]\n", name, source)
	if d.Modifiers.SkinTone != "" || d.Modifiers.Gender != "" {
		fmt.Fprintf(intp.out, "suffix:   skin tone %q, gender %q\n", d.Modifiers.SkinTone, d.Modifiers.Gender)
	}
	fmt.Fprintf(intp.out, "file:     %s\n", d.FileName(name))
}

// findGlyph looks for a glyph in the current strike, or else in the first
// strike containing it.
func (intp *Intp) findGlyph(name string) (sbix.Glyph, *sbix.Strike, bool) {
	if intp.strike != nil {
		g, ok := intp.strike.Glyph(name)
		return g, intp.strike, ok
	}
	for i := range intp.table.Strikes {
		if g, ok := intp.table.Strikes[i].Glyph(name); ok {
			return g, &intp.table.Strikes[i], true
		}
	}
	return sbix.Glyph{}, nil, false
}

func (intp *Intp) render(data [][]string) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(intp.out, s)
	return nil
}
