/*
Package extract writes the bitmaps of an emoji font to PNG files, named after
Apple's emoji name table.

Extraction is a single pass over the intermediate XML form of the font's sbix
table (see package sbixml):

▪︎ the emoji name table is loaded (see package applename)

▪︎ the sbix table is serialized to XML, unless the XML file already exists

▪︎ every glyph of every strike is decoded, filtered by size and named

▪︎ images are written to "<out>/<width>x<height>/<name>.png"

Glyphs without an Apple name are named from the emoji shortcode table, or else
after the glyph itself.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/npillmayer/sbixtract/applename"
	"github.com/npillmayer/sbixtract/glyphname"
	"github.com/npillmayer/sbixtract/sbixml"
	"github.com/npillmayer/schuko/tracing"
	"go.yaml.in/yaml/v3"
	_ "golang.org/x/image/tiff"
)

// tracer writes to trace with key 'sbixtract.extract'
func tracer() tracing.Trace {
	return tracing.Select("sbixtract.extract")
}

// ValidSizes are the bitmap sizes of Apple Color Emoji, in pixels.
var ValidSizes = []int{20, 26, 32, 40, 48, 52, 64, 96, 160}

// ErrInvalidSize is returned for sizes not contained in ValidSizes.
var ErrInvalidSize = errors.New("extract: invalid size")

// CheckSizes returns an error if any of sizes is not a valid size.
func CheckSizes(sizes []int) error {
	for _, s := range sizes {
		if !slices.Contains(ValidSizes, s) {
			return fmt.Errorf("%w %d, choose from %v", ErrInvalidSize, s, ValidSizes)
		}
	}
	return nil
}

// Options control an extraction run.
type Options struct {
	Font      string // font file, usually a collection
	FontIndex int    // font position within a collection
	Names     string // property list with emoji names
	XMLDir    string // directory of the intermediate XML file, defaults to working dir
	OutDir    string // root of the output directories
	Sizes     []int  // sizes to extract, empty for all
	Refresh   bool   // re-create the XML file, even if it exists
	Dupes     bool   // write images for 'dupe' glyphs as well
	DryRun    bool   // do not write anything but the XML file
}

// Report summarizes an extraction run.
type Report struct {
	XMLPath    string   `yaml:"xml"`
	XMLWritten bool     `yaml:"xml_written"`
	Saved      []Saved  `yaml:"saved"`
	Skipped    int      `yaml:"skipped"`
	Failed     int      `yaml:"failed"`
	Unnamed    []string `yaml:"unnamed,omitempty"`
	Dirs       []string `yaml:"dirs"`
}

// Saved is an image written during an extraction run.
type Saved struct {
	Path   string `yaml:"path"`
	Glyph  string `yaml:"glyph"`
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// WriteYAML writes the report in YAML format.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// Run performs an extraction run.
func Run(opts Options) (*Report, error) {
	if err := CheckSizes(opts.Sizes); err != nil {
		return nil, err
	}
	names, err := applename.Load(opts.Names)
	if err != nil {
		tracer().Errorf("cannot load emoji names, falling back to shortcodes: %v", err)
	}
	report := &Report{}
	xmlPath := sbixml.XMLPathFor(opts.Font, opts.XMLDir)
	report.XMLPath, report.XMLWritten, err = sbixml.Dump(opts.Font, opts.FontIndex, xmlPath, opts.Refresh)
	if err != nil {
		return report, err
	}
	doc, err := sbixml.ParseFile(report.XMLPath)
	if err != nil {
		return report, err
	}
	x := extractor{
		opts:    opts,
		names:   names,
		report:  report,
		dirs:    make(map[string]bool),
		unnamed: make(map[string]bool),
	}
	for _, strike := range doc.Strikes {
		tracer().Debugf("strike %d ppem: %d glyphs", strike.PPEM, len(strike.Glyphs))
		for _, g := range strike.Glyphs {
			x.glyph(strike, g)
		}
	}
	tracer().Infof("saved %d images, skipped %d, failed %d", len(report.Saved), report.Skipped, report.Failed)
	return report, nil
}

type extractor struct {
	opts    Options
	names   *applename.Names
	report  *Report
	dirs    map[string]bool
	unnamed map[string]bool
}

func (x *extractor) glyph(strike sbixml.Strike, g sbixml.Glyph) {
	if !g.HasData() {
		if g.Ref == "" || !x.opts.Dupes {
			x.report.Skipped++
			return
		}
		ref, ok := strike.Glyph(g.Ref)
		if !ok || !ref.HasData() {
			tracer().Errorf("glyph %s references %s, which has no bitmap", g.Name, g.Ref)
			x.report.Failed++
			return
		}
		g.HexData = ref.HexData
	}
	data, err := g.Data()
	if err != nil {
		tracer().Errorf("glyph %s: %v", g.Name, err)
		x.report.Failed++
		return
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		tracer().Errorf("glyph %s: cannot decode bitmap: %v", g.Name, err)
		x.report.Failed++
		return
	}
	if len(x.opts.Sizes) > 0 && !slices.Contains(x.opts.Sizes, cfg.Width) &&
		!slices.Contains(x.opts.Sizes, cfg.Height) {
		x.report.Skipped++
		return
	}
	d := glyphname.Decode(g.Name)
	name := x.name(d)
	dir := filepath.Join(x.opts.OutDir, fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	if err := x.mkdir(dir); err != nil {
		tracer().Errorf("cannot create directory %s: %v", dir, err)
		x.report.Failed++
		return
	}
	path := filepath.Join(dir, d.FileName(name))
	if !x.opts.DryRun {
		if err := writePNG(path, data, format); err != nil {
			tracer().Errorf("glyph %s: %v", g.Name, err)
			x.report.Failed++
			return
		}
	}
	tracer().Infof("saved %s", path)
	x.report.Saved = append(x.report.Saved, Saved{
		Path:   path,
		Glyph:  g.Name,
		Name:   name,
		Width:  cfg.Width,
		Height: cfg.Height,
	})
}

// Sources of display names.
const (
	FromAppleNames = "apple"
	FromShortcode  = "shortcode"
	FromGlyphName  = "glyph"
)

// Name finds a display name for a decoded glyph name: the Apple name, else
// the name of the emoji shortcode, else the glyph name itself. The second
// return value tells which source was used. names may be nil.
func Name(names *applename.Names, d glyphname.Decoded) (string, string) {
	if d.Sequence != "" {
		if name, ok := names.Lookup(d.Sequence); ok {
			return name, FromAppleNames
		}
		if name, ok := applename.ShortcodeName(d.Sequence); ok {
			return name, FromShortcode
		}
	}
	return d.Glyph, FromGlyphName
}

func (x *extractor) name(d glyphname.Decoded) string {
	name, source := Name(x.names, d)
	switch source {
	case FromShortcode:
		tracer().Debugf("no Apple name for %s, using shortcode name %q", d.Glyph, name)
	case FromGlyphName:
		if !x.unnamed[d.Glyph] {
			x.unnamed[d.Glyph] = true
			x.report.Unnamed = append(x.report.Unnamed, d.Glyph)
			tracer().Infof("no name found for %s (%s), it will be saved as %s; try https://graphemica.com/%s",
				d.Sequence, d.Escaped(), d.FileName(d.Glyph), d.Sequence)
		}
	}
	return name
}

func (x *extractor) mkdir(dir string) error {
	if x.dirs[dir] {
		return nil
	}
	if !x.opts.DryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	x.dirs[dir] = true
	x.report.Dirs = append(x.report.Dirs, dir)
	return nil
}

// writePNG writes bitmap data to a PNG file. PNG data is written as-is, other
// formats are re-encoded.
func writePNG(path string, data []byte, format string) error {
	if format == "png" {
		return os.WriteFile(path, data, 0o644)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot decode %s bitmap: %w", format, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
