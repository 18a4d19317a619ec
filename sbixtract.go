/*
Package sbixtract extracts the bitmaps of color emoji fonts to PNG files.

Apple Color Emoji stores its glyphs as PNG bitmaps in an 'sbix' table, in a
number of sizes ("strikes"). Glyph names encode the emoji sequence a glyph
stands for, but are not very telling for humans. This module writes every
bitmap to a file named after Apple's own emoji names, found in the property
list AppleName.strings of the CoreEmoji framework.

Extraction works in steps, each of which has its own package:

▪︎ sbix: locating the sbix table in a font (collection) and decoding it

▪︎ sbixml: dumping the table to an intermediate XML file, which is re-used by
later runs, and reading it back

▪︎ glyphname: decoding glyph names into emoji sequences, skin tones and genders

▪︎ applename: looking up names for emoji sequences

▪︎ extract: the extraction run, writing "<out>/<width>x<height>/<name>.png"

Binaries are sbix-tools, a command line tool for extraction, and sbixcli, an
interactive inspector for emoji fonts.

# Links

sbix table explained:
https://learn.microsoft.com/en-us/typography/opentype/spec/sbix

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sbixtract

import (
	"github.com/npillmayer/sbixtract/extract"
	"github.com/npillmayer/sbixtract/internal/config"
)

// DefaultOptions returns the options for extracting all sizes of the system's
// Apple Color Emoji font on macOS to directory "images".
func DefaultOptions() extract.Options {
	return extract.Options{
		Font:      config.DefaultFont,
		FontIndex: 1,
		Names:     config.DefaultNames,
		XMLDir:    ".",
		OutDir:    "images",
	}
}

// Extract writes the bitmaps of a font to PNG files. Empty file locations of
// opts are replaced by those of DefaultOptions.
func Extract(opts extract.Options) (*extract.Report, error) {
	def := DefaultOptions()
	if opts.Font == "" {
		opts.Font, opts.FontIndex = def.Font, def.FontIndex
	}
	if opts.Names == "" {
		opts.Names = def.Names
	}
	if opts.OutDir == "" {
		opts.OutDir = def.OutDir
	}
	return extract.Run(opts)
}
