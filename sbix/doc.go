/*
Package sbix reads the "sbix" (standard bitmap graphics) table of a color font.

The sbix table is Apple's way of embedding bitmaps into a font. It consists of
a list of strikes, one per resolution tier, and every strike carries one bitmap
record per glyph:

▪︎ a strike is identified by its PPEM (pixels per em) and the device resolution
in PPI it was designed for

▪︎ a glyph record holds an origin offset, a graphic type tag ('png ', 'jpg ',
'tiff' or the special tag 'dupe') and the embedded graphic data

▪︎ 'dupe' records do not contain image data, but the glyph ID of another glyph
whose bitmap should be used instead

Package sbix does not decode or render bitmaps. It exposes the table in a form
suitable for serialization and lets clients decide what to do with the data.

Font decoding is done with github.com/go-text/typesetting, which handles single
fonts as well as font collections (*.ttc). Apple Color Emoji ships as a collection;
the font holding the sbix table is the second one, therefore clients will usually
ask for index 1.

Glyph names are taken from the font's 'post' table. If a glyph has no name there,
it is named after its cmap code point, in the way fontTools does it ("uniXXXX" or
"uXXXXX"), and finally "glyphNNNNN".

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sbix
