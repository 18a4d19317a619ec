package fontload

import (
	"os"

	"golang.org/x/image/font/sfnt"
)

// ScalableFont is a font file's raw bytes, together with the full name of one
// of the fonts it contains.
type ScalableFont struct {
	Fontname string // empty if the font is not accepted by x/image
	Filepath string
	Binary   []byte
}

// LoadFont loads a font file, which may be a collection (TTC), and selects the
// font at position index.
func LoadFont(fontfile string, index int) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f := ParseFont(bytez, index)
	f.Filepath = fontfile
	return f, nil
}

// ParseFont wraps font data from memory.
//
// x/image/font/sfnt is stricter than the table decoder used for bitmaps, as it
// requires the tables needed for rasterizing outlines. If it rejects the font,
// the name of the font is left empty. Validating the font data is left to
// the table decoder.
func ParseFont(fbytes []byte, index int) *ScalableFont {
	f := &ScalableFont{Binary: fbytes}
	coll, err := sfnt.ParseCollection(fbytes)
	if err != nil || index < 0 || index >= coll.NumFonts() {
		return f
	}
	font, err := coll.Font(index)
	if err != nil {
		return f
	}
	f.Fontname, _ = font.Name(nil, sfnt.NameIDFull)
	return f
}
