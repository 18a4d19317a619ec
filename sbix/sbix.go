package sbix

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sbixtract.sbix'
func tracer() tracing.Trace {
	return tracing.Select("sbixtract.sbix")
}

var (
	// ErrNoSbixTable is returned if the selected font does not contain an sbix table.
	ErrNoSbixTable = errors.New("sbix: font has no sbix table")
	// ErrFontIndex is returned if a collection does not contain the requested font.
	ErrFontIndex = errors.New("sbix: font index out of range")
	// ErrNoMaxp is returned if the number of glyphs cannot be determined.
	ErrNoMaxp = errors.New("sbix: cannot read glyph count from maxp")
)

// Table is the decoded sbix table of a font.
type Table struct {
	Version   uint16
	Flags     uint16
	Strikes   []Strike
	Font      string // full name of the font, if available
	Index     int    // position of the font within the font file
	Fonts     int    // number of fonts in the font file
	NumGlyphs int    // from table 'maxp'
	warnings  []FontWarning
	errors    []FontError
}

// Strike holds the bitmaps for a single resolution tier.
// Glyphs are ordered by glyph ID; glyphs without bitmap data are omitted.
type Strike struct {
	PPEM       uint16
	Resolution uint16 // device pixel density in PPI
	Glyphs     []Glyph
}

// Glyph is a bitmap record of a strike.
type Glyph struct {
	ID            int
	Name          string
	GraphicType   Tag
	OriginOffsetX int16
	OriginOffsetY int16
	Data          []byte
	Ref           string // name of the referenced glyph for graphic type 'dupe'
}

// Graphic types of sbix glyph records.
var (
	GraphicPNG  = T("png ")
	GraphicJPEG = T("jpg ")
	GraphicTIFF = T("tiff")
	GraphicDupe = T("dupe")
)

// IsDupe is true if this glyph references the bitmap of another glyph.
func (g Glyph) IsDupe() bool {
	return g.GraphicType == GraphicDupe
}

func (g Glyph) String() string {
	if g.IsDupe() {
		return fmt.Sprintf("glyph[%d] %q -> %q", g.ID, g.Name, g.Ref)
	}
	return fmt.Sprintf("glyph[%d] %q %q (%d bytes)", g.ID, g.Name, g.GraphicType, len(g.Data))
}

// StrikeFor returns the strike for a given PPEM, if present.
func (t *Table) StrikeFor(ppem uint16) (*Strike, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Strikes {
		if t.Strikes[i].PPEM == ppem {
			return &t.Strikes[i], true
		}
	}
	return nil, false
}

// Glyph looks up a glyph by name within the strike for ppem.
func (t *Table) Glyph(name string, ppem uint16) (Glyph, bool) {
	strike, ok := t.StrikeFor(ppem)
	if !ok {
		return Glyph{}, false
	}
	return strike.Glyph(name)
}

// Glyph looks up a glyph by name.
func (s *Strike) Glyph(name string) (Glyph, bool) {
	for _, g := range s.Glyphs {
		if g.Name == name {
			return g, true
		}
	}
	return Glyph{}, false
}

// Errors returns all errors encountered while decoding the table.
// Errors are problems with single glyph records; they did not stop decoding.
func (t *Table) Errors() []FontError {
	if t.errors == nil {
		return []FontError{}
	}
	return t.errors
}

// Warnings returns all warnings encountered while decoding the table.
func (t *Table) Warnings() []FontWarning {
	if t.warnings == nil {
		return []FontWarning{}
	}
	return t.warnings
}

// --- Tag -------------------------------------------------------------------

// Tag is an array of four uint8s, used to identify a table or a graphic type.
type Tag uint32

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}
