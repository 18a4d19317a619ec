/*
Package sbixml reads and writes the intermediate XML form of an sbix table.

The XML form follows the TTX dump format of fontTools for table 'sbix', wrapped
into a <root> element. Bitmaps are contained as hex data, 'dupe' glyphs carry a
reference to the glyph whose bitmap they re-use:

	<root>
	  <version value="1"/>
	  <flags value="00000000 00000001"/>
	  <strike>
	    <ppem value="160"/>
	    <resolution value="72"/>
	    <glyph graphicType="png " name="u1F600" originOffsetX="0" originOffsetY="0">
	      <hexdata>
	        89504e47 0d0a1a0a 0000000d 49484452
	        …
	      </hexdata>
	    </glyph>
	    <glyph graphicType="dupe" name="u1F3C3.0.M" originOffsetX="0" originOffsetY="0">
	      <ref glyphname="u1F3C3.M"/>
	    </glyph>
	  </strike>
	</root>

Serializing a large emoji font takes a while and produces a file of a few hundred
megabytes, therefore Dump will not overwrite an existing XML file unless asked to.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sbixml

import (
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sbixtract.xml'
func tracer() tracing.Trace {
	return tracing.Select("sbixtract.xml")
}

// ErrNoHexData is returned for glyphs without embedded bitmap data.
var ErrNoHexData = errors.New("sbixml: glyph has no hexdata")

// Document is the parsed XML form of an sbix table.
type Document struct {
	Version int
	Flags   string // binary digits, as written by fontTools
	Strikes []Strike
}

// Strike is a strike element of the XML form.
type Strike struct {
	PPEM       int
	Resolution int
	Glyphs     []Glyph
}

// Glyph is a glyph element of the XML form.
type Glyph struct {
	Name          string
	GraphicType   string
	OriginOffsetX int
	OriginOffsetY int
	HexData       string // as contained in the XML, including whitespace
	Ref           string // glyph name, for graphic type 'dupe'
}

// Data decodes the glyph's hex data.
func (g Glyph) Data() ([]byte, error) {
	h := strings.Join(strings.Fields(g.HexData), "")
	if h == "" {
		return nil, ErrNoHexData
	}
	data, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("sbixml: glyph %s: %w", g.Name, err)
	}
	return data, nil
}

// HasData is true if the glyph carries hex data.
func (g Glyph) HasData() bool {
	return strings.TrimSpace(g.HexData) != ""
}

// Glyph finds a glyph by name.
func (s Strike) Glyph(name string) (Glyph, bool) {
	for _, g := range s.Glyphs {
		if g.Name == name {
			return g, true
		}
	}
	return Glyph{}, false
}

// GlyphCount returns the total number of glyph elements over all strikes.
func (doc *Document) GlyphCount() int {
	n := 0
	for _, s := range doc.Strikes {
		n += len(s.Glyphs)
	}
	return n
}

// --- Parsing ---------------------------------------------------------------

// ParseFile parses an XML file as written by Dump.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse reads the XML form of an sbix table.
func Parse(r io.Reader) (*Document, error) {
	var root xmlRoot
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("sbixml: %w", err)
	}
	doc := &Document{Flags: root.Flags.Value}
	if root.Version.Value != "" {
		v, err := root.Version.Int()
		if err != nil {
			return nil, fmt.Errorf("sbixml: invalid version: %w", err)
		}
		doc.Version = v
	}
	for i, st := range root.Strikes {
		ppem, err := st.PPEM.Int()
		if err != nil {
			return nil, fmt.Errorf("sbixml: strike #%d: invalid ppem: %w", i, err)
		}
		resolution, err := st.Resolution.Int()
		if err != nil {
			return nil, fmt.Errorf("sbixml: strike #%d: invalid resolution: %w", i, err)
		}
		strike := Strike{
			PPEM:       ppem,
			Resolution: resolution,
			Glyphs:     make([]Glyph, 0, len(st.Glyphs)),
		}
		for _, g := range st.Glyphs {
			glyph := Glyph{
				Name:          g.Name,
				GraphicType:   g.GraphicType,
				OriginOffsetX: g.OriginOffsetX,
				OriginOffsetY: g.OriginOffsetY,
			}
			if g.HexData != nil {
				glyph.HexData = *g.HexData
			}
			if g.Ref != nil {
				glyph.Ref = g.Ref.GlyphName
			}
			strike.Glyphs = append(strike.Glyphs, glyph)
		}
		doc.Strikes = append(doc.Strikes, strike)
	}
	tracer().Debugf("parsed sbix XML: %d strikes, %d glyphs", len(doc.Strikes), doc.GlyphCount())
	return doc, nil
}

type xmlRoot struct {
	XMLName xml.Name    `xml:"root"`
	Version xmlValue    `xml:"version"`
	Flags   xmlValue    `xml:"flags"`
	Strikes []xmlStrike `xml:"strike"`
}

type xmlStrike struct {
	PPEM       xmlValue   `xml:"ppem"`
	Resolution xmlValue   `xml:"resolution"`
	Glyphs     []xmlGlyph `xml:"glyph"`
}

type xmlGlyph struct {
	Name          string  `xml:"name,attr"`
	GraphicType   string  `xml:"graphicType,attr"`
	OriginOffsetX int     `xml:"originOffsetX,attr"`
	OriginOffsetY int     `xml:"originOffsetY,attr"`
	HexData       *string `xml:"hexdata"`
	Ref           *xmlRef `xml:"ref"`
}

type xmlRef struct {
	GlyphName string `xml:"glyphname,attr"`
}

type xmlValue struct {
	Value string `xml:"value,attr"`
}

func (v xmlValue) Int() (int, error) {
	if v.Value == "" {
		return 0, fmt.Errorf("missing value")
	}
	if strings.HasPrefix(v.Value, "0x") || strings.HasPrefix(v.Value, "0X") {
		n, err := strconv.ParseInt(v.Value[2:], 16, 32)
		return int(n), err
	}
	return strconv.Atoi(v.Value)
}
