package sbixml

import (
	"bufio"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/sbixtract/sbix"
)

const (
	hexLineLength  = 16 // bytes of hex data per line
	hexGroupLength = 4  // bytes per blank-separated group
	indentUnit     = "  "
)

// XMLPathFor returns the path of the XML file for a font file: the font's base
// name with suffix ".xml", located in dir. If dir is empty, the current working
// directory is used.
func XMLPathFor(fontPath, dir string) string {
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	return filepath.Join(dir, filepath.Base(fontPath)+".xml")
}

// Dump serializes the sbix table of a font to xmlPath. If xmlPath already exists,
// nothing is written unless refresh is set. Dump returns the path of the XML file
// and a flag telling if the file has been (re-)written.
func Dump(fontPath string, index int, xmlPath string, refresh bool) (string, bool, error) {
	if _, err := os.Stat(xmlPath); err == nil && !refresh {
		tracer().Infof("%s already exists, not extracting", xmlPath)
		return xmlPath, false, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return xmlPath, false, err
	}
	table, err := sbix.Load(fontPath, index)
	if err != nil {
		return xmlPath, false, err
	}
	tracer().Infof("extracting sbix table to file %s", xmlPath)
	// write to a temporary file first, an interrupted run must not leave
	// a truncated file which would be picked up by the next run
	tmp := xmlPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return xmlPath, false, err
	}
	err = Write(f, table)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return xmlPath, false, err
	}
	if err = os.Rename(tmp, xmlPath); err != nil {
		os.Remove(tmp)
		return xmlPath, false, err
	}
	return xmlPath, true, nil
}

// Write serializes an sbix table in XML form.
func Write(w io.Writer, t *sbix.Table) error {
	xw := &xmlWriter{w: bufio.NewWriter(w)}
	xw.begin("root")
	xw.simple("version", "value", fmt.Sprint(t.Version))
	xw.simple("flags", "value", binaryString(t.Flags))
	for _, strike := range t.Strikes {
		xw.begin("strike")
		xw.simple("ppem", "value", fmt.Sprint(strike.PPEM))
		xw.simple("resolution", "value", fmt.Sprint(strike.Resolution))
		for _, g := range strike.Glyphs {
			writeGlyph(xw, g)
		}
		xw.end("strike")
	}
	xw.end("root")
	if xw.err != nil {
		return xw.err
	}
	return xw.w.Flush()
}

func writeGlyph(xw *xmlWriter, g sbix.Glyph) {
	xw.begin("glyph",
		"graphicType", g.GraphicType.String(),
		"name", g.Name,
		"originOffsetX", fmt.Sprint(g.OriginOffsetX),
		"originOffsetY", fmt.Sprint(g.OriginOffsetY))
	if g.IsDupe() {
		xw.simple("ref", "glyphname", g.Ref)
	} else {
		xw.begin("hexdata")
		xw.hexdump(g.Data)
		xw.end("hexdata")
	}
	xw.end("glyph")
}

// binaryString formats flags as fontTools does, in groups of 8 bits.
func binaryString(flags uint16) string {
	return fmt.Sprintf("%08b %08b", flags>>8, flags&0xff)
}

// xmlWriter writes indented XML. The first write error is kept and
// all subsequent writes are skipped.
type xmlWriter struct {
	w     *bufio.Writer
	depth int
	err   error
}

func (xw *xmlWriter) line(s string) {
	if xw.err != nil {
		return
	}
	_, xw.err = fmt.Fprintf(xw.w, "%s%s\n", strings.Repeat(indentUnit, xw.depth), s)
}

func (xw *xmlWriter) tag(name string, attrs []string, closed bool) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		b.WriteString(" ")
		b.WriteString(attrs[i])
		b.WriteString(`="`)
		xml.EscapeText(&b, []byte(attrs[i+1]))
		b.WriteString(`"`)
	}
	if closed {
		b.WriteString("/")
	}
	b.WriteString(">")
	return b.String()
}

func (xw *xmlWriter) begin(name string, attrs ...string) {
	xw.line(xw.tag(name, attrs, false))
	xw.depth++
}

func (xw *xmlWriter) end(name string) {
	xw.depth--
	xw.line("</" + name + ">")
}

func (xw *xmlWriter) simple(name string, attrs ...string) {
	xw.line(xw.tag(name, attrs, true))
}

func (xw *xmlWriter) hexdump(data []byte) {
	for i := 0; i < len(data); i += hexLineLength {
		chunk := data[i:min(i+hexLineLength, len(data))]
		groups := make([]string, 0, hexLineLength/hexGroupLength)
		for j := 0; j < len(chunk); j += hexGroupLength {
			groups = append(groups, hex.EncodeToString(chunk[j:min(j+hexGroupLength, len(chunk))]))
		}
		xw.line(strings.Join(groups, " "))
	}
}
