package sbixml

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/sbixtract/internal/sbixtest"
	"github.com/npillmayer/sbixtract/sbix"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteParseRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.xml")
	defer teardown()
	//
	table, err := sbix.Parse(sbixtest.Emoji().Bytes(), 0)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<root>\n  <version value=\"1\"/>\n"))
	assert.Contains(t, out, `<flags value="00000000 00000001"/>`)
	assert.Contains(t, out, `<ref glyphname="u1F600"/>`)
	//
	doc, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, "00000000 00000001", doc.Flags)
	require.Len(t, doc.Strikes, 2)
	assert.Equal(t, 40, doc.Strikes[1].PPEM)
	assert.Equal(t, 72, doc.Strikes[1].Resolution)
	assert.Equal(t, len(table.Strikes[0].Glyphs), len(doc.Strikes[0].Glyphs))
	//
	for i, strike := range table.Strikes {
		for _, g := range strike.Glyphs {
			xg, ok := doc.Strikes[i].Glyph(g.Name)
			require.True(t, ok, "glyph %s missing in XML", g.Name)
			assert.Equal(t, g.GraphicType.String(), xg.GraphicType)
			if g.IsDupe() {
				assert.Equal(t, g.Ref, xg.Ref)
				_, err := xg.Data()
				assert.True(t, errors.Is(err, ErrNoHexData))
				continue
			}
			data, err := xg.Data()
			require.NoError(t, err)
			assert.Equal(t, g.Data, data, "bitmap of %s differs after round trip", g.Name)
		}
	}
}

func TestHexdumpFormat(t *testing.T) {
	var buf bytes.Buffer
	xw := &xmlWriter{w: bufio.NewWriter(&buf)}
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	xw.hexdump(data)
	xw.w.Flush()
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "00010203 04050607 08090a0b 0c0d0e0f", lines[0])
	assert.Equal(t, "10111213", lines[1])
}

func TestEscapedAttributes(t *testing.T) {
	table := &sbix.Table{Version: 1, Strikes: []sbix.Strike{{
		PPEM: 20, Resolution: 72,
		Glyphs: []sbix.Glyph{{ID: 1, Name: `a"<b>&`, GraphicType: sbix.GraphicPNG, Data: []byte{1}}},
	}}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table))
	doc, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, `a"<b>&`, doc.Strikes[0].Glyphs[0].Name)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader(`<root><strike><ppem value="x"/></strike></root>`))
	assert.Error(t, err)
	_, err = Parse(strings.NewReader(`<font/>`))
	assert.Error(t, err)
}

func TestXMLPathFor(t *testing.T) {
	p := XMLPathFor("/System/Library/Fonts/Apple Color Emoji.ttc", "/tmp/out")
	assert.Equal(t, "/tmp/out/Apple Color Emoji.ttc.xml", p)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "x.ttf.xml"), XMLPathFor("fonts/x.ttf", ""))
}

func TestDumpIsCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.xml")
	defer teardown()
	//
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "Emoji.ttc")
	require.NoError(t, os.WriteFile(fontPath, sbixtest.Collection(sbixtest.Font{Names: []string{".notdef"}},
		sbixtest.Emoji()), 0o644))
	xmlPath := XMLPathFor(fontPath, dir)
	//
	path, written, err := Dump(fontPath, 1, xmlPath, false)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, xmlPath, path)
	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Strikes, 2)
	//
	require.NoError(t, os.WriteFile(xmlPath, []byte("<root/>"), 0o644))
	_, written, err = Dump(fontPath, 1, xmlPath, false)
	require.NoError(t, err)
	assert.False(t, written, "expected existing XML file to be re-used")
	doc, err = ParseFile(xmlPath)
	require.NoError(t, err)
	assert.Empty(t, doc.Strikes)
	//
	_, written, err = Dump(fontPath, 1, xmlPath, true)
	require.NoError(t, err)
	assert.True(t, written, "expected XML file to be refreshed")
	_, err = os.Stat(xmlPath + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDumpMissingFont(t *testing.T) {
	dir := t.TempDir()
	_, written, err := Dump(filepath.Join(dir, "none.ttc"), 1, filepath.Join(dir, "none.xml"), false)
	assert.Error(t, err)
	assert.False(t, written)
}
