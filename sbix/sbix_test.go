package sbix

import (
	"errors"
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/sbixtract/internal/sbixtest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	tag := Tag(0x73626978)
	if tag.String() != "sbix" {
		t.Errorf("expected tag 0x73626978 to be 'sbix', is %s", tag.String())
	}
	if T("png") != GraphicPNG {
		t.Errorf("expected T(png) to be extended to 'png ', is %q", T("png"))
	}
	if T("dupes").String() != "dupe" {
		t.Errorf("expected T(dupes) to be cut to 'dupe', is %q", T("dupes"))
	}
}

func TestParseSingleFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	table, err := Parse(sbixtest.Emoji().Bytes(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), table.Version)
	assert.Equal(t, uint16(1), table.Flags)
	assert.Equal(t, 8, table.NumGlyphs)
	require.Len(t, table.Strikes, 2)
	assert.Equal(t, uint16(20), table.Strikes[0].PPEM)
	assert.Equal(t, uint16(40), table.Strikes[1].PPEM)
	assert.Equal(t, uint16(72), table.Strikes[1].Resolution)
	// .notdef has no bitmap
	assert.Len(t, table.Strikes[0].Glyphs, 7)
	assert.Empty(t, table.Errors())
	//
	g, ok := table.Glyph("u1F44D.3", 40)
	require.True(t, ok, "expected glyph u1F44D.3 in strike 40")
	assert.Equal(t, 2, g.ID)
	assert.Equal(t, GraphicPNG, g.GraphicType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, g.Data[:4])
}

func TestParseSingleFontIgnoresIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	table, err := Parse(sbixtest.Emoji().Bytes(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, table.Warnings())
	assert.Equal(t, T("ttcf"), table.Warnings()[0].Table)
	assert.Equal(t, 0, table.Index)
	assert.Equal(t, 1, table.Fonts)
}

func TestParseCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	first := sbixtest.Font{
		Names: []string{".notdef", "u1F600"},
		Strikes: []sbixtest.Strike{
			{PPEM: 32, PPI: 72, Glyphs: map[int]sbixtest.Bitmap{1: sbixtest.PNG(32, 32)}},
		},
	}
	data := sbixtest.Collection(first, sbixtest.Emoji())
	table, err := Parse(data, 1)
	require.NoError(t, err)
	require.Len(t, table.Strikes, 2)
	assert.Equal(t, 8, table.NumGlyphs)
	assert.Equal(t, 1, table.Index)
	assert.Equal(t, 2, table.Fonts)
	//
	table, err = Parse(data, 0)
	require.NoError(t, err)
	require.Len(t, table.Strikes, 1)
	assert.Equal(t, uint16(32), table.Strikes[0].PPEM)
	//
	_, err = Parse(data, 2)
	assert.True(t, errors.Is(err, ErrFontIndex), "expected ErrFontIndex, got %v", err)
}

func TestDupeResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	table, err := Parse(sbixtest.Emoji().Bytes(), 0)
	require.NoError(t, err)
	g, ok := table.Glyph("u1F600.alt", 20)
	require.True(t, ok)
	assert.True(t, g.IsDupe())
	assert.Equal(t, "u1F600", g.Ref)
	assert.Nil(t, g.Data)
}

func TestDupeOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	f := sbixtest.Font{
		Names: []string{".notdef", "u1F600", "u1F601"},
		Strikes: []sbixtest.Strike{{PPEM: 20, PPI: 72, Glyphs: map[int]sbixtest.Bitmap{
			1: sbixtest.PNG(20, 20),
			2: sbixtest.Dupe(17),
		}}},
	}
	table, err := Parse(f.Bytes(), 0)
	require.NoError(t, err)
	require.Len(t, table.Errors(), 1)
	ferr := table.Errors()[0]
	assert.Equal(t, SeverityCritical, ferr.Severity)
	assert.Equal(t, 2, ferr.Glyph)
	assert.Len(t, table.Strikes[0].Glyphs, 1)
}

func TestUnknownGraphicType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	f := sbixtest.Font{
		Names: []string{".notdef", "u1F600"},
		Strikes: []sbixtest.Strike{{PPEM: 20, PPI: 72, Glyphs: map[int]sbixtest.Bitmap{
			1: {Type: "pdf ", Data: []byte("%PDF")},
		}}},
	}
	table, err := Parse(f.Bytes(), 0)
	require.NoError(t, err)
	require.Len(t, table.Errors(), 1)
	assert.Equal(t, SeverityMinor, table.Errors()[0].Severity)
	// glyph is kept, callers decide what to do with it
	assert.Len(t, table.Strikes[0].Glyphs, 1)
}

func TestNoSbixTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	data := sbixtest.Font{Names: []string{".notdef"}}.Bytes()
	// rename table 'sbix' to 'xbix' in the table directory
	for i := 12; i < 12+3*16; i += 16 {
		if string(data[i:i+4]) == "sbix" {
			data[i] = 'x'
		}
	}
	_, err := Parse(data, 0)
	assert.True(t, errors.Is(err, ErrNoSbixTable), "expected ErrNoSbixTable, got %v", err)
}

func TestGlyphNameFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	names := []string{"", "", ""}
	cmapNames(&testCmapIter{
		runes: []rune{0x2764, 0x1F600, 0x1F601},
		gids:  []int{1, 2, 2},
	}, names)
	assert.Equal(t, []string{"", "uni2764", "u1F600"}, names)
}

type testCmapIter struct {
	runes []rune
	gids  []int
	pos   int
}

func (it *testCmapIter) Next() bool {
	it.pos++
	return it.pos <= len(it.runes)
}

func (it *testCmapIter) Char() (rune, font.GID) {
	return it.runes[it.pos-1], font.GID(it.gids[it.pos-1])
}

func TestTruncatedGlyphRecord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sbixtract.sbix")
	defer teardown()
	//
	f := sbixtest.Emoji()
	for _, st := range f.Strikes {
		st.Glyphs[2] = sbixtest.Bitmap{Raw: true, Data: []byte{0, 0, 0, 0}}
	}
	table, err := Parse(f.Bytes(), 0)
	require.NoError(t, err, "expected a broken glyph record not to abort decoding")
	require.Len(t, table.Strikes, 2)
	for _, strike := range table.Strikes {
		assert.Len(t, strike.Glyphs, 6)
		_, ok := strike.Glyph("u1F44D.3")
		assert.False(t, ok, "expected truncated glyph to be left out")
		g, ok := strike.Glyph("u1F600")
		require.True(t, ok)
		assert.Equal(t, GraphicPNG, g.GraphicType)
		dupe, ok := strike.Glyph("u1F600.alt")
		require.True(t, ok)
		assert.Equal(t, "u1F600", dupe.Ref)
	}
	require.Len(t, table.Errors(), 2)
	for _, e := range table.Errors() {
		assert.Equal(t, SeverityCritical, e.Severity)
		assert.Equal(t, 2, e.Glyph)
	}
	assert.Equal(t, uint16(1), table.Flags)
}
