/*
Package sbixtest builds small synthetic fonts with an sbix table, for testing.

Fonts consist of tables 'maxp', 'post' (format 2.0) and 'sbix' only. They are
not usable for rendering, but are complete enough to be read by go-text.
*/
package sbixtest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"sort"

	"howett.net/plist"
)

// Font describes a synthetic font. Glyph IDs are indices into Names.
type Font struct {
	Names   []string // glyph names, Names[0] should be ".notdef"
	Strikes []Strike
}

// Strike describes a single bitmap strike.
type Strike struct {
	PPEM, PPI uint16
	Glyphs    map[int]Bitmap // glyph ID -> bitmap record
}

// Bitmap is a glyph record of a strike.
type Bitmap struct {
	Type             string // 'png ', 'dupe', …
	OriginX, OriginY int16
	Data             []byte
	Raw              bool // write Data as the complete record, without header
}

// Dupe creates a glyph record referencing glyph gid.
func Dupe(gid uint16) Bitmap {
	b := make([]byte, 2)
	putU16(b, 0, gid)
	return Bitmap{Type: "dupe", Data: b}
}

// PNG creates a glyph record holding a w x h PNG image.
func PNG(w, h int) Bitmap {
	return Bitmap{Type: "png ", Data: PNGImage(w, h)}
}

// PNGImage encodes a w x h image with a single opaque color.
func PNGImage(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 0xff, G: 0xcc, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Emoji returns a font with a typical set of emoji glyph names and
// two strikes of 20 and 40 PPEM. Glyph 6 is a dupe of glyph 1 in every strike.
func Emoji() Font {
	names := []string{
		".notdef",
		"u1F600",             // grinning face
		"u1F44D.3",           // thumbs up, medium skin tone
		"u1F9D1_u1F4BB.0.W",  // woman technologist
		"u1F3F3_u1F308",      // rainbow flag
		"u0031_u20E3",        // keycap 1
		"u1F600.alt",         // dupe
		"u2764_u200D_u1F525", // heart on fire
	}
	f := Font{Names: names}
	for _, ppem := range []uint16{20, 40} {
		st := Strike{PPEM: ppem, PPI: 72, Glyphs: map[int]Bitmap{}}
		for gid := 1; gid < len(names); gid++ {
			if gid == 6 {
				st.Glyphs[gid] = Dupe(1)
				continue
			}
			st.Glyphs[gid] = PNG(int(ppem), int(ppem))
		}
		f.Strikes = append(f.Strikes, st)
	}
	return f
}

// AppleNames returns a name table matching the glyphs of Emoji, with keys
// spelled the way Apple spells them (including presentation selectors and joiners).
func AppleNames() map[string]any {
	return map[string]any{
		"\U0001F600":                                   "grinning face",
		"\U0001F44D":                                   "thumbs up sign",
		"\U0001F9D1\u200D\U0001F4BB\u200D\u2640\uFE0F": "woman technologist",
		"\U0001F3F3\uFE0F\u200D\U0001F308":             "rainbow flag",
		"1\uFE0F\u20E3":                                "keycap 1/one",
		"\u2764\uFE0F\u200D\U0001F525":                 []byte("heart on fire"),
	}
}

// NamesPlist encodes a name table as a binary property list.
func NamesPlist(names map[string]any) []byte {
	data, err := plist.Marshal(names, plist.BinaryFormat)
	if err != nil {
		panic(err)
	}
	return data
}

// Bytes returns the binary form of f as a single font file.
func (f Font) Bytes() []byte {
	return f.build(0)
}

// Collection returns a font collection ('ttcf') with fonts at positions 0…n-1.
func Collection(fonts ...Font) []byte {
	headerLen := 12 + 4*len(fonts)
	out := make([]byte, headerLen)
	copy(out, "ttcf")
	putU32(out, 4, 0x00010000)
	putU32(out, 8, uint32(len(fonts)))
	for i, f := range fonts {
		base := len(out)
		putU32(out, 12+4*i, uint32(base))
		out = append(out, f.build(base)...)
		out = pad(out)
	}
	return out
}

// build creates an sfnt with table offsets relative to the start of the
// enclosing file, where the sfnt will be located at base.
func (f Font) build(base int) []byte {
	tables := map[string][]byte{
		"maxp": f.maxp(),
		"post": f.post(),
		"sbix": f.sbix(),
	}
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	n := len(tags)
	head := make([]byte, 12+16*n)
	putU32(head, 0, 0x00010000)
	putU16(head, 4, uint16(n))
	putU16(head, 6, 32)
	putU16(head, 8, 1)
	putU16(head, 10, uint16(16*n-32))
	out := head
	for i, tag := range tags {
		data := tables[tag]
		rec := 12 + 16*i
		copy(out[rec:], tag)
		putU32(out, rec+8, uint32(base+len(out)))
		putU32(out, rec+12, uint32(len(data)))
		out = pad(append(out, data...))
	}
	return out
}

func (f Font) maxp() []byte {
	b := make([]byte, 6)
	putU32(b, 0, 0x00005000)
	putU16(b, 4, uint16(len(f.Names)))
	return b
}

func (f Font) post() []byte {
	b := make([]byte, 34+2*len(f.Names))
	putU32(b, 0, 0x00020000)
	putU16(b, 32, uint16(len(f.Names)))
	var strs []byte
	custom := 0
	for gid, name := range f.Names {
		if name == ".notdef" {
			continue
		}
		putU16(b, 34+2*gid, uint16(258+custom))
		strs = append(strs, byte(len(name)))
		strs = append(strs, name...)
		custom++
	}
	return append(b, strs...)
}

func (f Font) sbix() []byte {
	n := len(f.Strikes)
	out := make([]byte, 8+4*n)
	putU16(out, 0, 1)
	putU16(out, 2, 1)
	putU32(out, 4, uint32(n))
	for i, st := range f.Strikes {
		out = pad(out)
		putU32(out, 8+4*i, uint32(len(out)))
		out = append(out, f.strike(st)...)
	}
	return out
}

func (f Font) strike(st Strike) []byte {
	numGlyphs := len(f.Names)
	out := make([]byte, 4+4*(numGlyphs+1))
	putU16(out, 0, st.PPEM)
	putU16(out, 2, st.PPI)
	for gid := 0; gid < numGlyphs; gid++ {
		putU32(out, 4+4*gid, uint32(len(out)))
		bm, ok := st.Glyphs[gid]
		if !ok {
			continue
		}
		if bm.Raw {
			out = append(out, bm.Data...)
			continue
		}
		rec := make([]byte, 8)
		putU16(rec, 0, uint16(bm.OriginX))
		putU16(rec, 2, uint16(bm.OriginY))
		copy(rec[4:], (bm.Type + "    ")[:4])
		out = append(out, rec...)
		out = append(out, bm.Data...)
	}
	putU32(out, 4+4*numGlyphs, uint32(len(out)))
	return out
}

func pad(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func putU16(b []byte, at int, v uint16) {
	binary.BigEndian.PutUint16(b[at:], v)
}

func putU32(b []byte, at int, v uint32) {
	binary.BigEndian.PutUint32(b[at:], v)
}
