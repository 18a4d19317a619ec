package sbix

import (
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// numStdPostNames is the number of glyph names built into the 'post' table format.
const numStdPostNames = 258

// glyphNames assigns a name to every glyph ID in [0…numGlyphs).
//
// Names are taken from table 'post', if present. Glyphs without a postscript name
// get a name derived from the character code they are mapped to by 'cmap'
// ("uni1F600", "u1F600"). Everything else is named "glyph00042".
func glyphNames(ld *ot.Loader, numGlyphs int, ec *errorCollector) []string {
	names := make([]string, numGlyphs)
	if f, err := font.NewFont(ld); err == nil {
		for gid := range names {
			names[gid] = f.GlyphName(font.GID(gid))
		}
		cmapNames(f.Cmap.Iter(), names)
	} else {
		ec.addWarning(T("post"), fmt.Sprintf("font not fully usable, reading glyph names from post only: %v", err))
		postNames(ld, names, ec)
	}
	unnamed := 0
	for gid := range names {
		if names[gid] == "" {
			names[gid] = fmt.Sprintf("glyph%05d", gid)
			unnamed++
		}
	}
	if unnamed > 0 {
		tracer().Debugf("%d glyphs have neither a postscript name nor a character mapping", unnamed)
	}
	return names
}

// cmapNames fills in names for glyphs which are reachable by a character code.
// If more than one code maps to a glyph, the smallest one wins.
func cmapNames(it font.CmapIter, names []string) {
	codes := make(map[int]rune)
	for it.Next() {
		r, gid := it.Char()
		g := int(gid)
		if g >= len(names) || names[g] != "" {
			continue
		}
		if c, ok := codes[g]; !ok || r < c {
			codes[g] = r
		}
	}
	for g, r := range codes {
		names[g] = charGlyphName(r)
	}
}

func charGlyphName(r rune) string {
	if r <= 0xffff {
		return fmt.Sprintf("uni%04X", r)
	}
	return fmt.Sprintf("u%05X", r)
}

// postNames reads custom glyph names from a version 2.0 'post' table directly.
// Standard Macintosh names are not resolved, with the exception of '.notdef'.
func postNames(ld *ot.Loader, names []string, ec *errorCollector) {
	raw, err := ld.RawTable(ot.MustNewTag("post"))
	if err != nil {
		return
	}
	post, _, err := tables.ParsePost(raw)
	if err != nil {
		ec.addWarning(T("post"), fmt.Sprintf("cannot parse table: %v", err))
		return
	}
	pn, ok := post.Names.(tables.PostNames20)
	if !ok {
		return
	}
	for gid, inx := range pn.GlyphNameIndexes {
		if gid >= len(names) {
			break
		}
		switch {
		case inx == 0:
			names[gid] = ".notdef"
		case int(inx) >= numStdPostNames:
			if s := int(inx) - numStdPostNames; s < len(pn.Strings) {
				names[gid] = pn.Strings[s]
			} else {
				ec.addError(T("post"), "names", fmt.Sprintf("name index %d out of range", inx), SeverityMinor, gid)
			}
		}
	}
}
