package sbix

import (
	"fmt"

	"github.com/go-text/typesetting/font/opentype/tables"
)

// parseSbixRecords reads an sbix table which the strict decoder rejected.
// Strikes and glyph records which cannot be read are reported to ec and
// left out; only a broken table header is an error.
func parseSbixRecords(raw []byte, numGlyphs int, ec *errorCollector) (tables.Sbix, error) {
	var sb tables.Sbix
	src := binarySegm(raw)
	flags, err := src.u16(2)
	if err != nil {
		return sb, err
	}
	count, err := src.u32(4)
	if err != nil {
		return sb, err
	}
	if 8+4*int(count) > len(src) {
		return sb, fmt.Errorf("%d strike offsets exceed table size %d", count, len(src))
	}
	sb.Flags = flags
	sb.Strikes = make([]tables.Strike, 0, count)
	for i := 0; i < int(count); i++ {
		offset, _ := src.u32(8 + 4*i)
		if offset == 0 {
			continue
		}
		if st, ok := parseStrikeRecords(src, int(offset), numGlyphs, ec); ok {
			sb.Strikes = append(sb.Strikes, st)
		}
	}
	return sb, nil
}

func parseStrikeRecords(src binarySegm, offset, numGlyphs int, ec *errorCollector) (tables.Strike, bool) {
	var st tables.Strike
	section := fmt.Sprintf("strike #%d", offset)
	if offset < 0 || offset+4+4*(numGlyphs+1) > len(src) {
		ec.addError(T("sbix"), section, "strike header exceeds table size", SeverityCritical, -1)
		return st, false
	}
	strike := src[offset:]
	st.Ppem, _ = strike.u16(0)
	st.Ppi, _ = strike.u16(2)
	section = fmt.Sprintf("strike %d", st.Ppem)
	st.GlyphDatas = make([]tables.BitmapGlyphData, numGlyphs)
	for gid := range st.GlyphDatas {
		start, _ := strike.u32(4 + 4*gid)
		end, _ := strike.u32(4 + 4*(gid+1))
		if start == end {
			continue
		}
		if start > end || int(end) > len(strike) {
			ec.addError(T("sbix"), section, fmt.Sprintf("glyph record [%d…%d] out of bounds", start, end),
				SeverityCritical, gid)
			continue
		}
		data, _, err := tables.ParseBitmapGlyphData(strike[start:end])
		if err != nil {
			ec.addError(T("sbix"), section, err.Error(), SeverityCritical, gid)
			continue
		}
		st.GlyphDatas[gid] = data
	}
	return st, true
}
