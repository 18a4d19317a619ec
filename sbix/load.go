package sbix

import (
	"bytes"
	"fmt"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/sbixtract/internal/fontload"
)

// Load reads a font file and decodes the sbix table of the font at position index.
// Font collections as well as single fonts are accepted. For a single font, index
// should be 0; other values are accepted with a warning.
func Load(path string, index int) (*Table, error) {
	f, err := fontload.LoadFont(path, index)
	if err != nil {
		return nil, err
	}
	return decode(f, index)
}

// Parse decodes the sbix table of the font at position index from memory.
// Glyph bitmaps are copied out of data.
func Parse(data []byte, index int) (*Table, error) {
	return decode(fontload.ParseFont(data, index), index)
}

func decode(f *fontload.ScalableFont, index int) (*Table, error) {
	loaders, err := ot.NewLoaders(bytes.NewReader(f.Binary))
	if err != nil {
		return nil, fmt.Errorf("sbix: cannot read font container: %w", err)
	}
	ec := &errorCollector{}
	if index < 0 || index >= len(loaders) {
		if len(loaders) != 1 {
			return nil, fmt.Errorf("%w: %d not in [0…%d]", ErrFontIndex, index, len(loaders)-1)
		}
		ec.addWarning(T("ttcf"), fmt.Sprintf("font is not a collection, ignoring font index %d", index))
		index = 0
	}
	tracer().Debugf("font file contains %d font(s), using #%d", len(loaders), index)
	ld := loaders[index]

	raw, err := ld.RawTable(ot.MustNewTag("maxp"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMaxp, err)
	}
	maxp, _, err := tables.ParseMaxp(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMaxp, err)
	}
	numGlyphs := int(maxp.NumGlyphs)

	raw, err = ld.RawTable(ot.MustNewTag("sbix"))
	if err != nil {
		return nil, ErrNoSbixTable
	}
	sb, _, err := tables.ParseSbix(raw, numGlyphs)
	if err != nil {
		ec.addWarning(T("sbix"), fmt.Sprintf("reading strikes glyph by glyph: %v", err))
		if sb, err = parseSbixRecords(raw, numGlyphs, ec); err != nil {
			return nil, fmt.Errorf("sbix: invalid table: %w", err)
		}
	}
	version, err := binarySegm(raw).u16(0)
	if err != nil {
		return nil, fmt.Errorf("sbix: invalid table: %w", err)
	}
	t := &Table{
		Version:   version,
		Flags:     sb.Flags,
		Font:      f.Fontname,
		Index:     index,
		Fonts:     len(loaders),
		NumGlyphs: numGlyphs,
	}
	if t.Font == "" {
		t.Font = fmt.Sprintf("%s#%d", f.Filepath, index)
	}
	names := glyphNames(ld, numGlyphs, ec)
	t.Strikes = make([]Strike, 0, len(sb.Strikes))
	for _, st := range sb.Strikes {
		t.Strikes = append(t.Strikes, decodeStrike(st, names, ec))
	}
	if ec.hasCriticalErrors() {
		tracer().Errorf("sbix table of %s has glyph records which cannot be used", t.Font)
	}
	tracer().Infof("decoded sbix table of %s: %d strikes, %d glyphs", t.Font, len(t.Strikes), numGlyphs)
	t.errors = ec.errors
	t.warnings = ec.warnings
	return t, nil
}

func decodeStrike(st tables.Strike, names []string, ec *errorCollector) Strike {
	strike := Strike{
		PPEM:       st.Ppem,
		Resolution: st.Ppi,
		Glyphs:     make([]Glyph, 0, len(st.GlyphDatas)),
	}
	section := fmt.Sprintf("strike %d", st.Ppem)
	for gid, data := range st.GlyphDatas {
		if data.GraphicType == 0 && len(data.Data) == 0 {
			continue // no bitmap for this glyph
		}
		g := Glyph{
			ID:            gid,
			Name:          names[gid],
			GraphicType:   Tag(data.GraphicType),
			OriginOffsetX: data.OriginOffsetX,
			OriginOffsetY: data.OriginOffsetY,
			Data:          data.Data,
		}
		switch g.GraphicType {
		case GraphicPNG, GraphicJPEG, GraphicTIFF:
		case GraphicDupe:
			ref, err := binarySegm(data.Data).u16(0)
			if err != nil {
				ec.addError(T("sbix"), section, "dupe record without glyph reference", SeverityCritical, gid)
				continue
			}
			if int(ref) >= len(names) {
				ec.addError(T("sbix"), section, fmt.Sprintf("dupe references glyph %d beyond glyph count", ref),
					SeverityCritical, gid)
				continue
			}
			g.Ref = names[ref]
			g.Data = nil
		default:
			ec.addError(T("sbix"), section, fmt.Sprintf("unsupported graphic type %q", g.GraphicType),
				SeverityMinor, gid)
		}
		strike.Glyphs = append(strike.Glyphs, g)
	}
	tracer().Debugf("strike ppem=%d ppi=%d: %d glyph records", strike.PPEM, strike.Resolution, len(strike.Glyphs))
	return strike
}
