package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, args []string) (bool, error) {
	topic := ""
	if len(args) > 0 {
		topic = args[0]
	}
	help(intp, topic)
	return false, nil
}

func help(intp *Intp, topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "strike", "strikes":
		pterm.Info.Println("Strikes")
		fmt.Fprint(intp.out, `
	An sbix table holds one strike per bitmap size. Strikes are identified by
	their pixels-per-em value (PPEM):
	+------+------------+--------------------------+
	| PPEM | Resolution | Glyph data offsets …     |
	+------+------------+--------------------------+
	'strikes' lists all strikes, 'strike <ppem>' selects one and lists its
	first glyphs.
`)
	case "glyph", "glyphs", "name", "names":
		pterm.Info.Println("Glyphs and Names")
		fmt.Fprint(intp.out, `
	Glyph names of Apple Color Emoji encode an emoji sequence plus modifiers:
	    u1F9D1_u1F4BB.0.W     code points 1F9D1 1F4BB, skin tone 0, woman
	'glyph <name>' shows a glyph of the current strike (or of the first strike
	containing it) and the file name it is extracted to.
	'name <code points…>' looks up a sequence, e.g. 'name U+1F3C3 U+1F3FB'.
`)
	default:
		pterm.Info.Println("Commands")
		fmt.Fprint(intp.out, `
	strikes               list strikes
	strike <ppem>         select a strike
	glyph <name>          show a glyph
	name <code points…>   look up an emoji sequence
	help [topic]          help on strikes or glyphs
	quit                  leave
`)
	}
}
