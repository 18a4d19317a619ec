/*
Package glyphname decodes the glyph names of Apple Color Emoji.

Glyph names of the emoji font follow a simple scheme: the code points of an emoji
sequence in upper-case hex, each prefixed by 'u' and joined by '_', optionally
followed by modifiers. A modifier suffix consists of a skin tone digit and/or
gender letters, separated by dots:

	u1F600               grinning face
	u1F44D.3             thumbs up, skin tone 3
	u1F3C3.M             man running
	u1F9D1_u1F4BB.0.W    woman technologist, skin tone 0
	u1F46B.5.B           man and woman holding hands, skin tone 5

Genders 'W' and 'M' are expressed in Unicode by appending a female or male sign
to the sequence. Other gender letters (B for "both", G, and combinations) have no
such equivalent and are kept as a file name suffix.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphname

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	codeMatcher     = regexp.MustCompile(`[A-F0-9]{4,8}`)
	modifierMatcher = regexp.MustCompile(`\.([0-5]?)?\.?([MWBG]{0,4})?`)
)

// Code points which are not part of an emoji sequence's name.
const (
	vs16   = 0xFE0F
	keycap = 0x20E3
)

// Signs appended to a sequence for gender letters 'W' and 'M'.
const (
	FemaleSign = '\u2640'
	MaleSign   = '\u2642'
)

// Modifiers are the suffixes of a glyph name which remain part of the file name.
type Modifiers struct {
	SkinTone string // "0"…"5" or empty
	Gender   string // gender letters not expressed in the sequence
}

// Decoded is the result of decoding a glyph name.
type Decoded struct {
	Glyph     string   // glyph name as found in the font
	Codes     []string // hex code points found in the glyph name
	Sequence  string   // Unicode emoji sequence, including a gender sign
	Modifiers Modifiers
}

// Decode parses a glyph name into an emoji sequence and its modifiers.
func Decode(glyphName string) Decoded {
	d := Decoded{Glyph: glyphName}
	if m := modifierMatcher.FindStringSubmatch(glyphName); m != nil {
		d.Modifiers.SkinTone = m[1]
		d.Modifiers.Gender = m[2]
	}
	d.Codes = codeMatcher.FindAllString(glyphName, -1)
	var seq strings.Builder
	for _, code := range d.Codes {
		n, err := strconv.ParseUint(code, 16, 32)
		if err != nil || n == vs16 || n == keycap {
			continue
		}
		if r := rune(n); utf8.ValidRune(r) {
			seq.WriteRune(r)
		}
	}
	switch d.Modifiers.Gender {
	case "W":
		seq.WriteRune(FemaleSign)
		d.Modifiers.Gender = ""
	case "M":
		seq.WriteRune(MaleSign)
		d.Modifiers.Gender = ""
	}
	d.Sequence = seq.String()
	return d
}

// FileName returns the file name for an emoji image, with name as its base.
func (d Decoded) FileName(name string) string {
	return FileName(name, d.Modifiers)
}

// Escaped returns the code points of d in escaped notation.
func (d Decoded) Escaped() string {
	return Escaped(d.Codes)
}

// FileName constructs a file name from a display name and the modifiers
// of a glyph: "<name>[ <gender>][ <skin tone>].png". Slashes in name are
// replaced by blanks.
func FileName(name string, m Modifiers) string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(name, "/", " "))
	if m.Gender != "" {
		b.WriteString(" ")
		b.WriteString(strings.ToLower(m.Gender))
	}
	if m.SkinTone != "" {
		b.WriteString(" ")
		b.WriteString(m.SkinTone)
	}
	b.WriteString(".png")
	return b.String()
}

// Escaped formats hex code points as "\U0001F600\U0001F44D".
func Escaped(codes []string) string {
	var b strings.Builder
	for _, code := range codes {
		n, err := strconv.ParseUint(code, 16, 32)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, `\U%08X`, n)
	}
	return b.String()
}

// Parse reads a user-supplied emoji sequence in one of the forms
// "U+1F600 U+1F44D", "1f600 1f44d", "1F600_1F44D" or as a glyph name.
func Parse(args ...string) Decoded {
	return Decode(strings.ToUpper(strings.Join(args, " ")))
}
