/*
Package applename reads Apple's emoji name table.

macOS ships localized display names for emoji in a binary property list,
usually found at

	/System/Library/PrivateFrameworks/CoreEmoji.framework/Versions/A/Resources/en.lproj/AppleName.strings

The property list is a dictionary from emoji sequences (strings of literal
Unicode characters, not code point notation) to display names. Keys may contain
presentation selectors and joiners which are not part of a glyph's name in the
emoji font. For each key, Names therefore registers a second, "graphical" key
with U+FE0F, U+20E3 and U+200D removed.

Emoji without an Apple name may still be named from the shortcode table of
github.com/kyokomi/emoji, see ShortcodeName.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package applename

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/kyokomi/emoji/v2"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"howett.net/plist"
)

// tracer writes to trace with key 'sbixtract.names'
func tracer() tracing.Trace {
	return tracing.Select("sbixtract.names")
}

// ErrNotDictionary is returned if a property list does not have a dictionary at its root.
var ErrNotDictionary = errors.New("applename: property list is not a dictionary")

// Characters which are not represented in glyph names.
const (
	VS16   = '\uFE0F' // variation selector 16, emoji presentation
	Keycap = '\u20E3' // combining enclosing keycap
	ZWJ    = '\u200D' // zero width joiner
)

var invisible = runes.Predicate(func(r rune) bool {
	return r == VS16 || r == Keycap || r == ZWJ
})

// Names maps emoji sequences to display names.
type Names struct {
	names map[string]string
}

// Load reads a property list file and builds a name table from it.
// Binary as well as XML property lists are accepted.
func Load(path string) (*Names, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var root any
	format, err := plist.Unmarshal(data, &root)
	if err != nil {
		return nil, fmt.Errorf("applename: cannot decode %s: %w", path, err)
	}
	dict, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s has root of type %T", ErrNotDictionary, path, root)
	}
	tracer().Debugf("read property list %s in format %s", path, plist.FormatNames[format])
	n := FromMap(dict)
	tracer().Infof("loaded %d emoji names from %s", len(dict), path)
	return n, nil
}

// FromMap creates a name table from a decoded dictionary. Values must be strings or
// UTF-8 encoded byte data; entries with other values are skipped.
func FromMap(dict map[string]any) *Names {
	n := &Names{names: make(map[string]string, 2*len(dict))}
	for key, value := range dict {
		var name string
		switch v := value.(type) {
		case string:
			name = v
		case []byte:
			if !utf8.Valid(v) {
				tracer().Infof("name for %q is not valid UTF-8, skipping", key)
				continue
			}
			name = string(v)
		default:
			tracer().Infof("name for %q has unsupported type %T, skipping", key, value)
			continue
		}
		n.names[key] = name
	}
	// originals sorted, so that clashing graphical keys resolve deterministically
	keys := slices.Sorted(maps.Keys(n.names))
	for _, key := range keys {
		gkey := Normalize(key)
		if gkey == key {
			continue
		}
		if _, exists := n.names[gkey]; !exists {
			n.names[gkey] = n.names[key]
		}
	}
	return n
}

// Normalize returns the graphical form of an emoji sequence, i.e. seq without
// presentation selectors, keycap marks and zero width joiners.
func Normalize(seq string) string {
	s, _, err := transform.String(runes.Remove(invisible), seq)
	if err != nil { // cannot happen for a removing transformer
		return seq
	}
	return s
}

// Lookup returns the display name for an emoji sequence. If seq itself is not
// contained in the table, its graphical form is tried.
func (n *Names) Lookup(seq string) (string, bool) {
	if n == nil {
		return "", false
	}
	if name, ok := n.names[seq]; ok {
		return name, true
	}
	name, ok := n.names[Normalize(seq)]
	return name, ok
}

// Len returns the number of keys, including graphical ones.
func (n *Names) Len() int {
	if n == nil {
		return 0
	}
	return len(n.names)
}

// Keys iterates over all keys in sorted order.
func (n *Names) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if n == nil {
			return
		}
		keys := slices.Sorted(maps.Keys(n.names))
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

// ShortcodeName derives a name from the emoji shortcode table, e.g. "grinning face"
// from ":grinning_face:". If more than one shortcode exists for seq, the longest
// one is used.
func ShortcodeName(seq string) (string, bool) {
	rev := emoji.RevCodeMap()
	codes, ok := rev[seq]
	if !ok {
		codes, ok = rev[Normalize(seq)]
	}
	if !ok || len(codes) == 0 {
		return "", false
	}
	best := codes[0]
	for _, c := range codes[1:] {
		if len(c) > len(best) || (len(c) == len(best) && c < best) {
			best = c
		}
	}
	name := strings.Trim(best, ":")
	name = strings.ReplaceAll(name, "_", " ")
	return name, name != ""
}
