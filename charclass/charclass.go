// Package charclass compiles Vim's comma-separated option-string format
// (the format used by 'isfname', 'isident', 'iskeyword' and 'isprint')
// into a host regex character class.
//
// The grammar and forcing-overlay rules are Vim's; see :help isfname for
// the authoritative description. This package only ever produces code
// points in [1,255] from the option string itself — wider coverage comes
// from the fixed Unicode tail appended per Type.
package charclass

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Milly/deno-vim-regexp/errkind"
)

// Type selects which forcing overlay and Unicode tail apply after the
// option string's own entries are compiled.
type Type byte

const (
	// None applies no overlay and no Unicode tail: the returned class is
	// exactly what the option string describes.
	None Type = iota
	Fname
	Ident
	Keyword
	Print
)

// CompileOptions adjusts the Unicode tail behaviour.
type CompileOptions struct {
	// NoUnicode omits the Unicode tail and, for Fname and Print, keeps
	// the overlay from removing codes 160-255.
	NoUnicode bool
}

// alphaRanges is the "@" shorthand: codes {0x41-0x5a, 0x61-0x7a, 0xb5,
// 0xc0-0xd6, 0xd8-0xf6, 0xf8-0xff}.
var alphaRanges = [][2]int{
	{0x41, 0x5a}, {0x61, 0x7a}, {0xb5, 0xb5},
	{0xc0, 0xd6}, {0xd8, 0xf6}, {0xf8, 0xff},
}

// CharSet is the intermediate code-point accumulator, indices [1,255].
type CharSet struct {
	has [256]bool
}

func (s *CharSet) add(lo, hi int) {
	for c := lo; c <= hi; c++ {
		s.has[c] = true
	}
}

func (s *CharSet) remove(lo, hi int) {
	for c := lo; c <= hi; c++ {
		s.has[c] = false
	}
}

// Codes returns the set's members in ascending order. Exported for tests
// that want to assert on the flattened code-point set (spec invariant 4).
func (s *CharSet) Codes() []int {
	var out []int
	for c := 1; c <= 255; c++ {
		if s.has[c] {
			out = append(out, c)
		}
	}
	return out
}

// Compile parses pattern (an isfname/isident/iskeyword/isprint-style
// option string) and returns a bracketed host character class equivalent
// to it under typ's forcing overlay and Unicode tail.
func Compile(pattern string, typ Type, opts CompileOptions) (result string, err error) {
	defer errkind.Recover(&err)

	set := &CharSet{}
	parseEntries(pattern, set)
	applyOverlay(set, typ, opts)

	var body strings.Builder
	writeClassBody(&body, set)
	body.WriteString(unicodeTail(typ, opts))

	return "[" + body.String() + "]", nil
}

// parseEntries scans pattern left to right applying each comma-separated
// entry to set in order, per Vim's additive/subtractive option grammar.
func parseEntries(pattern string, set *CharSet) {
	i := 0
	for i < len(pattern) {
		entryStart := i
		var text string
		if pattern[i] == ',' {
			text = ","
			i++
		} else {
			j := i
			for j < len(pattern) && pattern[j] != ',' {
				j++
			}
			text = pattern[i:j]
			i = j
		}

		isLast := i >= len(pattern)
		applyEntry(pattern, entryStart, text, set, isLast)

		if isLast {
			break
		}
		if pattern[i] != ',' {
			errkind.InvalidOptionf(pattern, i, "expected ',' between entries")
		}
		i++
		for i < len(pattern) && pattern[i] == ' ' {
			i++
		}
	}
}

func applyEntry(src string, offset int, text string, set *CharSet, isLast bool) {
	switch {
	case text == "^-^":
		checkRangeAndApply(src, offset, '^', '^', set, false)
	case text == "^":
		if !isLast {
			errkind.InvalidOptionf(src, offset, "unexpected '^'")
		}
		checkRangeAndApply(src, offset, '^', '^', set, false)
	case strings.HasPrefix(text, "^") && len(text) > 1:
		lo, hi := parseValue(src, offset+1, text[1:])
		checkRangeAndApply(src, offset, lo, hi, set, true)
	case text == "@":
		for _, r := range alphaRanges {
			set.add(r[0], r[1])
		}
	default:
		lo, hi := parseValue(src, offset, text)
		checkRangeAndApply(src, offset, lo, hi, set, false)
	}
}

// parseValue parses a single field's value, which is either one decimal
// code (N), a single non-digit rune taken as its code point (C), or a
// "lo-hi" range built from two such values. Either bound of a range may
// itself literally be '-' when doubled ("--9", "9--").
func parseValue(src string, offset int, field string) (lo, hi int) {
	v1, rest, consumed := readValue(field)
	if rest == "" {
		return v1, v1
	}
	if rest[0] != '-' {
		errkind.InvalidOptionf(src, offset+consumed, "invalid code range")
	}
	rest = rest[1:]
	if rest == "" {
		errkind.InvalidOptionf(src, offset+consumed, "invalid code range")
	}
	v2, rest2, _ := readValue(rest)
	if rest2 != "" {
		errkind.InvalidOptionf(src, offset, "invalid code range")
	}
	return v1, v2
}

// readValue reads one value token (decimal digit run, or a single rune)
// from the start of s and returns (codepoint, remainder, bytesConsumed).
func readValue(s string) (code int, rest string, consumed int) {
	if s == "" {
		return 0, "", 0
	}
	if s[0] >= '0' && s[0] <= '9' {
		j := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		n := 0
		for _, c := range s[:j] {
			n = n*10 + int(c-'0')
		}
		return n, s[j:], j
	}
	r, size := utf8.DecodeRuneInString(s)
	return int(r), s[size:], size
}

func checkRangeAndApply(src string, offset int, lo, hi int, set *CharSet, invert bool) {
	if lo < 1 || hi > 255 || lo > hi {
		errkind.InvalidOptionf(src, offset, "invalid code range")
	}
	if invert {
		set.remove(lo, hi)
	} else {
		set.add(lo, hi)
	}
}

func applyOverlay(set *CharSet, typ Type, opts CompileOptions) {
	switch typ {
	case Fname:
		if !opts.NoUnicode {
			set.remove(160, 255)
		}
	case Ident:
		set.remove(160, 255)
	case Keyword:
		set.remove(160, 255)
	case Print:
		set.add(32, 126)
		if !opts.NoUnicode {
			set.remove(160, 255)
		}
	}
}

func writeClassBody(w *strings.Builder, set *CharSet) {
	codes := set.Codes()
	i := 0
	for i < len(codes) {
		j := i
		for j+1 < len(codes) && codes[j+1] == codes[j]+1 {
			j++
		}
		if j-i >= 2 {
			fmt.Fprintf(w, "\\x%02x-\\x%02x", codes[i], codes[j])
		} else {
			for _, c := range codes[i : j+1] {
				fmt.Fprintf(w, "\\x%02x", c)
			}
		}
		i = j + 1
	}
}

func unicodeTail(typ Type, opts CompileOptions) string {
	if typ == None || opts.NoUnicode {
		return ""
	}
	switch typ {
	case Fname, Print:
		return "[\\xa0-\\u{10ffff}]"
	case Keyword:
		return "[[\\p{L}\\p{N}\\p{Emoji}]--[\\x00-\\xff]]"
	default: // Ident
		return ""
	}
}

// PosixClasses maps POSIX-style bracket-expression class names to their
// fixed host equivalents. "fname", "ident" and "keyword" are absent here,
// and the "print" entry is shadowed by DynamicPosixClasses, which the
// transpiler consults first: all four must be compiled through Compile
// with the caller's option strings instead of a fixed mapping.
var PosixClasses = map[string]string{
	"alnum":  "0-9A-Za-z",
	"alpha":  "A-Za-z",
	"blank":  " \\t",
	"cntrl":  "\\x00-\\x1f\\x7f",
	"digit":  "0-9",
	"graph":  "\\x21-\\x7e",
	"lower":  "a-z",
	"print":  "\\x20-\\x7e",
	"punct":  "!-/:-@\\[-`{-~",
	"space":  " \\t\\r\\n\\v\\f",
	"upper":  "A-Z",
	"xdigit": "0-9A-Fa-f",
}

// DynamicPosixClasses are the names that must be resolved via Compile
// rather than PosixClasses, keyed to the Type they map to.
var DynamicPosixClasses = map[string]Type{
	"fname":   Fname,
	"ident":   Ident,
	"keyword": Keyword,
	"print":   Print,
}
