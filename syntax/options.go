package syntax

import "github.com/Milly/deno-vim-regexp/errkind"

// Options is the caller-facing options bundle (spec §3). The zero value
// is the documented default for every field except Magic, which uses a
// tri-state pointer because its default (true) must be distinguishable
// from an explicit caller override to false.
type Options struct {
	Flags string // subset of "dgiy" plus the accepted no-ops "sv"

	IsFname   string
	IsIdent   string
	IsKeyword string
	IsPrint   string

	Magic       *bool
	IgnoreCase  bool
	SmartCase   bool
	StringMatch bool

	// NoUnicode suppresses the charclass Unicode tail (SPEC_FULL §3
	// addition); default false.
	NoUnicode bool
}

// MagicDefault reports the initial magic level the Magic field selects.
func (o Options) MagicDefault() bool {
	return o.Magic == nil || *o.Magic
}

// Merge overlays every non-zero/non-empty field of src onto dst and
// returns the result, implementing the "type-specific defaults, then
// previous options, then caller options" merge order of spec §4.D. Bool
// fields can only be turned on by a later merge layer, never back off;
// that is the one place this merge is lossy, and is a deliberate
// simplification rather than introducing a *bool for every option field.
func Merge(dst Options, src Options) Options {
	if src.Flags != "" {
		dst.Flags = src.Flags
	}
	if src.IsFname != "" {
		dst.IsFname = src.IsFname
	}
	if src.IsIdent != "" {
		dst.IsIdent = src.IsIdent
	}
	if src.IsKeyword != "" {
		dst.IsKeyword = src.IsKeyword
	}
	if src.IsPrint != "" {
		dst.IsPrint = src.IsPrint
	}
	if src.Magic != nil {
		dst.Magic = src.Magic
	}
	dst.IgnoreCase = dst.IgnoreCase || src.IgnoreCase
	dst.SmartCase = dst.SmartCase || src.SmartCase
	dst.StringMatch = dst.StringMatch || src.StringMatch
	dst.NoUnicode = dst.NoUnicode || src.NoUnicode
	return dst
}

// Flags is the validated, caller-specified flag subset plus the
// mandatory internal additions computed at the end of a compilation.
type Flags struct {
	// caller is exactly the characters the caller passed (subset of
	// "dgiy", "s" and "v" accepted and recorded but meaningless as
	// no-ops).
	caller string
	// ignoreCase is the final ignore-case state after \c/\C overrides
	// and smartcase are resolved; always unioned into the output.
	ignoreCase bool
}

const acceptedFlagChars = "dgiysv"

// ParseFlags validates a caller flag string against the accepted set
// "dgiysv"; any other character is InvalidPattern "Invalid flags".
func ParseFlags(src string) Flags {
	for i, r := range src {
		switch r {
		case 'd', 'g', 'i', 'y', 's', 'v':
			// accepted
		default:
			errkind.Invalidf(src, i, "Invalid flags")
		}
	}
	return Flags{caller: src}
}

func (f Flags) has(c byte) bool {
	for i := 0; i < len(f.caller); i++ {
		if f.caller[i] == c {
			return true
		}
	}
	return false
}

// HasIndices mirrors the caller-specified 'd' flag only.
func (f Flags) HasIndices() bool { return f.has('d') }

// Global mirrors the caller-specified 'g' flag only.
func (f Flags) Global() bool { return f.has('g') }

// IgnoreCase mirrors the caller-specified 'i' flag only (the internal
// addition from \c/smartcase is visible through Flags.String, not here).
func (f Flags) IgnoreCase() bool { return f.has('i') }

// Sticky mirrors the caller-specified 'y' flag only.
func (f Flags) Sticky() bool { return f.has('y') }

// String returns the final flag set: the caller's "dgy" subset, unioned
// with the mandatory "s" and "v", and with "i" exactly when ignore-case is
// in effect at the end of compilation (spec §4.C "Compilation outcome");
// a caller "i" feeds that state rather than being copied through.
// Characters are emitted in a fixed canonical order so that compiling the
// same pattern twice is byte-identical (spec invariant 1).
func (f Flags) String() string {
	want := map[byte]bool{'s': true, 'v': true}
	if f.ignoreCase {
		want['i'] = true
	}
	for i := 0; i < len(f.caller); i++ {
		c := f.caller[i]
		if c == 'd' || c == 'g' || c == 'y' {
			want[c] = true
		}
	}
	out := make([]byte, 0, 6)
	for _, c := range []byte("dgisvy") {
		if want[c] {
			out = append(out, c)
		}
	}
	return string(out)
}

func (f Flags) withIgnoreCase(v bool) Flags {
	f.ignoreCase = v
	return f
}
