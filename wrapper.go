package vimregexp

import (
	"fmt"
	"strings"

	"github.com/Milly/deno-vim-regexp/errkind"
	"github.com/Milly/deno-vim-regexp/host"
	"github.com/Milly/deno-vim-regexp/syntax"
)

// Wrapper holds a compiled Vim pattern: its original source, its merged
// options, and the host regex constructed from the transpiled source. All
// fields are immutable after construction; match operations delegate to
// the host matcher.
type Wrapper struct {
	vimSource string
	opts      Options
	flags     syntax.Flags
	m         host.Matcher
}

// Compiler builds Wrappers against a chosen host.Constructor. The zero
// value uses host.Default; WithHostConstructor returns one configured
// against a different backend, for callers whose host engine supports
// lookaround or backreferences.
type Compiler struct {
	newHost host.Constructor
}

// WithHostConstructor returns a Compiler that builds its host matchers
// with newHost instead of host.Default. Use this when the transpiled
// output needs a backend RE2 can't run, e.g. one backed by PCRE or
// Oniguruma bindings.
func WithHostConstructor(newHost host.Constructor) *Compiler {
	return &Compiler{newHost: newHost}
}

func (c *Compiler) hostConstructor() host.Constructor {
	if c != nil && c.newHost != nil {
		return c.newHost
	}
	return host.Default
}

// New compiles pattern against the default (RE2) host backend. pattern is
// a Vim source string or an existing *Wrapper (whose source and options
// are inherited, see below); options is an Options value, a flag string
// (treated as Options{Flags: options}), or nil.
func New(pattern, options any) (*Wrapper, error) {
	return (*Compiler)(nil).New(pattern, options)
}

// New compiles pattern the same way the package-level New does, but
// against c's configured host backend.
//
// If pattern is itself a *Wrapper, its Vim source is reused and its
// options become the base layer options is merged onto (new options
// win) — the "re-wrapping" case of spec §4.D. Merge order overall is
// type-specific defaults, then the previous wrapper's options (if any),
// then the caller's options for this call.
func (c *Compiler) New(pattern, options any) (source *Wrapper, err error) {
	defer errkind.Recover(&err)

	var vimSource string
	base := Options{}

	switch p := pattern.(type) {
	case string:
		vimSource = p
	case *Wrapper:
		vimSource = p.vimSource
		base = p.opts
	default:
		errkind.Invalidf("", 0, "pattern must be a string or *Wrapper, got %T", pattern)
	}

	var override Options
	switch o := options.(type) {
	case nil:
		// no overrides
	case Options:
		override = o
	case string:
		override = Options{Flags: o}
	default:
		errkind.Invalidf(vimSource, 0, "options must be an Options, a flag string, or nil, got %T", options)
	}

	merged := syntax.Merge(base, override)
	hostSource, flags, err := syntax.Transpile(vimSource, merged)
	if err != nil {
		return nil, err
	}

	m, err := c.hostConstructor()(withInlineFlags(hostSource, flags))
	if err != nil {
		return nil, &errkind.InvalidPatternError{Src: vimSource, Off: 0, Msg: fmt.Sprintf("host regex rejected transpiled source %q: %v", hostSource, err)}
	}

	return &Wrapper{vimSource: vimSource, opts: merged, flags: flags, m: m}, nil
}

// withInlineFlags prefixes the transpiled source with the RE2 inline-flag
// group matching the mandatory "s" (dotAll — syntax.Transpile's bare "."
// vs "\_." translation depends on dotAll always being active here) and,
// when in effect, "i" (ignorecase) flags. "v" has no RE2 equivalent; it
// is reported through Flags but never affects the compiled matcher.
func withInlineFlags(source string, flags syntax.Flags) string {
	letters := "s"
	if strings.ContainsRune(flags.String(), 'i') {
		letters += "i"
	}
	return "(?" + letters + ")" + source
}

// MatchString reports whether the compiled pattern matches anywhere in s.
func (w *Wrapper) MatchString(s string) bool { return w.m.MatchString(s) }

// FindString returns the leftmost match of the compiled pattern in s, or
// "" if there is none (indistinguishable from an empty match; use
// FindStringIndex to tell them apart).
func (w *Wrapper) FindString(s string) string {
	loc := w.m.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindStringIndex returns the [start, end) byte offsets of the leftmost
// match, or nil if there is none.
func (w *Wrapper) FindStringIndex(s string) []int { return w.m.FindStringIndex(s) }

// FindAllString returns all non-overlapping matches, at most n (n < 0
// means unlimited), or nil if there are none.
func (w *Wrapper) FindAllString(s string, n int) []string {
	locs := w.m.FindAllStringIndex(s, n)
	if locs == nil {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = s[loc[0]:loc[1]]
	}
	return out
}

// HasIndices reports whether the caller's flag string requested 'd'.
func (w *Wrapper) HasIndices() bool { return w.flags.HasIndices() }

// Global reports whether the caller's flag string requested 'g'.
func (w *Wrapper) Global() bool { return w.flags.Global() }

// IgnoreCase reports whether the caller's flag string requested 'i'.
// This mirrors only the caller-specified flag; use Flags to see the
// effective ignore-case state after \c/\C and smartcase are folded in.
func (w *Wrapper) IgnoreCase() bool { return w.flags.IgnoreCase() }

// Sticky reports whether the caller's flag string requested 'y'.
func (w *Wrapper) Sticky() bool { return w.flags.Sticky() }

// Flags returns the final flag set in canonical order: the caller's
// "dgy" subset, the mandatory "s" and "v", and "i" if ignore-case is in
// effect at the end of compilation (from the flag string or from \c/\C
// or smartcase).
func (w *Wrapper) Flags() string { return w.flags.String() }

// VimSource returns the original, untranspiled Vim pattern source.
func (w *Wrapper) VimSource() string { return w.vimSource }

// Options returns a deep copy of the merged options this Wrapper was
// built from; mutating the result never affects w.
func (w *Wrapper) Options() Options {
	o := w.opts
	if o.Magic != nil {
		m := *o.Magic
		o.Magic = &m
	}
	return o
}

// String returns the source text the host matcher was compiled from: the
// transpiled host regex source behind its RE2 inline-flag prefix.
func (w *Wrapper) String() string { return w.m.String() }

// MarshalText implements encoding.TextMarshaler, emitting the original
// Vim source — the representation a caller would want back if they
// round-tripped a Wrapper through a config file.
func (w *Wrapper) MarshalText() ([]byte, error) { return []byte(w.vimSource), nil }
