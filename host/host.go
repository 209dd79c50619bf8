// Package host abstracts over the regex engine that actually executes a
// transpiled pattern. vimregexp only ever hands it finished host-dialect
// source text; this package's job is turning that text into something
// that can match and search.
//
// The default Constructor, Default, is backed by Go's standard regexp
// package (RE2). RE2 does not implement backreferences or lookaround, so
// it cannot run every pattern the syntax package can produce — patterns
// using \@=, \@!, \@<=, \@<! or \1-\9 will fail to compile under it.
// Callers who need those need to supply their own Constructor (for
// example, one backed by a PCRE or Oniguruma binding) via
// vimregexp.WithHostConstructor; Default exists to make the module
// usable with zero extra dependencies, not to be a complete engine.
package host

import (
	"fmt"
	"regexp"
)

// Matcher is the surface vimregexp needs from a compiled pattern.
type Matcher interface {
	MatchString(s string) bool
	FindStringIndex(s string) []int
	FindStringSubmatchIndex(s string) []int
	FindAllStringIndex(s string, n int) [][]int
	ReplaceAllString(src, repl string) string
	String() string
}

// Constructor compiles host-dialect source text into a Matcher.
type Constructor func(source string) (Matcher, error)

// Default is the RE2-backed Constructor, the one vimregexp uses unless
// the caller supplies a different one.
func Default(source string) (Matcher, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}
	g := &goRegexp{re: re}
	g.fast = optimizedMatcher(source)
	return g, nil
}

// goRegexp wraps *regexp.Regexp for the full Matcher surface, additionally
// trying a specialised fast path for the common MatchString-only call.
type goRegexp struct {
	re   *regexp.Regexp
	fast matchStringer
}

type matchStringer interface {
	MatchString(s string) bool
}

func (g *goRegexp) MatchString(s string) bool {
	if g.fast != nil {
		return g.fast.MatchString(s)
	}
	return g.re.MatchString(s)
}

func (g *goRegexp) FindStringIndex(s string) []int { return g.re.FindStringIndex(s) }

func (g *goRegexp) FindStringSubmatchIndex(s string) []int {
	return g.re.FindStringSubmatchIndex(s)
}

func (g *goRegexp) FindAllStringIndex(s string, n int) [][]int {
	return g.re.FindAllStringIndex(s, n)
}

func (g *goRegexp) ReplaceAllString(src, repl string) string {
	return g.re.ReplaceAllString(src, repl)
}

func (g *goRegexp) String() string { return g.re.String() }
