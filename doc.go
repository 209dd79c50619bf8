// Package vimregexp compiles a Vim regular-expression pattern into a
// working matcher backed by a host regex engine.
//
// It wires the two lower-level packages together: syntax transpiles the
// Vim pattern and option strings into host-dialect source text plus a
// flag set, and host turns that source text into something that can
// actually match. The default host backend is RE2 (Go's regexp
// package), which cannot run every pattern the transpiler can produce —
// see the host package doc for what to do about that.
package vimregexp
