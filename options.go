package vimregexp

import "github.com/Milly/deno-vim-regexp/syntax"

// Options is the caller-facing configuration for a pattern, re-exported
// from syntax so callers never need to import that package directly.
type Options = syntax.Options
