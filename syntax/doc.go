// Package syntax transpiles a Vim regular-expression pattern into a
// host-dialect source string plus a flag set.
//
// It implements the regex transpiler component of the Vim-pattern
// compiler: a single-pass transducer over the pattern's bytes that
// tracks, as it scans left to right:
//
//   - the current magic level (veryNoMagic, noMagic, magic, veryMagic),
//     updated in place by \v \m \M \V mode switches;
//   - an output buffer of host-text tokens, one per translated atom,
//     addressable by index so the $-anchor and \@-lookaround rewrites
//     described below can patch an already-emitted token in place;
//   - a stack of open-group buffer indices, so \@=, \@!, \@<= and \@<!
//     can rewrite the just-closed group's opening token into the
//     matching lookaround head;
//   - a stack of concat-segment start marks, so \& can retroactively
//     wrap everything emitted since the segment began in a positive
//     lookahead;
//   - a single pending-$ slot, so a tentative end-of-line anchor can be
//     rewritten to a literal '$' if another atom follows it in the same
//     branch.
//
// # Usage
//
//	source, flags, err := syntax.Transpile(`\k\+`, syntax.Options{
//	    IsKeyword: "@,48-57,_,192-255",
//	})
//
// Errors are one of *errkind.InvalidPatternError, *errkind.
// UnsupportedFeatureError or *errkind.InvalidOptionStringError.
package syntax
