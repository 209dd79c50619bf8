package host

import (
	"regexp"
	"regexp/syntax"
	"strings"
)

// optimizedMatcher looks for a shape of source that a specialised matcher
// can check faster than general NFA execution, returning nil if none
// apply. suffixLitMatcher is the only such shape for now: a concatenation
// ending in a literal run, matched by scanning backwards from every
// occurrence of that literal instead of running the whole engine forward
// each time.
func optimizedMatcher(source string) matchStringer {
	prefix, body := splitInlineFlags(source)
	// Parse body under the prefix's flags so every node carries them;
	// parsed without them, "." would render as an explicit "(?-s:.)"
	// that the prefix glued onto the reversed head cannot override.
	flags := syntax.Perl
	for _, c := range prefix {
		switch c {
		case 'i':
			flags |= syntax.FoldCase
		case 'm':
			flags &^= syntax.OneLine
		case 's':
			flags |= syntax.DotNL
		case 'U':
			flags |= syntax.NonGreedy
		}
	}
	parsed, err := syntax.Parse(body, flags)
	if err != nil {
		return nil
	}
	return suffixLitMatcher(prefix, parsed)
}

// splitInlineFlags peels a leading RE2 inline-flag group such as "(?s)"
// or "(?si)" off source, returning it (with its "(?...)" punctuation
// intact, so it can be glued back onto a reversed head pattern verbatim)
// and the remaining pattern text.
//
// vimregexp.New always hands this package source prefixed with exactly
// such a group (the mandatory dotAll flag, plus ignorecase when it
// applies — see wrapper.go's withInlineFlags): every pattern this
// module produces needs its head re-matched with the same flags it was
// compiled with, or the backwards fast path would silently disagree
// with the forward general-engine path on patterns using "." or
// case-insensitive matching. Source handed to host.Default directly
// (bypassing vimregexp.New, which the Constructor type allows) has no
// such guarantee, so prefix is "" and the rest of this file behaves as
// a plain RE2 optimizer with no flags to carry.
func splitInlineFlags(source string) (prefix, body string) {
	if !strings.HasPrefix(source, "(?") {
		return "", source
	}
	end := strings.IndexByte(source, ')')
	if end == -1 {
		return "", source
	}
	letters := source[2:end]
	if letters == "" {
		return "", source
	}
	for _, c := range letters {
		switch c {
		case 'i', 'm', 's', 'U':
			// a bare RE2 flag letter
		default:
			// not a flag-only group, e.g. "(?:", "(?=", "(?P<name>"
			return "", source
		}
	}
	return source[:end+1], source[end+1:]
}

func suffixLitMatcher(flagPrefix string, re *syntax.Regexp) matchStringer {
	if re.Flags != 0 {
		return nil
	}
	if re.Op != syntax.OpConcat || len(re.Sub) == 0 {
		return nil
	}
	last := re.Sub[len(re.Sub)-1]
	if last.Op != syntax.OpLiteral || last.Flags&syntax.FoldCase != 0 {
		// A case-folded suffix cannot be located with strings.Index.
		return nil
	}

	head := *re
	head.Sub = head.Sub[:len(head.Sub)-1]
	headRe, err := regexp.Compile("^" + flagPrefix + reversedPattern(&head))
	if err != nil {
		return nil
	}

	return &suffixMatcher{headRe: headRe, suffix: string(last.Rune)}
}

// suffixMatcher matches by finding each occurrence of the literal suffix
// and running the (reversed) head pattern backwards from there, instead
// of running the full forward pattern repeatedly over the whole input.
type suffixMatcher struct {
	suffix string
	headRe *regexp.Regexp
}

func (m *suffixMatcher) MatchString(s string) bool {
	for {
		i := strings.Index(s, m.suffix)
		if i == -1 {
			return false
		}
		if m.headRe.MatchReader(newReverseReader(s[:i])) {
			return true
		}
		s = s[i+len(m.suffix):]
	}
}

// reversedPattern renders re as the RE2 source of its reversal: the
// pattern that matches the same language read back to front. Used to
// turn the literal-suffix matcher's head into something that can be run
// forward over a reverseReader instead of needing to scan s backwards by
// hand.
func reversedPattern(re *syntax.Regexp) string {
	return reverseTree(re).String()
}

// reverseTree walks re's subexpression tree and reverses it node by
// node. Concatenation order must flip (the Nth atom read forward becomes
// the Nth-from-last read backward) and so must the rune order inside a
// literal run; a quantified or captured subexpression reverses its one
// child in place since the quantifier/capture itself isn't sequential;
// an alternation's branches are independently reversed but keep their
// relative order, since which branch wins isn't affected by reading the
// string backwards. Line and text anchors swap with their opposite end,
// since the start of the text read backwards is its end. Every other op
// (character classes, \b, the empty match) reads the same forwards or
// backwards and is left as-is.
func reverseTree(re *syntax.Regexp) *syntax.Regexp {
	out := *re

	switch re.Op {
	case syntax.OpBeginLine:
		out.Op = syntax.OpEndLine
	case syntax.OpEndLine:
		out.Op = syntax.OpBeginLine
	case syntax.OpBeginText:
		out.Op = syntax.OpEndText
	case syntax.OpEndText:
		out.Op = syntax.OpBeginText
	case syntax.OpConcat:
		out.Sub = make([]*syntax.Regexp, len(re.Sub))
		for i, sub := range re.Sub {
			out.Sub[len(re.Sub)-1-i] = reverseTree(sub)
		}
	case syntax.OpAlternate:
		out.Sub = make([]*syntax.Regexp, len(re.Sub))
		for i, sub := range re.Sub {
			out.Sub[i] = reverseTree(sub)
		}
	case syntax.OpCapture, syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		out.Sub = []*syntax.Regexp{reverseTree(re.Sub[0])}
	case syntax.OpLiteral:
		out.Rune = make([]rune, len(re.Rune))
		for i, r := range re.Rune {
			out.Rune[len(re.Rune)-1-i] = r
		}
	}

	return &out
}
