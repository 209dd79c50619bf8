package syntax

import (
	"strings"
	"testing"

	"github.com/Milly/deno-vim-regexp/errkind"
)

func mustTranspile(t *testing.T, pattern string, opts Options) (string, Flags) {
	t.Helper()
	src, flags, err := Transpile(pattern, opts)
	if err != nil {
		t.Fatalf("Transpile(%q): unexpected error: %v", pattern, err)
	}
	return src, flags
}

func TestTranspileLiterals(t *testing.T) {
	src, flags := mustTranspile(t, "abc", Options{})
	if src != "abc" {
		t.Errorf("source = %q, want %q", src, "abc")
	}
	if flags.String() != "sv" {
		t.Errorf("flags = %q, want %q", flags.String(), "sv")
	}
}

func TestTranspileDotMagicVsEscaped(t *testing.T) {
	// Bare "." must not match newline even though the compiled pattern
	// always carries the dotAll flag, so it needs an explicit exclusion.
	if src, _ := mustTranspile(t, `a.b`, Options{}); src != `a[^\n]b` {
		t.Errorf("bare dot: source = %q, want %q", src, `a[^\n]b`)
	}
	if src, _ := mustTranspile(t, `a\.b`, Options{}); src != `a\.b` {
		t.Errorf("escaped dot: source = %q, want %q", src, `a\.b`)
	}
}

func TestTranspileUnderscoreDotMatchesNewline(t *testing.T) {
	// \_. matches any character including newline; under the pattern's
	// always-on dotAll flag a bare "." already has that meaning.
	if src, _ := mustTranspile(t, `a\_.b`, Options{}); src != `a.b` {
		t.Errorf("source = %q, want %q", src, `a.b`)
	}
}

func TestTranspileQuantifiers(t *testing.T) {
	if src, _ := mustTranspile(t, `ab*`, Options{}); src != "ab*" {
		t.Errorf("source = %q, want %q", src, "ab*")
	}
	if src, _ := mustTranspile(t, `\vab+`, Options{}); src != "ab+" {
		t.Errorf("source = %q, want %q", src, "ab+")
	}
	if src, _ := mustTranspile(t, `a\=`, Options{}); src != "a?" {
		t.Errorf("source = %q, want %q", src, "a?")
	}
}

func TestTranspileNothingToRepeat(t *testing.T) {
	_, _, err := Transpile(`*abc`, Options{})
	se, ok := errkind.AsSourceError(err)
	if !ok || se.Kind() != errkind.KindInvalidPattern {
		t.Fatalf("Transpile(%q): got err=%v, want InvalidPattern", `*abc`, err)
	}
}

func TestTranspileGroupsEquivalentAcrossMagicLevels(t *testing.T) {
	veryMagicSrc, _ := mustTranspile(t, `\v(a|b)`, Options{})
	magicSrc, _ := mustTranspile(t, `\(a\|b\)`, Options{})
	if veryMagicSrc != magicSrc {
		t.Errorf("\\v(a|b) = %q, \\(a\\|b\\) = %q; want equal", veryMagicSrc, magicSrc)
	}
	if veryMagicSrc != "(a|b)" {
		t.Errorf("source = %q, want %q", veryMagicSrc, "(a|b)")
	}
}

func TestTranspileNonCapturingGroup(t *testing.T) {
	src, _ := mustTranspile(t, `\%(ab\)`, Options{})
	if src != "(?:ab)" {
		t.Errorf("source = %q, want %q", src, "(?:ab)")
	}
}

func TestTranspileLookaheadRewritesGroupHead(t *testing.T) {
	src, _ := mustTranspile(t, `\(foo\)\@=`, Options{})
	if src != "(?=foo)" {
		t.Errorf("source = %q, want %q", src, "(?=foo)")
	}
	src, _ = mustTranspile(t, `\(foo\)\@!`, Options{})
	if src != "(?!foo)" {
		t.Errorf("source = %q, want %q", src, "(?!foo)")
	}
	src, _ = mustTranspile(t, `\(foo\)\@<=`, Options{})
	if src != "(?<=foo)" {
		t.Errorf("source = %q, want %q", src, "(?<=foo)")
	}
}

func TestTranspileLookaheadAtomicUnsupported(t *testing.T) {
	_, _, err := Transpile(`\(foo\)\@>`, Options{})
	se, ok := errkind.AsSourceError(err)
	if !ok || se.Kind() != errkind.KindUnsupportedFeature {
		t.Fatalf("got err=%v, want UnsupportedFeature", err)
	}
}

func TestTranspileWordBoundaries(t *testing.T) {
	src, _ := mustTranspile(t, `\<foo\>`, Options{})
	if want := `\b(?=\w)foo\b(?<=\w)`; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileBackreference(t *testing.T) {
	src, _ := mustTranspile(t, `\(a\)\1`, Options{})
	if want := `(a)\1`; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
	_, _, err := Transpile(`\1`, Options{})
	se, ok := errkind.AsSourceError(err)
	if !ok || se.Kind() != errkind.KindInvalidPattern {
		t.Fatalf("got err=%v, want InvalidPattern", err)
	}
}

func TestTranspileFixedClasses(t *testing.T) {
	src, _ := mustTranspile(t, `\d\D`, Options{})
	if want := "[0-9][^0-9\\n]"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
	src, _ = mustTranspile(t, `\_d`, Options{})
	if want := "[0-9\\n]"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileOptionClass(t *testing.T) {
	src, _ := mustTranspile(t, `\k\+`, Options{IsKeyword: "@,48-57,_,192-255"})
	if !strings.Contains(src, "\\x5f") {
		t.Errorf("missing underscore escape: %s", src)
	}
	if !strings.HasSuffix(src, "+") {
		t.Errorf("missing quantifier suffix: %s", src)
	}
}

func TestTranspileDollarTentativeRewrite(t *testing.T) {
	src, _ := mustTranspile(t, `a$b`, Options{})
	if want := `a\$b`; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
	src, _ = mustTranspile(t, `a$`, Options{})
	if want := "a(?:$|(?=\\n))"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileDollarStringMatch(t *testing.T) {
	src, _ := mustTranspile(t, `a$`, Options{StringMatch: true})
	if want := "a$"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
	src, _ = mustTranspile(t, `a$b`, Options{StringMatch: true})
	if want := `a\$b`; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileCaretBranchStart(t *testing.T) {
	src, _ := mustTranspile(t, `\(^a\)`, Options{})
	want := "((?:^|(?<=\\n))a)"
	if src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
	src, _ = mustTranspile(t, `a^b`, Options{})
	if want := `a\^b`; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileAmpersandWrapsSegment(t *testing.T) {
	src, _ := mustTranspile(t, `\vfoo\&bar`, Options{})
	if want := "(?=foo)bar"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileBraceQuantifier(t *testing.T) {
	src, _ := mustTranspile(t, `\va{2,3}`, Options{})
	if want := "a{2,3}"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
	src, _ = mustTranspile(t, `a\{-1,2\}`, Options{})
	if want := "a{1,2}?"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileBraceQuantifierClampsInvertedBounds(t *testing.T) {
	src, _ := mustTranspile(t, `x\{3,1\}`, Options{})
	if want := "x{1,1}"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
	src, _ = mustTranspile(t, `\vx{3,1}`, Options{})
	if want := "x{1,1}"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileCollectionRangeAndNegation(t *testing.T) {
	src, _ := mustTranspile(t, `[a-z]`, Options{})
	if want := "[a-z]"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
	src, _ = mustTranspile(t, `[^a-z]`, Options{})
	if want := "[^a-z]"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileCollectionLeadingBracketLiteral(t *testing.T) {
	src, _ := mustTranspile(t, `[]a]`, Options{})
	if want := `[\]a]`; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileCollectionPosixClass(t *testing.T) {
	src, _ := mustTranspile(t, `[[:digit:]]`, Options{})
	if want := "[0-9]"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileCollectionUnclosed(t *testing.T) {
	_, _, err := Transpile(`[abc`, Options{})
	se, ok := errkind.AsSourceError(err)
	if !ok || se.Kind() != errkind.KindInvalidPattern {
		t.Fatalf("got err=%v, want InvalidPattern", err)
	}
}

func TestTranspileNumericCharRef(t *testing.T) {
	src, _ := mustTranspile(t, `\%d65`, Options{})
	if want := `\x{41}`; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileNumericCharRefOverflowNeverMatches(t *testing.T) {
	src, _ := mustTranspile(t, `\%U7fffffff`, Options{})
	if want := "(?!)"; src != want {
		t.Errorf("source = %q, want %q", src, want)
	}
}

func TestTranspileUnmatchedGroups(t *testing.T) {
	_, _, err := Transpile(`\(abc`, Options{})
	if se, ok := errkind.AsSourceError(err); !ok || se.Kind() != errkind.KindInvalidPattern {
		t.Fatalf("unclosed group: got err=%v, want InvalidPattern", err)
	}
	_, _, err = Transpile(`abc\)`, Options{})
	if se, ok := errkind.AsSourceError(err); !ok || se.Kind() != errkind.KindInvalidPattern {
		t.Fatalf("stray close: got err=%v, want InvalidPattern", err)
	}
}

func TestTranspileUnsupportedFeatures(t *testing.T) {
	tests := []string{`\zs`, `\ze`, `\z1`, `\z(a\)`, `\%V`, `\%#`, `\%C`, `\%[abc]`, `~`, `\%23l`}
	for _, pattern := range tests {
		_, _, err := Transpile(pattern, Options{})
		se, ok := errkind.AsSourceError(err)
		if !ok || se.Kind() != errkind.KindUnsupportedFeature {
			t.Errorf("Transpile(%q): got err=%v, want UnsupportedFeature", pattern, err)
		}
	}
}

func TestTranspileIgnoreCaseOverride(t *testing.T) {
	_, flags := mustTranspile(t, `\cABC`, Options{})
	if flags.String() != "isv" {
		t.Errorf("flags = %q, want %q", flags.String(), "isv")
	}
}

func TestTranspileSmartCase(t *testing.T) {
	_, flags := mustTranspile(t, "Foo", Options{SmartCase: true, IgnoreCase: true})
	if flags.String() != "sv" {
		t.Errorf("uppercase pattern: flags = %q, want %q", flags.String(), "sv")
	}
	_, flags = mustTranspile(t, "foo", Options{SmartCase: true, IgnoreCase: true})
	if flags.String() != "isv" {
		t.Errorf("lowercase pattern: flags = %q, want %q", flags.String(), "isv")
	}
}

func TestTranspileSmartCaseIgnoresEscapedLetters(t *testing.T) {
	// \A (negated-alpha class) and \%U00000041 (code point escape) both
	// contain an upper-case ASCII letter, but it names an escape, not a
	// literal upper-case character, so smartcase must not see it.
	_, flags := mustTranspile(t, `foo\A`, Options{SmartCase: true, IgnoreCase: true})
	if flags.String() != "isv" {
		t.Errorf(`foo\A: flags = %q, want %q`, flags.String(), "isv")
	}
	_, flags = mustTranspile(t, `foo\%U00000041`, Options{SmartCase: true, IgnoreCase: true})
	if flags.String() != "isv" {
		t.Errorf(`foo\%%U00000041: flags = %q, want %q`, flags.String(), "isv")
	}
}
