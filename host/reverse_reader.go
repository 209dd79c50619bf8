package host

import (
	"io"
	"unicode/utf8"
)

// reverseReader presents s as an io.RuneReader read back to front, so a
// "head" pattern compiled against the reverse of the original text can be
// run with regexp.Regexp.MatchReader instead of reversing the string.
type reverseReader struct {
	s string
	i int
}

func newReverseReader(s string) *reverseReader {
	return &reverseReader{s: s, i: len(s) - 1}
}

func (rr *reverseReader) ReadRune() (rune, int, error) {
	if rr.i < 0 {
		return 0, 0, io.EOF
	}
	if c := rr.s[rr.i]; c < utf8.RuneSelf {
		rr.i--
		return rune(c), 1, nil
	}
	ch, size := utf8.DecodeLastRuneInString(rr.s[:rr.i+1])
	rr.i -= size
	return ch, size, nil
}
