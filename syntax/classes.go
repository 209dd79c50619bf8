package syntax

import "github.com/Milly/deno-vim-regexp/charclass"

// fixedClass holds the raw bracket-body text for one of the nine
// single-letter built-in classes (\s \d \x \o \w \h \a \l \u and their
// upper-case negations). posBody is the complete body used for the
// bare/lower form; negBody is the body used inside the negated form's
// "[^...]" — for \l/\u these differ from posBody because the negation
// is a plain range, not a set-difference expression (spec §4.C table).
type fixedClass struct {
	posBody string
	negBody string
}

var fixedClasses = map[byte]fixedClass{
	's': {" \\t", " \\t"},
	'd': {"0-9", "0-9"},
	'x': {"0-9A-Fa-f", "0-9A-Fa-f"},
	'o': {"0-7", "0-7"},
	'w': {"0-9A-Za-z_", "0-9A-Za-z_"},
	'h': {"A-Za-z_", "A-Za-z_"},
	'a': {"A-Za-z", "A-Za-z"},
	'l': {"[a-z]--[A-Z]", "a-z"},
	'u': {"[A-Z]--[a-z]", "A-Z"},
}

// classAtom renders one of the nine fixed single-letter classes. negate
// selects the upper-case (negated) form; includeNewline selects the \_
// variant, which for the positive form adds \n to the member set and for
// the negative form removes the implicit \n exclusion (spec §4.C).
func classAtom(lower byte, negate, includeNewline bool) string {
	spec := fixedClasses[lower]
	if !negate {
		body := spec.posBody
		if includeNewline {
			body += "\\n"
		}
		return "[" + body + "]"
	}
	if includeNewline {
		return "[^" + spec.negBody + "]"
	}
	return "[^" + spec.negBody + "\\n]"
}

// optionClassKind maps an option-class letter to the charclass.Type and
// whether it is the upper-case "minus digits" variant.
type optionClassKind struct {
	typ    charclass.Type
	strip  bool // true for I, K, F, P
}

var optionClasses = map[byte]optionClassKind{
	'i': {charclass.Ident, false},
	'I': {charclass.Ident, true},
	'k': {charclass.Keyword, false},
	'K': {charclass.Keyword, true},
	'f': {charclass.Fname, false},
	'F': {charclass.Fname, true},
	'p': {charclass.Print, false},
	'P': {charclass.Print, true},
}

// optionSource picks the option string field feeding a given class type.
func (t *transpiler) optionSource(typ charclass.Type) string {
	switch typ {
	case charclass.Ident:
		return t.opts.IsIdent
	case charclass.Keyword:
		return t.opts.IsKeyword
	case charclass.Fname:
		return t.opts.IsFname
	case charclass.Print:
		return t.opts.IsPrint
	default:
		return ""
	}
}

// optionClassAtom renders one of the eight option-backed classes (\i \I
// \k \K \f \F \p \P), honoring the upper-case minus-digits variant and
// the \_ newline-inclusion variant.
func (t *transpiler) optionClassAtom(letter byte, includeNewline bool) string {
	kind := optionClasses[letter]
	copts := charclass.CompileOptions{NoUnicode: t.opts.NoUnicode}
	cls, err := charclass.Compile(t.optionSource(kind.typ), kind.typ, copts)
	if err != nil {
		panic(err)
	}
	if kind.strip {
		cls = "[" + cls + "--[0-9]]"
	}
	if includeNewline {
		cls = "[\\n" + cls + "]"
	}
	return cls
}
