// Command vimregexp compiles a Vim pattern and optionally runs it against
// a sample string, for inspecting what the transpiler produces without
// writing a Go program.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tidwall/gjson"

	"github.com/Milly/deno-vim-regexp"
)

func main() {
	var (
		pattern     string
		optionsJSON string
		sample      string
		showAST     bool
	)

	flag.StringVar(&pattern, "pattern", "", "Vim regex pattern to compile (required)")
	flag.StringVar(&optionsJSON, "options-json", "", "JSON document with Options fields (isfname, isident, iskeyword, isprint, flags, magic, ignorecase, smartcase, stringmatch, nounicode)")
	flag.StringVar(&sample, "sample", "", "string to test against the compiled pattern")
	flag.BoolVar(&showAST, "ast", false, "print the transpiled host source instead of (or in addition to) the sample result")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s --pattern PATTERN [--options-json JSON] [--sample STRING] [--ast]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if pattern == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts, err := parseOptionsJSON(optionsJSON)
	if err != nil {
		log.Fatalf("vimregexp: %v", err)
	}

	w, err := vimregexp.New(pattern, opts)
	if err != nil {
		log.Fatalf("vimregexp: compile %q: %v", pattern, err)
	}

	if showAST {
		fmt.Printf("source: %s\n", w.String())
		fmt.Printf("flags:  %s\n", w.Flags())
	}

	if sample != "" {
		fmt.Printf("match(%q): %v\n", sample, w.MatchString(sample))
		if loc := w.FindStringIndex(sample); loc != nil {
			fmt.Printf("first match: %q at [%d,%d)\n", sample[loc[0]:loc[1]], loc[0], loc[1])
		}
	}
}

// parseOptionsJSON decodes the --options-json body into a vimregexp.Options.
// Empty input yields the zero Options (all defaults). Unknown fields are
// ignored rather than rejected: the flag is a convenience for driving the
// compiler from the shell, not a strict schema validator.
func parseOptionsJSON(body string) (vimregexp.Options, error) {
	var opts vimregexp.Options
	if body == "" {
		return opts, nil
	}
	if !gjson.Valid(body) {
		return opts, fmt.Errorf("invalid JSON: %s", body)
	}
	result := gjson.Parse(body)

	opts.IsFname = result.Get("isfname").String()
	opts.IsIdent = result.Get("isident").String()
	opts.IsKeyword = result.Get("iskeyword").String()
	opts.IsPrint = result.Get("isprint").String()
	opts.Flags = result.Get("flags").String()
	opts.IgnoreCase = result.Get("ignorecase").Bool()
	opts.SmartCase = result.Get("smartcase").Bool()
	opts.StringMatch = result.Get("stringmatch").Bool()
	opts.NoUnicode = result.Get("nounicode").Bool()

	if magic := result.Get("magic"); magic.Exists() {
		v := magic.Bool()
		opts.Magic = &v
	}

	return opts, nil
}
