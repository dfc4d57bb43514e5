package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
)

// runCanonicalizeCmd implements `northroot canonicalize [INPUT_FILE]`.
//
// Reads one JSON document from INPUT_FILE (or stdin when omitted), prints
// its RFC 8785 canonical bytes to stdout, and prints the hygiene report to
// stderr as JSON.
//
// Exit codes:
//
//	0 = canonicalized, hygiene status Ok/Lossy/Ambiguous
//	1 = canonicalization failed, or hygiene status Invalid
func runCanonicalizeCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("canonicalize", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	if err := cmd.Parse(args); err != nil {
		return 1
	}

	input := cmd.Arg(0)
	raw, err := readInput(input)
	if err != nil {
		printErr(stderr, "reading input %s: %v", sanitizePath(input), err)
		return 1
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		printErr(stderr, "decoding json: %v", err)
		return 1
	}

	canon := newCanonicalizer()
	out, report, err := canon.Canonicalize(v)
	if err != nil {
		printErr(stderr, "canonicalizing: %v", err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, string(out))
	_ = printJSON(stderr, report)

	if report.Status == "invalid" {
		return 1
	}
	return 0
}
