package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"

	"github.com/Northroot-Labs/northroot-kernel/pkg/eventid"
)

// runEventIDCmd implements `northroot event-id [INPUT_FILE]`.
//
// Reads one JSON event from INPUT_FILE (or stdin), recomputes its content-
// addressed event_id (ignoring any event_id already present), and prints
// {"alg":"sha-256","b64":"..."} to stdout.
//
// Exit codes:
//
//	0 = computed
//	1 = input or canonicalization error
func runEventIDCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("event-id", flag.ContinueOnError)
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

	event, err := decodeEventMap(raw)
	if err != nil {
		printErr(stderr, "decoding event: %v", err)
		return 1
	}

	digest, err := eventid.ComputeEventID(event, newCanonicalizer())
	if err != nil {
		printErr(stderr, "computing event-id: %v", err)
		return 1
	}

	if err := printJSON(stdout, digest); err != nil {
		printErr(stderr, "writing output: %v", err)
		return 1
	}
	return 0
}

func decodeEventMap(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
