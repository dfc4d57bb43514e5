package main

import (
	"errors"
	"flag"
	"io"

	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
	"github.com/Northroot-Labs/northroot-kernel/pkg/store"
)

// runGetCmd implements `northroot get PATH EVENT_ID`.
//
// Scans the journal at PATH for the event whose event_id.b64 equals
// EVENT_ID and prints it as pretty JSON.
//
// Exit codes:
//
//	0 = found and printed
//	1 = not found, or a journal read error occurred
func runGetCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("get", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	if err := cmd.Parse(args); err != nil {
		return 1
	}
	path := cmd.Arg(0)
	wantB64 := cmd.Arg(1)
	if path == "" || wantB64 == "" {
		printErr(stderr, "PATH and EVENT_ID are required")
		return 1
	}

	reader, err := journal.OpenReader(path, journal.Permissive)
	if err != nil {
		printErr(stderr, "opening %s: %v", sanitizePath(path), err)
		return 1
	}
	defer reader.Close()

	sr := store.NewJournalReader(reader)
	for {
		raw, err := sr.ReadNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			printErr(stderr, "reading event: %v", err)
			return 1
		}

		envelope, err := decodeEventMap(raw)
		if err != nil {
			continue
		}
		idField, ok := envelope["event_id"].(map[string]any)
		if !ok {
			continue
		}
		if b64, _ := idField["b64"].(string); b64 == wantB64 {
			if err := printJSON(stdout, raw); err != nil {
				printErr(stderr, "writing output: %v", err)
				return 1
			}
			return 0
		}
	}

	printErr(stderr, "no event with event_id.b64=%q", wantB64)
	return 1
}
