package main

import (
	"encoding/json"
	"flag"
	"io"

	"github.com/Northroot-Labs/northroot-kernel/pkg/eventid"
	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
)

// runAppendCmd implements `northroot append PATH [INPUT]`.
//
// Reads one JSON event from INPUT (or stdin), computes its event_id, stamps
// it into the event, and appends it to the journal at PATH (created if
// missing). With --strict, an event_id already present in the input must
// match the recomputed one or the append is refused.
//
// Exit codes:
//
//	0 = appended
//	1 = input, computation, --strict mismatch, or journal I/O error
func runAppendCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("append", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		strict bool
		sync   bool
	)
	cmd.BoolVar(&strict, "strict", false, "require any pre-existing event_id to match the recomputed one")
	cmd.BoolVar(&sync, "sync", false, "fsync after appending")

	if err := cmd.Parse(args); err != nil {
		return 1
	}
	path := cmd.Arg(0)
	if path == "" {
		printErr(stderr, "PATH is required")
		return 1
	}
	input := cmd.Arg(1)

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

	canon := newCanonicalizer()
	digest, err := eventid.ComputeEventID(event, canon)
	if err != nil {
		printErr(stderr, "computing event-id: %v", err)
		return 1
	}

	if existing, ok := event["event_id"]; ok && strict {
		existingDigest, err := decodeDigest(existing)
		if err != nil {
			printErr(stderr, "decoding existing event_id: %v", err)
			return 1
		}
		if existingDigest != digest {
			printErr(stderr, "--strict: existing event_id does not match the recomputed digest")
			return 1
		}
	}

	event["event_id"] = map[string]any{"alg": digest.Alg, "b64": digest.B64}
	stamped, err := json.Marshal(event)
	if err != nil {
		printErr(stderr, "marshaling stamped event: %v", err)
		return 1
	}

	w, err := journal.OpenWriter(path, journal.OpenOptions{Create: true, Append: true, Sync: sync})
	if err != nil {
		printErr(stderr, "opening %s: %v", sanitizePath(path), err)
		return 1
	}
	if err := w.AppendFrame(journal.FrameKindEventJSON, stamped); err != nil {
		printErr(stderr, "appending event: %v", err)
		return 1
	}
	if err := w.Finish(); err != nil {
		printErr(stderr, "closing journal: %v", err)
		return 1
	}

	_ = printJSON(stdout, digest)
	return 0
}

func decodeDigest(v any) (ids.Digest, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return ids.Digest{}, err
	}
	var d ids.Digest
	if err := json.Unmarshal(raw, &d); err != nil {
		return ids.Digest{}, err
	}
	return ids.NewDigest(d.Alg, d.B64)
}
