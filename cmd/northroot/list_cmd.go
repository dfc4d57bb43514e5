package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/Northroot-Labs/northroot-kernel/pkg/events"
	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
)

// runListCmd implements `northroot list PATH`.
//
// Sequentially reads every event from the journal at PATH and prints one
// line per event: event_id (truncated to 44 chars), event_type, and
// occurred_at (truncated to 20 chars). Unknown frame kinds are skipped
// silently, matching the reader's own behavior.
//
// Exit codes:
//
//	0 = listed (possibly zero events)
//	1 = the journal could not be opened, or a stored event failed to parse
func runListCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("list", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		jsonOutput bool
		maxEvents  int
		maxSize    int64
	)
	cmd.BoolVar(&jsonOutput, "json", false, "print each event as indented JSON instead of a table")
	cmd.IntVar(&maxEvents, "max-events", 0, "stop after this many events (0 = unlimited)")
	cmd.Int64Var(&maxSize, "max-size", 0, "refuse to open journals larger than this many bytes (0 = unlimited)")

	if err := cmd.Parse(args); err != nil {
		return 1
	}
	path := cmd.Arg(0)
	if path == "" {
		printErr(stderr, "PATH is required")
		return 1
	}
	if err := checkMaxSize(path, maxSize); err != nil {
		printErr(stderr, "%s: %v", sanitizePath(path), err)
		return 1
	}

	reader, err := journal.OpenReader(path, journal.Permissive)
	if err != nil {
		printErr(stderr, "opening %s: %v", sanitizePath(path), err)
		return 1
	}
	defer reader.Close()

	if !jsonOutput {
		_, _ = fmt.Fprintf(stdout, "%-44s  %-8s  %-20s\n", "EVENT_ID", "TYPE", "OCCURRED_AT")
	}

	count := 0
	for {
		if maxEvents > 0 && count >= maxEvents {
			break
		}
		raw, err := reader.ReadEvent()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			printErr(stderr, "reading event: %v", err)
			return 1
		}

		ev, err := events.Parse(raw)
		if err != nil {
			printErr(stderr, "parsing event: %v", err)
			return 1
		}
		env := ev.GetEnvelope()

		if jsonOutput {
			_ = printJSON(stdout, json.RawMessage(raw))
		} else {
			_, _ = fmt.Fprintf(stdout, "%-44s  %-8s  %-20s\n", truncate(env.EventID.B64, 44), env.EventType, truncate(string(env.OccurredAt), 20))
		}
		count++
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
