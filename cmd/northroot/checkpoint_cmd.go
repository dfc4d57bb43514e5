package main

import (
	"errors"
	"flag"
	"io"
	"time"

	"github.com/Northroot-Labs/northroot-kernel/pkg/config"
	"github.com/Northroot-Labs/northroot-kernel/pkg/eventid"
	"github.com/Northroot-Labs/northroot-kernel/pkg/events"
	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
)

// runCheckpointCmd implements `northroot checkpoint PATH --principal ID`.
//
// Scans the journal at PATH to find its current chain tip, builds a
// CheckpointEvent citing that tip, computes its event_id, and appends it.
//
// Exit codes:
//
//	0 = checkpoint appended
//	1 = journal has no events yet, or a read/write error occurred
func runCheckpointCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("checkpoint", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		principal  string
		jsonOutput bool
	)
	cmd.StringVar(&principal, "principal", "", "principal_id recorded on the checkpoint (REQUIRED)")
	cmd.BoolVar(&jsonOutput, "json", false, "print the appended checkpoint as JSON")

	if err := cmd.Parse(args); err != nil {
		return 1
	}
	path := cmd.Arg(0)
	if path == "" {
		printErr(stderr, "PATH is required")
		return 1
	}
	principalID, err := ids.NewPrincipalId(principal)
	if err != nil {
		printErr(stderr, "--principal: %v", err)
		return 1
	}

	reader, err := journal.OpenReader(path, journal.Permissive)
	if err != nil {
		printErr(stderr, "opening %s: %v", sanitizePath(path), err)
		return 1
	}

	var tipID ids.Digest
	var height uint64
	for {
		raw, err := reader.ReadEvent()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = reader.Close()
			printErr(stderr, "reading event: %v", err)
			return 1
		}
		ev, err := events.Parse(raw)
		if err != nil {
			_ = reader.Close()
			printErr(stderr, "parsing event: %v", err)
			return 1
		}
		tipID = ev.GetEnvelope().EventID
		height++
	}
	_ = reader.Close()

	if height == 0 {
		printErr(stderr, "journal has no events to checkpoint")
		return 1
	}

	cfg := config.Load()
	profileID, err := ids.NewProfileId(cfg.ProfileID)
	if err != nil {
		printErr(stderr, "config profile_id: %v", err)
		return 1
	}
	occurredAt, err := ids.NewTimestamp(time.Now().UTC().Format("2006-01-02T15:04:05.000000000Z"))
	if err != nil {
		printErr(stderr, "formatting timestamp: %v", err)
		return 1
	}

	checkpoint := events.CheckpointEvent{
		Envelope: events.Envelope{
			EventType:          "checkpoint",
			EventVersion:       events.SupportedEventVersion,
			OccurredAt:         occurredAt,
			PrincipalID:        principalID,
			CanonicalProfileID: profileID,
		},
		ChainTipEventID: tipID,
		ChainTipHeight:  height,
	}

	canon := newCanonicalizer()
	m, err := events.ToMap(&checkpoint)
	if err != nil {
		printErr(stderr, "converting checkpoint to map: %v", err)
		return 1
	}
	digest, err := eventid.ComputeEventID(m, canon)
	if err != nil {
		printErr(stderr, "computing event-id: %v", err)
		return 1
	}
	checkpoint.EventID = digest
	m["event_id"] = map[string]any{"alg": digest.Alg, "b64": digest.B64}

	w, err := journal.OpenWriter(path, journal.OpenOptions{Create: true, Append: true})
	if err != nil {
		printErr(stderr, "opening %s: %v", sanitizePath(path), err)
		return 1
	}
	if err := w.AppendEvent(m); err != nil {
		printErr(stderr, "appending checkpoint: %v", err)
		return 1
	}
	if err := w.Finish(); err != nil {
		printErr(stderr, "closing journal: %v", err)
		return 1
	}

	if jsonOutput {
		_ = printJSON(stdout, checkpoint)
	} else {
		_ = printJSON(stdout, digest)
	}
	return 0
}
