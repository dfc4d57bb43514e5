package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/Northroot-Labs/northroot-kernel/pkg/events"
	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
	"github.com/Northroot-Labs/northroot-kernel/pkg/verifier"
)

// runVerifyCmd implements `northroot verify PATH`.
//
// Sequentially verifies every event in the journal at PATH, resolving each
// execution event's authorization from the events seen so far in the same
// pass. When --price-index is not given, no conversion context is
// available, so usd-denominated meter caps are always treated as
// MissingEvidence (Invalid) per spec.md §4.4.3.
//
// Exit codes:
//
//	0 = every verdict was Ok (or --strict was not given)
//	1 = a journal/event read error occurred, or --strict saw a non-Ok verdict
func runVerifyCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("verify", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		strict     bool
		jsonOutput bool
		maxEvents  int
		maxSize    int64
		priceIndex string
	)
	cmd.BoolVar(&strict, "strict", false, "exit 1 if any event's verdict is not Ok")
	cmd.BoolVar(&jsonOutput, "json", false, "print each result as indented JSON instead of a table")
	cmd.IntVar(&maxEvents, "max-events", 0, "stop after this many events (0 = unlimited)")
	cmd.Int64Var(&maxSize, "max-size", 0, "refuse to open journals larger than this many bytes (0 = unlimited)")
	cmd.StringVar(&priceIndex, "price-index", "", "path to a price-index snapshot JSON file, for converting usd-denominated meter caps")

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

	canon := newCanonicalizer()
	v := verifier.New(canon)

	var conv *verifier.ConversionContext
	if priceIndex != "" {
		conv, err = loadConversionContext(priceIndex, canon)
		if err != nil {
			printErr(stderr, "loading %s: %v", sanitizePath(priceIndex), err)
			return 1
		}
	}

	auths := make(map[string]*events.AuthorizationEvent)

	if !jsonOutput {
		_, _ = fmt.Fprintf(stdout, "%-44s  %-8s  %-10s\n", "EVENT_ID", "TYPE", "VERDICT")
	}

	allOk := true
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

		result := verifyOne(v, ev, auths, conv)
		if result.Verdict != verifier.Ok {
			allOk = false
		}
		if jsonOutput {
			_ = printJSON(stdout, result)
		} else {
			_, _ = fmt.Fprintf(stdout, "%-44s  %-8s  %-10s\n", truncate(result.EventID.B64, 44), ev.GetEnvelope().EventType, result.Verdict)
		}
		count++
	}

	if strict && !allOk {
		return 1
	}
	return 0
}

func verifyOne(v *verifier.Verifier, ev events.Event, auths map[string]*events.AuthorizationEvent, conv *verifier.ConversionContext) verifier.Result {
	switch e := ev.(type) {
	case *events.AuthorizationEvent:
		result := v.VerifyAuthorization(e)
		auths[e.GetEnvelope().EventID.B64] = e
		return result
	case *events.ExecutionEvent:
		auth, ok := auths[e.AuthEventID.B64]
		if !ok {
			return verifier.Result{Verdict: verifier.Invalid, EventID: e.GetEnvelope().EventID}
		}
		return v.VerifyExecution(e, auth, conv)
	case *events.CheckpointEvent:
		return v.VerifyCheckpoint(e)
	case *events.AttestationEvent:
		return v.VerifyAttestation(e)
	default:
		return verifier.Result{Verdict: verifier.Invalid, EventID: ev.GetEnvelope().EventID}
	}
}
