package main

import (
	"flag"
	"io"

	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
	"github.com/Northroot-Labs/northroot-kernel/pkg/store"
)

// runInspectCmd implements `northroot inspect PATH --auth AUTH_ID`.
//
// Resolves the authorization event whose event_id.b64 equals AUTH_ID and
// every execution event citing it, and prints both as a single JSON
// object: {"authorization": ..., "executions": [...]}.
//
// Exit codes:
//
//	0 = authorization found (executions may be empty)
//	1 = the authorization was not found, or a journal read error occurred
func runInspectCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("inspect", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var authB64 string
	cmd.StringVar(&authB64, "auth", "", "event_id.b64 of the authorization to inspect (REQUIRED)")

	if err := cmd.Parse(args); err != nil {
		return 1
	}
	path := cmd.Arg(0)
	if path == "" || authB64 == "" {
		printErr(stderr, "PATH and --auth are required")
		return 1
	}
	digest, err := ids.NewDigest("sha-256", authB64)
	if err != nil {
		printErr(stderr, "--auth: %v", err)
		return 1
	}

	authReader, err := journal.OpenReader(path, journal.Permissive)
	if err != nil {
		printErr(stderr, "opening %s: %v", sanitizePath(path), err)
		return 1
	}
	auth, err := store.ResolveAuth(store.NewJournalReader(authReader), digest)
	_ = authReader.Close()
	if err != nil {
		printErr(stderr, "resolving authorization: %v", err)
		return 1
	}

	execReader, err := journal.OpenReader(path, journal.Permissive)
	if err != nil {
		printErr(stderr, "opening %s: %v", sanitizePath(path), err)
		return 1
	}
	execs, err := store.ExecutionsForAuth(store.NewJournalReader(execReader), digest)
	_ = execReader.Close()
	if err != nil {
		printErr(stderr, "resolving executions: %v", err)
		return 1
	}

	out := map[string]any{
		"authorization": auth,
		"executions":    execs,
	}
	if err := printJSON(stdout, out); err != nil {
		printErr(stderr, "writing output: %v", err)
		return 1
	}
	return 0
}
