// Command northroot is the CLI front-end over the trust-kernel core: thin
// glue that parses arguments, formats output, and wires exit codes, per
// spec.md §1's "external collaborator" framing. The core packages
// (pkg/canonicalize, pkg/eventid, pkg/events, pkg/verifier, pkg/journal,
// pkg/store) carry all of the actual behavior.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run dispatches to a subcommand and returns the process exit code,
// following core/cmd/helm/main.go's testable-entrypoint shape.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stderr, "Error: missing subcommand")
		printUsage(stderr)
		return 1
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "canonicalize":
		return runCanonicalizeCmd(rest, stdout, stderr)
	case "event-id":
		return runEventIDCmd(rest, stdout, stderr)
	case "list":
		return runListCmd(rest, stdout, stderr)
	case "verify":
		return runVerifyCmd(rest, stdout, stderr)
	case "append":
		return runAppendCmd(rest, stdout, stderr)
	case "checkpoint":
		return runCheckpointCmd(rest, stdout, stderr)
	case "get":
		return runGetCmd(rest, stdout, stderr)
	case "inspect":
		return runInspectCmd(rest, stdout, stderr)
	case "gen":
		return runGenCmd(rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Error: unknown subcommand %q\n", cmd)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, `Usage: northroot <command> [flags]

Commands:
  canonicalize  print canonical bytes for a JSON value
  event-id      print the computed event-id digest for an event
  list          sequentially list events in a journal
  verify        verify every event in a journal
  append        compute an event-id, stamp it, and append to a journal
  checkpoint    emit a checkpoint event for a journal
  get           print one event by event-id
  inspect       show an authorization and its linked executions
  gen           deterministically generate a test journal`)
}
