package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/Northroot-Labs/northroot-kernel/pkg/canonicalize"
	"github.com/Northroot-Labs/northroot-kernel/pkg/eventid"
	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
)

// runGenCmd implements `northroot gen --output PATH`.
//
// Deterministically generates a journal of synthetic authorization and
// execution events, seeded by --seed, for exercising `list`/`verify`/
// `inspect` without a live deployment.
//
// Exit codes:
//
//	0 = generated
//	1 = --output already exists without --force, or a write error occurred
func runGenCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("gen", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		output       string
		seed         int64
		countAuth    int
		countExecOK  int
		countExecBad int
		startTS      string
		tsStepMs     int64
		withBad      bool
		force        bool
	)
	cmd.StringVar(&output, "output", "", "journal file to create (REQUIRED)")
	cmd.Int64Var(&seed, "seed", 1, "deterministic PRNG seed")
	cmd.IntVar(&countAuth, "count-auth", 3, "number of authorization events to generate")
	cmd.IntVar(&countExecOK, "count-exec-ok", 5, "number of within-bounds execution events to generate")
	cmd.IntVar(&countExecBad, "count-exec-bad", 0, "number of exceeds-bounds execution events to generate")
	cmd.StringVar(&startTS, "start-ts", "2024-01-01T00:00:00Z", "occurred_at of the first event")
	cmd.Int64Var(&tsStepMs, "ts-step-ms", 1000, "milliseconds between successive events' occurred_at")
	cmd.BoolVar(&withBad, "with-bad", false, "also emit one structurally invalid event")
	cmd.BoolVar(&force, "force", false, "overwrite --output if it already exists")

	if err := cmd.Parse(args); err != nil {
		return 1
	}
	if output == "" {
		printErr(stderr, "--output is required")
		return 1
	}
	if _, err := os.Stat(output); err == nil && !force {
		printErr(stderr, "%s already exists (use --force to overwrite)", sanitizePath(output))
		return 1
	}

	start, err := time.Parse(time.RFC3339, startTS)
	if err != nil {
		printErr(stderr, "--start-ts: %v", err)
		return 1
	}

	if force {
		_ = os.Remove(output)
	}
	w, err := journal.OpenWriter(output, journal.OpenOptions{Create: true})
	if err != nil {
		printErr(stderr, "opening %s: %v", sanitizePath(output), err)
		return 1
	}

	canon := newCanonicalizer()
	rng := rand.New(rand.NewSource(seed))
	clock := start
	step := func() time.Time {
		current := clock
		clock = clock.Add(time.Duration(tsStepMs) * time.Millisecond)
		return current
	}

	var authIDs []ids.Digest
	for i := 0; i < countAuth; i++ {
		authIDs = append(authIDs, mustGenAuth(stderr, w, canon, i, step(), rng))
	}
	for i := 0; i < countExecOK; i++ {
		if len(authIDs) == 0 {
			break
		}
		mustGenExec(stderr, w, canon, i, step(), authIDs[i%len(authIDs)], false)
	}
	for i := 0; i < countExecBad; i++ {
		if len(authIDs) == 0 {
			break
		}
		mustGenExec(stderr, w, canon, countExecOK+i, step(), authIDs[i%len(authIDs)], true)
	}
	if withBad {
		_ = w.AppendEvent(map[string]any{"event_type": "authorization", "event_version": "1"})
	}

	if err := w.Finish(); err != nil {
		printErr(stderr, "closing journal: %v", err)
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "generated %s: %d authorizations, %d ok executions, %d bad executions\n",
		output, countAuth, countExecOK, countExecBad)
	return 0
}

func mustGenAuth(stderr io.Writer, w *journal.Writer, canon *canonicalize.Canonicalizer, idx int, occurredAt time.Time, rng *rand.Rand) ids.Digest {
	meterCap := 1000 + rng.Intn(1000)
	m := map[string]any{
		"event_type":           "authorization",
		"event_version":        "1",
		"occurred_at":          occurredAt.UTC().Format(time.RFC3339),
		"principal_id":         fmt.Sprintf("service:gen-%d", idx),
		"canonical_profile_id": canon.ProfileID,
		"intents": map[string]any{
			"intent_digest": syntheticDigest(fmt.Sprintf("intent-%d", idx)),
		},
		"policy_id":     fmt.Sprintf("policy-%d", idx),
		"policy_digest": syntheticDigest(fmt.Sprintf("policy-%d", idx)),
		"decision":      "allow",
		"decision_code": "granted",
		"authorization": map[string]any{
			"grant": map[string]any{
				"bounds": map[string]any{
					"allowed_tools": []any{"search.web"},
					"meter_caps": []any{
						map[string]any{"unit": "tokens.input", "amount": map[string]any{"t": "int", "v": fmt.Sprintf("%d", meterCap)}},
					},
				},
			},
		},
	}
	digest, err := eventid.ComputeEventID(m, canon)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: generating authorization: %v\n", err)
		return ids.Digest{}
	}
	m["event_id"] = map[string]any{"alg": digest.Alg, "b64": digest.B64}
	_ = w.AppendEvent(m)
	return digest
}

func mustGenExec(stderr io.Writer, w *journal.Writer, canon *canonicalize.Canonicalizer, idx int, occurredAt time.Time, authID ids.Digest, exceedsBounds bool) {
	used := 500
	if exceedsBounds {
		used = 5000
	}
	m := map[string]any{
		"event_type":           "execution",
		"event_version":        "1",
		"occurred_at":          occurredAt.UTC().Format(time.RFC3339),
		"principal_id":         fmt.Sprintf("service:gen-%d", idx),
		"canonical_profile_id": canon.ProfileID,
		"intents": map[string]any{
			"intent_digest": syntheticDigest(fmt.Sprintf("intent-%d", idx)),
		},
		"auth_event_id": map[string]any{"alg": authID.Alg, "b64": authID.B64},
		"tool_name":     "search.web",
		"meter_used": []any{
			map[string]any{"unit": "tokens.input", "amount": map[string]any{"t": "int", "v": fmt.Sprintf("%d", used)}},
		},
		"outcome": "success",
	}
	digest, err := eventid.ComputeEventID(m, canon)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: generating execution: %v\n", err)
		return
	}
	m["event_id"] = map[string]any{"alg": digest.Alg, "b64": digest.B64}
	_ = w.AppendEvent(m)
}

// syntheticDigest deterministically derives a 32-byte digest from the length
// of seed, so generated fixtures never depend on a real hash of external
// content. Seeds of equal length (e.g. "intent-0" and "intent-1") yield the
// same digest.
func syntheticDigest(seed string) map[string]any {
	h := rand.New(rand.NewSource(int64(len(seed))))
	b := make([]byte, 32)
	for i := range b {
		b[i] = byte(h.Intn(256))
	}
	return map[string]any{"alg": "sha-256", "b64": base64.RawURLEncoding.EncodeToString(b)}
}
