package verifier

import (
	"fmt"
	"regexp"

	"github.com/Northroot-Labs/northroot-kernel/pkg/arith"
	"github.com/Northroot-Labs/northroot-kernel/pkg/canonicalize"
	"github.com/Northroot-Labs/northroot-kernel/pkg/eventid"
	"github.com/Northroot-Labs/northroot-kernel/pkg/events"
)

// Verifier holds the canonicalizer used to re-hash every event under
// verification. It is immutable after construction and safe to share by
// read-only reference across goroutines, per spec.md §5.
type Verifier struct {
	Canon *canonicalize.Canonicalizer
}

// New returns a Verifier using canon for event-id recomputation.
func New(canon *canonicalize.Canonicalizer) *Verifier {
	return &Verifier{Canon: canon}
}

func recomputeEventID(ev events.Event, canon *canonicalize.Canonicalizer) (bool, error) {
	m, err := events.ToMap(ev)
	if err != nil {
		return false, fmt.Errorf("verifier: converting event to map: %w", err)
	}
	got, err := eventid.ComputeEventID(m, canon)
	if err != nil {
		return false, fmt.Errorf("verifier: recomputing event id: %w", err)
	}
	return got == ev.GetEnvelope().EventID, nil
}

// VerifyAuthorization implements spec.md §4.4.2's Authorization rules.
func (v *Verifier) VerifyAuthorization(ev *events.AuthorizationEvent) Result {
	cl := &checklist{}
	env := ev.GetEnvelope()

	ok, err := recomputeEventID(ev, v.Canon)
	if err != nil || !ok {
		cl.record("event_id", false, "recomputed event_id does not match")
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("event_id", true, "")

	if env.EventType != "authorization" || env.EventVersion != events.SupportedEventVersion {
		cl.record("type_version", false, fmt.Sprintf("event_type=%q event_version=%q", env.EventType, env.EventVersion))
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("type_version", true, "")

	if ev.Decision == events.DecisionDeny {
		cl.record("decision", false, "authorization denied")
		return Result{Verdict: Denied, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("decision", true, "")

	switch {
	case ev.Authorization.Grant != nil:
		g := ev.Authorization.Grant.Bounds
		if len(g.AllowedTools) == 0 || len(g.MeterCaps) == 0 {
			cl.record("grant_bounds", false, "allowed_tools and meter_caps must both be non-empty")
			return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
		}
		cl.record("grant_bounds", true, "")
	case ev.Authorization.Action != nil:
		if ev.Authorization.Action.Action.ToolParamsDigest.Alg != "sha-256" {
			cl.record("action_bounds", false, "tool_params_digest.alg must be sha-256")
			return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
		}
		cl.record("action_bounds", true, "")
	default:
		cl.record("authorization_oneof", false, "neither grant nor action set")
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}

	return Result{Verdict: Ok, EventID: env.EventID, Checks: cl.notes}
}

// VerifyExecution implements spec.md §4.4.2's Execution rules, including
// the priority combination Invalid > Violation > Ok.
func (v *Verifier) VerifyExecution(ev *events.ExecutionEvent, auth *events.AuthorizationEvent, conv *ConversionContext) Result {
	cl := &checklist{}
	env := ev.GetEnvelope()

	ok, err := recomputeEventID(ev, v.Canon)
	if err != nil || !ok {
		cl.record("event_id", false, "recomputed event_id does not match")
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("event_id", true, "")

	authEnv := auth.GetEnvelope()
	if env.EventType != "execution" || env.EventVersion != events.SupportedEventVersion ||
		ev.AuthEventID != authEnv.EventID || ev.Intents.IntentDigest != auth.Intents.IntentDigest {
		cl.record("linkage", false, "auth_event_id/intent_digest do not match the cited authorization")
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("linkage", true, "")

	if auth.Decision == events.DecisionDeny {
		cl.record("auth_decision", false, "execution against a denied authorization")
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("auth_decision", true, "")

	if ev.PricingSnapshotDigest != nil && conv != nil {
		if *ev.PricingSnapshotDigest != conv.SnapshotDigest {
			cl.record("pricing_snapshot", false, "pricing_snapshot_digest does not match the supplied conversion context")
			return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
		}
		cl.record("pricing_snapshot", true, "")
	}

	var caps []events.Meter
	skipBounds := false
	if auth.Authorization.Action != nil {
		if ev.ToolName != auth.Authorization.Action.Action.ToolName {
			cl.record("action_tool_name", false, "execution tool_name does not match the action authorization")
			return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
		}
		cl.record("action_tool_name", true, "")
		caps = auth.Authorization.Action.Action.MeterReservation
		skipBounds = len(caps) == 0
	} else if auth.Authorization.Grant != nil {
		caps = auth.Authorization.Grant.Bounds.MeterCaps
	}

	verdict := Ok
	if !skipBounds {
		outcome, notes := boundsCheck(ev.MeterUsed, caps, ev, conv)
		cl.notes = append(cl.notes, notes...)
		verdict = outcome
	}

	if ev.Outcome == events.OutcomeFailure && ev.ErrorCode == "" {
		cl.record("failure_error_code", false, "failure outcome requires error_code")
		verdict = Invalid
	} else {
		cl.record("failure_error_code", true, "")
	}

	// Invalid > Violation > Ok.
	if verdict == Invalid {
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	if verdict == Violation {
		return Result{Verdict: Violation, EventID: env.EventID, Checks: cl.notes}
	}
	return Result{Verdict: Ok, EventID: env.EventID, Checks: cl.notes}
}

// VerifyCheckpoint implements spec.md §4.4.2's Checkpoint rules.
func (v *Verifier) VerifyCheckpoint(ev *events.CheckpointEvent) Result {
	cl := &checklist{}
	env := ev.GetEnvelope()

	ok, err := recomputeEventID(ev, v.Canon)
	if err != nil || !ok {
		cl.record("event_id", false, "recomputed event_id does not match")
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("event_id", true, "")

	if env.EventType != "checkpoint" || env.EventVersion != events.SupportedEventVersion {
		cl.record("type_version", false, fmt.Sprintf("event_type=%q event_version=%q", env.EventType, env.EventVersion))
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("type_version", true, "")

	if ev.MerkleRoot != nil && ev.Window == nil {
		cl.record("merkle_window", false, "merkle_root requires a window")
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("merkle_window", true, "")

	if ev.Window != nil && ev.Window.StartHeight != nil && ev.Window.EndHeight != nil {
		if *ev.Window.StartHeight > *ev.Window.EndHeight {
			cl.record("window_order", false, "start_height exceeds end_height")
			return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
		}
	}
	cl.record("window_order", true, "")

	return Result{Verdict: Ok, EventID: env.EventID, Checks: cl.notes}
}

var sigCharsetPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// VerifyAttestation implements spec.md §4.4.2's Attestation rules.
// Cryptographic verification of each signature is out of scope; only
// structural size/charset constraints (I5) are checked.
func (v *Verifier) VerifyAttestation(ev *events.AttestationEvent) Result {
	cl := &checklist{}
	env := ev.GetEnvelope()

	ok, err := recomputeEventID(ev, v.Canon)
	if err != nil || !ok {
		cl.record("event_id", false, "recomputed event_id does not match")
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("event_id", true, "")

	if env.EventType != "attestation" || env.EventVersion != events.SupportedEventVersion {
		cl.record("type_version", false, fmt.Sprintf("event_type=%q event_version=%q", env.EventType, env.EventVersion))
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	cl.record("type_version", true, "")

	if len(ev.Signatures) < 1 || len(ev.Signatures) > 16 {
		cl.record("signature_count", false, fmt.Sprintf("got %d signatures, want 1-16", len(ev.Signatures)))
		return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
	}
	for i, sig := range ev.Signatures {
		if len(sig.Alg) < 1 || len(sig.Alg) > 64 ||
			len(sig.KeyID) < 1 || len(sig.KeyID) > 256 ||
			len(sig.Sig) < 16 || len(sig.Sig) > 4096 ||
			!sigCharsetPattern.MatchString(sig.Sig) {
			cl.record("signature_shape", false, fmt.Sprintf("signature[%d] fails size/charset constraints", i))
			return Result{Verdict: Invalid, EventID: env.EventID, Checks: cl.notes}
		}
	}
	cl.record("signature_shape", true, "")

	return Result{Verdict: Ok, EventID: env.EventID, Checks: cl.notes}
}

// boundsCheck implements spec.md §4.4.3: each used meter is checked against
// a direct-unit cap, else a USD cap via conversion, else skipped.
func boundsCheck(used, caps []events.Meter, exec *events.ExecutionEvent, conv *ConversionContext) (Verdict, []CheckNote) {
	capByUnit := make(map[string]events.Meter, len(caps))
	for _, c := range caps {
		capByUnit[c.Unit] = c
	}

	var notes []CheckNote
	violated := false
	missingEvidence := false

	for _, m := range used {
		if cap, ok := capByUnit[m.Unit]; ok {
			switch arith.Cmp(m.Amount, cap.Amount) {
			case arith.WithinBounds:
				notes = append(notes, CheckNote{Name: "bounds:" + m.Unit, Pass: true})
			case arith.ExceedsBounds:
				violated = true
				notes = append(notes, CheckNote{Name: "bounds:" + m.Unit, Pass: false, Detail: "usage exceeds cap"})
			case arith.Invalid:
				missingEvidence = true
				notes = append(notes, CheckNote{Name: "bounds:" + m.Unit, Pass: false, Detail: "used/cap quantity kinds are not comparable"})
			}
			continue
		}

		usdCap, hasUSD := capByUnit["usd"]
		if !hasUSD {
			notes = append(notes, CheckNote{Name: "bounds:" + m.Unit, Pass: true, Detail: "no applicable cap, skipped"})
			continue
		}
		if conv == nil {
			missingEvidence = true
			notes = append(notes, CheckNote{Name: "bounds:" + m.Unit, Pass: false, Detail: "usd cap present but no conversion context supplied"})
			continue
		}
		converted, ok := convertToUSD(m, exec, conv)
		if !ok {
			missingEvidence = true
			notes = append(notes, CheckNote{Name: "bounds:" + m.Unit, Pass: false, Detail: "no price entry to convert to usd"})
			continue
		}
		switch arith.Cmp(converted, usdCap.Amount) {
		case arith.WithinBounds:
			notes = append(notes, CheckNote{Name: "bounds:" + m.Unit + ":usd", Pass: true})
		case arith.ExceedsBounds:
			violated = true
			notes = append(notes, CheckNote{Name: "bounds:" + m.Unit + ":usd", Pass: false, Detail: "converted usage exceeds usd cap"})
		case arith.Invalid:
			missingEvidence = true
			notes = append(notes, CheckNote{Name: "bounds:" + m.Unit + ":usd", Pass: false, Detail: "converted quantity not comparable to usd cap"})
		}
	}

	switch {
	case violated:
		return Violation, notes
	case missingEvidence:
		return Invalid, notes
	default:
		return Ok, notes
	}
}
