// Package events implements the typed event model (C4): Authorization,
// Execution, Checkpoint, and Attestation events plus their shared
// sub-records, dispatched by the event_type discriminator.
package events

import (
	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
	"github.com/Northroot-Labs/northroot-kernel/pkg/quantity"
)

// Envelope carries the fields every event kind shares. It is embedded
// anonymously in each concrete event type so its JSON fields flatten into
// the parent object.
type Envelope struct {
	EventID            ids.Digest    `json:"event_id"`
	EventType          string        `json:"event_type"`
	EventVersion       string        `json:"event_version"`
	PrevEventID        *ids.Digest   `json:"prev_event_id,omitempty"`
	OccurredAt         ids.Timestamp `json:"occurred_at"`
	PrincipalID        ids.PrincipalId `json:"principal_id"`
	CanonicalProfileID ids.ProfileId   `json:"canonical_profile_id"`
}

// GetEnvelope satisfies Event for any type embedding Envelope.
func (e Envelope) GetEnvelope() Envelope { return e }

// Event is implemented by every concrete event kind via the promoted
// Envelope.GetEnvelope method.
type Event interface {
	GetEnvelope() Envelope
}

// IntentAnchors links an event to the intent that authorized or requested
// it.
type IntentAnchors struct {
	IntentDigest     ids.Digest  `json:"intent_digest"`
	IntentRef        *ids.ContentRef `json:"intent_ref,omitempty"`
	UserIntentDigest *ids.Digest `json:"user_intent_digest,omitempty"`
}

// Meter names a unit and an exact quantity: resource consumption (when used
// in meter_used) or a permitted ceiling (when used in meter_caps).
type Meter struct {
	Unit   string             `json:"unit"`
	Amount quantity.Quantity `json:"amount"`
}

// CheckRecord is one named policy check an authorization ran.
type CheckRecord struct {
	Check  string `json:"check"`
	Result string `json:"result"` // "pass" | "fail"
	Code   string `json:"code,omitempty"`
}

const (
	CheckResultPass = "pass"
	CheckResultFail = "fail"
)
