package events

import "github.com/Northroot-Labs/northroot-kernel/pkg/ids"

// Signature is one signer's signature over a checkpoint. Cryptographic
// verification of Sig is out of scope (spec.md §1); only the structural
// size/charset constraints are enforced here (I5).
type Signature struct {
	Alg   string `json:"alg"`
	KeyID string `json:"key_id"`
	Sig   string `json:"sig"`
}

// AttestationEvent is one or more signatures over a checkpoint event.
type AttestationEvent struct {
	Envelope
	CheckpointEventID ids.Digest  `json:"checkpoint_event_id"`
	Signatures        []Signature `json:"signatures"`
}
