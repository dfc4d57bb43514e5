package events

import "github.com/Northroot-Labs/northroot-kernel/pkg/ids"

// Window bounds a Merkle root's coverage by journal height. Both ends are
// optional, but if both are present start must not exceed end (I4).
type Window struct {
	StartHeight *uint64 `json:"start_height,omitempty"`
	EndHeight   *uint64 `json:"end_height,omitempty"`
}

// CheckpointEvent marks the journal's chain tip at a point in time,
// optionally committing to a Merkle root over a height window.
type CheckpointEvent struct {
	Envelope
	ChainTipEventID ids.Digest `json:"chain_tip_event_id"`
	ChainTipHeight  uint64     `json:"chain_tip_height"`
	MerkleRoot      *ids.Digest `json:"merkle_root,omitempty"`
	Window          *Window     `json:"window,omitempty"`
}
