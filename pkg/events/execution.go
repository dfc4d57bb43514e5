package events

import "github.com/Northroot-Labs/northroot-kernel/pkg/ids"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ExecutionEvent records one tool invocation performed under an
// authorization: the meters it consumed and its outcome.
type ExecutionEvent struct {
	Envelope
	Intents               IntentAnchors   `json:"intents"`
	AuthEventID           ids.Digest      `json:"auth_event_id"`
	ToolName              ids.ToolName    `json:"tool_name"`
	StartedAt             *ids.Timestamp  `json:"started_at,omitempty"`
	EndedAt               *ids.Timestamp  `json:"ended_at,omitempty"`
	MeterUsed             []Meter         `json:"meter_used"`
	Outcome               string          `json:"outcome"` // "success" | "failure"
	ErrorCode             string          `json:"error_code,omitempty"`
	OutputDigest          *ids.Digest     `json:"output_digest,omitempty"`
	OutputRef             *ids.ContentRef `json:"output_ref,omitempty"`
	ResourcesTouched      map[string]any  `json:"resources_touched,omitempty"`
	ModelID               string          `json:"model_id,omitempty"`
	Provider              string          `json:"provider,omitempty"`
	PricingSnapshotDigest *ids.Digest     `json:"pricing_snapshot_digest,omitempty"`
}
