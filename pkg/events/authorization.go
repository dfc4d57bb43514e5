package events

import "github.com/Northroot-Labs/northroot-kernel/pkg/ids"

const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// GrantBounds is the capability envelope carried by a grant authorization:
// every allowed tool and meter cap it declares.
type GrantBounds struct {
	ExpiresAt         *ids.Timestamp     `json:"expires_at,omitempty"`
	AllowedTools      []ids.ToolName     `json:"allowed_tools"`
	MeterCaps         []Meter            `json:"meter_caps"`
	RateLimits        map[string]any     `json:"rate_limits,omitempty"`
	ConcurrencyLimit  *int               `json:"concurrency_limit,omitempty"`
	OutputMode        string             `json:"output_mode,omitempty"`
	Resources         map[string]any     `json:"resources,omitempty"`
}

// GrantAuthorization is the "grant" arm of the authorization oneof.
type GrantAuthorization struct {
	Bounds GrantBounds `json:"bounds"`
}

// ActionDetail names the single call an action authorization permits.
type ActionDetail struct {
	ToolName         ids.ToolName `json:"tool_name"`
	ToolParamsDigest ids.Digest   `json:"tool_params_digest"`
	MeterReservation []Meter      `json:"meter_reservation,omitempty"`
}

// ActionAuthorization is the "action" arm of the authorization oneof: a
// single-call permit, optionally anchored to a prior grant.
type ActionAuthorization struct {
	GrantEventID *ids.Digest  `json:"grant_event_id,omitempty"`
	Action       ActionDetail `json:"action"`
}

// Authorization is the grant/action oneof. Exactly one of Grant or Action is
// set; Parse's jsonschema pre-check enforces this.
type Authorization struct {
	Grant  *GrantAuthorization  `json:"grant,omitempty"`
	Action *ActionAuthorization `json:"action,omitempty"`
}

// AuthorizationEvent records a policy decision: either a capability grant or
// a single-action permit, plus the checks that produced the decision.
type AuthorizationEvent struct {
	Envelope
	Intents       IntentAnchors `json:"intents"`
	PolicyID      string        `json:"policy_id"`
	PolicyDigest  ids.Digest    `json:"policy_digest"`
	Decision      string        `json:"decision"` // "allow" | "deny"
	DecisionCode  string        `json:"decision_code"`
	Checks        []CheckRecord `json:"checks,omitempty"`
	Authorization Authorization `json:"authorization"`
}
