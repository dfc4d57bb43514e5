package events

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type kindPeek struct {
	EventType    string `json:"event_type"`
	EventVersion string `json:"event_version"`
}

// SupportedEventVersion is the only event_version this kernel understands.
const SupportedEventVersion = "1"

// Parse validates raw against the embedded structural schema for its
// event_type, then decodes it into the matching concrete event type. It
// does not recompute or check the event_id; that is the verifier's job
// (pkg/verifier), which needs the raw map form to re-hash.
func Parse(raw []byte) (Event, error) {
	var peek kindPeek
	if err := json.Unmarshal(raw, &peek); err != nil {
		return nil, fmt.Errorf("events: decoding envelope: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("events: decoding generic form: %w", err)
	}
	if err := validateStructure(peek.EventType, generic); err != nil {
		return nil, err
	}

	switch peek.EventType {
	case "authorization":
		var ev AuthorizationEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("events: decoding authorization event: %w", err)
		}
		return &ev, nil
	case "execution":
		var ev ExecutionEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("events: decoding execution event: %w", err)
		}
		return &ev, nil
	case "checkpoint":
		var ev CheckpointEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("events: decoding checkpoint event: %w", err)
		}
		return &ev, nil
	case "attestation":
		var ev AttestationEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("events: decoding attestation event: %w", err)
		}
		return &ev, nil
	default:
		return nil, fmt.Errorf("events: unknown event_type %q", peek.EventType)
	}
}

// ToMap renders ev back into a generic map[string]any, suitable for feeding
// into pkg/eventid.ComputeEventID or pkg/canonicalize.Canonicalizer. It
// round-trips through JSON with json.Number preserved so integers already
// present as raw numbers are not silently widened to float64.
func ToMap(ev Event) (map[string]any, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("events: marshaling event: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("events: decoding event to map: %w", err)
	}
	return m, nil
}
