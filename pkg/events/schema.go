package events

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Embedded JSON Schemas give a coarse structural pre-check (required-ness,
// types, enums) ahead of the tagged-union decode. They deliberately do not
// re-derive the fine-grained identifier patterns — those live in pkg/ids,
// per spec.md §1's "schema-level field patterns ... are listed but not
// re-derived."
const (
	authorizationSchema = `{
		"type": "object",
		"required": ["event_id", "event_type", "event_version", "occurred_at", "principal_id", "canonical_profile_id", "intents", "policy_id", "policy_digest", "decision", "decision_code", "authorization"],
		"properties": {
			"event_type": {"const": "authorization"},
			"decision": {"enum": ["allow", "deny"]},
			"authorization": {"type": "object", "oneOf": [{"required": ["grant"]}, {"required": ["action"]}]}
		}
	}`

	executionSchema = `{
		"type": "object",
		"required": ["event_id", "event_type", "event_version", "occurred_at", "principal_id", "canonical_profile_id", "intents", "auth_event_id", "tool_name", "meter_used", "outcome"],
		"properties": {
			"event_type": {"const": "execution"},
			"outcome": {"enum": ["success", "failure"]}
		}
	}`

	checkpointSchema = `{
		"type": "object",
		"required": ["event_id", "event_type", "event_version", "occurred_at", "principal_id", "canonical_profile_id", "chain_tip_event_id", "chain_tip_height"],
		"properties": {
			"event_type": {"const": "checkpoint"}
		}
	}`

	attestationSchema = `{
		"type": "object",
		"required": ["event_id", "event_type", "event_version", "occurred_at", "principal_id", "canonical_profile_id", "checkpoint_event_id", "signatures"],
		"properties": {
			"event_type": {"const": "attestation"},
			"signatures": {"type": "array", "minItems": 1, "maxItems": 16}
		}
	}`
)

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	sources := map[string]string{
		"authorization": authorizationSchema,
		"execution":     executionSchema,
		"checkpoint":    checkpointSchema,
		"attestation":   attestationSchema,
	}
	compiled = make(map[string]*jsonschema.Schema, len(sources))
	for kind, src := range sources {
		resource := kind + ".json"
		if err := compiler.AddResource(resource, strings.NewReader(src)); err != nil {
			compileErr = fmt.Errorf("events: compiling %s schema: %w", kind, err)
			return
		}
		schema, err := compiler.Compile(resource)
		if err != nil {
			compileErr = fmt.Errorf("events: compiling %s schema: %w", kind, err)
			return
		}
		compiled[kind] = schema
	}
}

// validateStructure runs the embedded JSON Schema for kind against the
// decoded value v (typically produced by json.Unmarshal into interface{}).
func validateStructure(kind string, v any) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return compileErr
	}
	schema, ok := compiled[kind]
	if !ok {
		return fmt.Errorf("events: unknown event kind %q", kind)
	}
	if err := schema.Validate(v); err != nil {
		return &StructureError{Kind: kind, Err: err}
	}
	return nil
}

// StructureError wraps a jsonschema validation failure with the event kind
// it was checked against.
type StructureError struct {
	Kind string
	Err  error
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("events: %s structural validation failed: %v", e.Kind, e.Err)
}

func (e *StructureError) Unwrap() error { return e.Err }
