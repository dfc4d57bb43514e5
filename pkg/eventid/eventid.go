// Package eventid computes content-addressed, domain-separated identifiers
// for events and price-index snapshots (C3). It is grounded in
// original_source/crates/northroot-canonical/src/event_id.rs and uses the
// same domain-separated leaf-hash construction as
// core/pkg/merkle/tree.go's node hashing, applied to whole documents instead
// of tree nodes.
package eventid

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/Northroot-Labs/northroot-kernel/pkg/canonicalize"
	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
)

// domainEvent and domainPriceIndex are the exact byte sequences spec.md §4.2
// mandates, including the trailing NUL: 19 and 25 bytes respectively.
var (
	domainEvent       = []byte("northroot:event:v1\x00")
	domainPriceIndex  = []byte("northroot:price-index:v1\x00")
)

func init() {
	if len(domainEvent) != 19 {
		panic(fmt.Sprintf("eventid: domainEvent must be 19 bytes, got %d", len(domainEvent)))
	}
	if len(domainPriceIndex) != 25 {
		panic(fmt.Sprintf("eventid: domainPriceIndex must be 25 bytes, got %d", len(domainPriceIndex)))
	}
}

// ComputeEventID computes the content-addressed event_id for event: the
// event_id field (if present) is removed, every raw JSON number in the tree
// is converted to its minimal decimal string (stringify_numbers, applied
// only in this pipeline per spec.md §4.2), the result is canonicalized, and
// sha256(domainEvent || canonical_bytes) is encoded as a Digest.
func ComputeEventID(event map[string]any, canon *canonicalize.Canonicalizer) (ids.Digest, error) {
	clone := make(map[string]any, len(event))
	for k, v := range event {
		if k == "event_id" {
			continue
		}
		clone[k] = v
	}
	stringified := stringifyNumbers(clone)

	bytes, report, err := canon.Canonicalize(stringified)
	if err != nil {
		return ids.Digest{}, fmt.Errorf("eventid: canonicalization: %w", err)
	}
	if report.Status == canonicalize.StatusInvalid {
		return ids.Digest{}, fmt.Errorf("eventid: canonicalization reported invalid hygiene")
	}

	return digestWithDomain(domainEvent, bytes)
}

// ComputePriceIndexDigest computes the content-addressed digest for a
// price-index snapshot using the same construction with the price-index
// domain separator.
func ComputePriceIndexDigest(snapshot map[string]any, canon *canonicalize.Canonicalizer) (ids.Digest, error) {
	stringified := stringifyNumbers(snapshot)
	bytes, report, err := canon.Canonicalize(stringified)
	if err != nil {
		return ids.Digest{}, fmt.Errorf("eventid: price-index canonicalization: %w", err)
	}
	if report.Status == canonicalize.StatusInvalid {
		return ids.Digest{}, fmt.Errorf("eventid: price-index canonicalization reported invalid hygiene")
	}
	return digestWithDomain(domainPriceIndex, bytes)
}

func digestWithDomain(domain, canonicalBytes []byte) (ids.Digest, error) {
	h := sha256.New()
	h.Write(domain)
	h.Write(canonicalBytes)
	sum := h.Sum(nil)
	b64 := base64.RawURLEncoding.EncodeToString(sum)
	return ids.NewDigest("sha-256", b64)
}

// VerifyEventID recomputes event's event_id and reports whether it matches
// want.
func VerifyEventID(event map[string]any, want ids.Digest, canon *canonicalize.Canonicalizer) (bool, error) {
	got, err := ComputeEventID(event, canon)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

// stringifyNumbers returns a deep copy of v with every json.Number or
// float64 leaf replaced by its minimal decimal string representation. It
// never mutates v in place; the event-id pipeline operates on a dedicated
// copy so the caller's own decoded tree is left untouched.
func stringifyNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = stringifyNumbers(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = stringifyNumbers(elem)
		}
		return out
	case json.Number:
		return string(val)
	case float64:
		return formatFloat(val)
	default:
		return v
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
