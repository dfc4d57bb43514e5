package eventid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Northroot-Labs/northroot-kernel/pkg/canonicalize"
)

// TestS2EventIDDeterminism is scenario S2: two invocations of
// ComputeEventID over the literal event return byte-equal digests, and the
// digest re-stamped into the event verifies.
func TestS2EventIDDeterminism(t *testing.T) {
	canon := canonicalize.New("northroot-canonical-v1")
	event := map[string]any{
		"event_type":           "test",
		"event_version":        "1",
		"occurred_at":          "2024-01-01T00:00:00Z",
		"principal_id":         "service:example",
		"canonical_profile_id": "northroot-canonical-v1",
	}

	id1, err := ComputeEventID(event, canon)
	require.NoError(t, err)
	id2, err := ComputeEventID(event, canon)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	stamped := map[string]any{"event_id": map[string]any{"alg": id1.Alg, "b64": id1.B64}}
	for k, v := range event {
		stamped[k] = v
	}
	ok, err := VerifyEventID(stamped, id1, canon)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestComputeEventIDIsDeterministic(t *testing.T) {
	canon := canonicalize.New("northroot-canonical-v1")
	event := map[string]any{
		"event_type":  "execution",
		"occurred_at": "2025-01-02T03:04:05Z",
		"height":      float64(42),
	}

	id1, err := ComputeEventID(event, canon)
	require.NoError(t, err)
	id2, err := ComputeEventID(event, canon)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestComputeEventIDIgnoresExistingEventIDField(t *testing.T) {
	canon := canonicalize.New("northroot-canonical-v1")
	base := map[string]any{"event_type": "checkpoint", "n": float64(1)}
	withID := map[string]any{"event_type": "checkpoint", "n": float64(1), "event_id": map[string]any{"alg": "sha-256", "b64": "x"}}

	id1, err := ComputeEventID(base, canon)
	require.NoError(t, err)
	id2, err := ComputeEventID(withID, canon)
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "event_id field must not affect its own computation")
}

func TestComputeEventIDChangesWithContent(t *testing.T) {
	canon := canonicalize.New("northroot-canonical-v1")
	a := map[string]any{"event_type": "checkpoint", "n": float64(1)}
	b := map[string]any{"event_type": "checkpoint", "n": float64(2)}

	idA, err := ComputeEventID(a, canon)
	require.NoError(t, err)
	idB, err := ComputeEventID(b, canon)
	require.NoError(t, err)
	assert.NotEqual(t, idA, idB)
}

func TestVerifyEventID(t *testing.T) {
	canon := canonicalize.New("northroot-canonical-v1")
	event := map[string]any{"event_type": "attestation", "n": float64(7)}
	id, err := ComputeEventID(event, canon)
	require.NoError(t, err)

	ok, err := VerifyEventID(event, id, canon)
	require.NoError(t, err)
	assert.True(t, ok)

	tampered := map[string]any{"event_type": "attestation", "n": float64(8)}
	ok, err = VerifyEventID(tampered, id, canon)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDomainSeparatorLengths(t *testing.T) {
	assert.Len(t, domainEvent, 19)
	assert.Len(t, domainPriceIndex, 25)
}

func TestComputePriceIndexDigestDeterministic(t *testing.T) {
	canon := canonicalize.New("northroot-canonical-v1")
	snapshot := map[string]any{"model": "gpt", "rate": float64(2)}
	d1, err := ComputePriceIndexDigest(snapshot, canon)
	require.NoError(t, err)
	d2, err := ComputePriceIndexDigest(snapshot, canon)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}
