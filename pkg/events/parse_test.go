package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authJSON = `{
	"event_id": {"alg": "sha-256", "b64": "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
	"event_type": "authorization",
	"event_version": "1",
	"occurred_at": "2024-01-01T00:00:00Z",
	"principal_id": "service:example",
	"canonical_profile_id": "northroot-canonical-v1",
	"intents": {"intent_digest": {"alg": "sha-256", "b64": "BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"}},
	"policy_id": "policy-1",
	"policy_digest": {"alg": "sha-256", "b64": "CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"},
	"decision": "allow",
	"decision_code": "granted",
	"authorization": {
		"grant": {
			"bounds": {
				"allowed_tools": ["search.web"],
				"meter_caps": [{"unit": "tokens.input", "amount": {"t": "int", "v": "1000"}}]
			}
		}
	}
}`

func TestParseAuthorizationEvent(t *testing.T) {
	ev, err := Parse([]byte(authJSON))
	require.NoError(t, err)
	auth, ok := ev.(*AuthorizationEvent)
	require.True(t, ok)
	assert.Equal(t, DecisionAllow, auth.Decision)
	assert.NotNil(t, auth.Authorization.Grant)
	assert.Nil(t, auth.Authorization.Action)
	assert.Equal(t, "northroot-canonical-v1", string(auth.CanonicalProfileID))
}

func TestParseRejectsUnknownEventType(t *testing.T) {
	_, err := Parse([]byte(`{"event_type":"bogus","event_version":"1"}`))
	assert.Error(t, err)
}

func TestParseRejectsMissingRequiredFields(t *testing.T) {
	_, err := Parse([]byte(`{"event_type":"authorization","event_version":"1"}`))
	assert.Error(t, err)
}

func TestToMapRoundTrip(t *testing.T) {
	ev, err := Parse([]byte(authJSON))
	require.NoError(t, err)
	m, err := ToMap(ev)
	require.NoError(t, err)
	assert.Equal(t, "authorization", m["event_type"])
}
