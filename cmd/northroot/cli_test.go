package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestCanonicalizeCmd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, writeFile(in, `{"b":1,"a":2}`))

	stdout, _, code := runCLI(t, "canonicalize", in)
	assert.Equal(t, 0, code)
	assert.Equal(t, `{"a":2,"b":1}`, strings.TrimSpace(stdout))
}

func TestCanonicalizeCmdRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, writeFile(in, `not json`))

	_, stderr, code := runCLI(t, "canonicalize", in)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestEventIDCmdIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "auth.json")
	require.NoError(t, writeFile(in, sampleAuthJSON))

	out1, _, code1 := runCLI(t, "event-id", in)
	out2, _, code2 := runCLI(t, "event-id", in)
	assert.Equal(t, 0, code1)
	assert.Equal(t, 0, code2)
	assert.Equal(t, out1, out2)
	assert.Contains(t, out1, `"alg": "sha-256"`)
}

func TestGenListVerifyGetInspectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "test.nrj")

	_, genErr, code := runCLI(t, "gen", "--output", journalPath, "--seed", "7",
		"--count-auth", "2", "--count-exec-ok", "3", "--count-exec-bad", "0")
	require.Equal(t, 0, code, genErr)

	listOut, listErr, code := runCLI(t, "list", journalPath)
	require.Equal(t, 0, code, listErr)
	assert.Contains(t, listOut, "authorization")
	assert.Contains(t, listOut, "execution")

	verifyOut, verifyErr, code := runCLI(t, "verify", journalPath)
	require.Equal(t, 0, code, verifyErr)
	assert.Contains(t, verifyOut, "ok")

	verifyOut, _, code = runCLI(t, "verify", journalPath, "--strict")
	assert.Equal(t, 0, code)
	assert.NotContains(t, verifyOut, "invalid")
}

func TestVerifyStrictFailsOnBadExecution(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "bad.nrj")

	_, genErr, code := runCLI(t, "gen", "--output", journalPath, "--seed", "3",
		"--count-auth", "1", "--count-exec-ok", "0", "--count-exec-bad", "1")
	require.Equal(t, 0, code, genErr)

	_, _, code = runCLI(t, "verify", journalPath, "--strict")
	assert.Equal(t, 1, code)
}

func TestAppendAndGet(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "append.nrj")
	eventPath := filepath.Join(dir, "event.json")
	require.NoError(t, writeFile(eventPath, sampleAuthJSON))

	stdout, appendErr, code := runCLI(t, "append", journalPath, eventPath)
	require.Equal(t, 0, code, appendErr)
	assert.Contains(t, stdout, `"b64"`)

	listOut, _, code := runCLI(t, "list", journalPath)
	require.Equal(t, 0, code)
	assert.Contains(t, listOut, "authorization")

	var appended struct {
		B64 string `json:"b64"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &appended))
	getOut, getErr, code := runCLI(t, "get", journalPath, appended.B64)
	require.Equal(t, 0, code, getErr)
	assert.Contains(t, getOut, appended.B64)
	assert.Contains(t, getOut, "authorization")
}

func TestGetMissingEventFails(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "empty.nrj")
	_, _, code := runCLI(t, "gen", "--output", journalPath, "--count-auth", "0", "--count-exec-ok", "0")
	require.Equal(t, 0, code)

	_, stderr, code := runCLI(t, "get", journalPath, "not-a-real-digest")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestCheckpointRequiresExistingEvents(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "empty.nrj")
	_, _, code := runCLI(t, "gen", "--output", journalPath, "--count-auth", "0", "--count-exec-ok", "0")
	require.Equal(t, 0, code)

	_, stderr, code := runCLI(t, "checkpoint", journalPath, "--principal", "service:example")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no events")
}

func TestInspectFindsAuthorizationAndExecutions(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "inspect.nrj")

	_, genErr, code := runCLI(t, "gen", "--output", journalPath, "--seed", "11",
		"--count-auth", "1", "--count-exec-ok", "2", "--count-exec-bad", "0")
	require.Equal(t, 0, code, genErr)

	listOut, _, code := runCLI(t, "list", journalPath, "--json")
	require.Equal(t, 0, code)

	dec := json.NewDecoder(strings.NewReader(listOut))
	var first map[string]any
	require.NoError(t, dec.Decode(&first))
	idField := first["event_id"].(map[string]any)
	authB64 := idField["b64"].(string)

	inspectOut, inspectErr, code := runCLI(t, "inspect", journalPath, "--auth", authB64)
	require.Equal(t, 0, code, inspectErr)
	assert.Contains(t, inspectOut, "\"authorization\"")
	assert.Contains(t, inspectOut, "\"executions\"")
}

func TestVerifyPriceIndexConvertsUSDCap(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "usd.nrj")
	authPath := filepath.Join(dir, "auth.json")
	require.NoError(t, writeFile(authPath, sampleUSDAuthJSON))

	authOut, appendErr, code := runCLI(t, "append", journalPath, authPath)
	require.Equal(t, 0, code, appendErr)

	var authDigest struct {
		Alg string `json:"alg"`
		B64 string `json:"b64"`
	}
	require.NoError(t, json.Unmarshal([]byte(authOut), &authDigest))

	execPath := filepath.Join(dir, "exec.json")
	execJSON := strings.NewReplacer("__AUTH_ID__", authDigest.B64).Replace(sampleUSDExecJSONTemplate)
	require.NoError(t, writeFile(execPath, execJSON))

	_, appendErr, code = runCLI(t, "append", journalPath, execPath)
	require.Equal(t, 0, code, appendErr)

	priceIndexPath := filepath.Join(dir, "prices.json")
	require.NoError(t, writeFile(priceIndexPath, samplePriceIndexJSON))

	verifyOut, verifyErr, code := runCLI(t, "verify", "--strict", journalPath)
	assert.Equal(t, 1, code, verifyErr)
	assert.Contains(t, verifyOut, "invalid")

	verifyOut, verifyErr, code = runCLI(t, "verify", "--strict", "--price-index", priceIndexPath, journalPath)
	assert.Equal(t, 0, code, verifyErr)
	assert.NotContains(t, verifyOut, "invalid")
}

func TestUnknownSubcommand(t *testing.T) {
	_, stderr, code := runCLI(t, "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown subcommand")
}

const sampleAuthJSON = `{
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

const sampleUSDAuthJSON = `{
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
				"meter_caps": [{"unit": "usd", "amount": {"t": "dec", "m": "10000", "s": 2}}]
			}
		}
	}
}`

const sampleUSDExecJSONTemplate = `{
	"event_type": "execution",
	"event_version": "1",
	"occurred_at": "2024-01-01T00:01:00Z",
	"principal_id": "service:example",
	"canonical_profile_id": "northroot-canonical-v1",
	"intents": {"intent_digest": {"alg": "sha-256", "b64": "BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"}},
	"auth_event_id": {"alg": "sha-256", "b64": "__AUTH_ID__"},
	"tool_name": "search.web",
	"meter_used": [{"unit": "tokens.input", "amount": {"t": "int", "v": "1000"}}],
	"outcome": "success",
	"model_id": "gpt-4",
	"provider": "openai"
}`

const samplePriceIndexJSON = `{
	"token_prices": [
		{"model_id": "gpt-4", "provider": "openai", "token_type": "input", "price": {"t": "dec", "m": "10", "s": 2}}
	]
}`
