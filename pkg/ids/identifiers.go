package ids

import "regexp"

var (
	profileIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{16,128}$`)
	principalIDPattern = regexp.MustCompile(`^(human|service|agent|org):[a-z][a-z0-9_-]{0,62}$`)
	toolNamePattern    = regexp.MustCompile(`^[a-z][a-z0-9_]*([.][a-z][a-z0-9_]*){0,7}$`)
	timestampPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,9})?Z$`)
)

// ProfileId identifies a canonicalization profile in effect for an event.
type ProfileId string

// NewProfileId validates s against the profile-id grammar (16-128 chars of
// letters, digits, underscore, hyphen).
func NewProfileId(s string) (ProfileId, error) {
	if !profileIDPattern.MatchString(s) {
		return "", newErr("profile_id", s, `^[A-Za-z0-9_-]{16,128}$`)
	}
	return ProfileId(s), nil
}

// PrincipalId identifies the human, service, agent, or org acting in an
// event, e.g. "agent:checkout-bot".
type PrincipalId string

func NewPrincipalId(s string) (PrincipalId, error) {
	if !principalIDPattern.MatchString(s) {
		return "", newErr("principal_id", s, `^(human|service|agent|org):[a-z][a-z0-9_-]{0,62}$`)
	}
	return PrincipalId(s), nil
}

// ToolName identifies an executable capability as 1-8 dot-separated lowercase
// segments, e.g. "search.web.fetch".
type ToolName string

func NewToolName(s string) (ToolName, error) {
	if !toolNamePattern.MatchString(s) {
		return "", newErr("tool_name", s, `^[a-z][a-z0-9_]*([.][a-z][a-z0-9_]*){0,7}$`)
	}
	return ToolName(s), nil
}

// Timestamp is an RFC3339 UTC instant with a mandatory "Z" suffix and up to
// nanosecond fractional precision.
type Timestamp string

func NewTimestamp(s string) (Timestamp, error) {
	if !timestampPattern.MatchString(s) {
		return "", newErr("timestamp", s, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,9})?Z$`)
	}
	return Timestamp(s), nil
}
