package ids

import "regexp"

// digestB64Pattern matches unpadded base64url: 43 chars for a 32-byte SHA-256
// digest, with an optional trailing char allowed by spec to 44 for forward
// compatibility with slightly larger digest algorithms.
var digestB64Pattern = regexp.MustCompile(`^[A-Za-z0-9_-]{43,44}$`)

// Digest is a content-address: a hash algorithm tag plus its base64url (no
// padding) encoded bytes.
type Digest struct {
	Alg string `json:"alg"`
	B64 string `json:"b64"`
}

// NewDigest validates alg/b64 and constructs a Digest. Only "sha-256" is
// accepted; the kernel never needs a second algorithm and spec.md does not
// define one.
func NewDigest(alg, b64 string) (Digest, error) {
	if alg != "sha-256" {
		return Digest{}, newErr("digest.alg", alg, `"sha-256"`)
	}
	if !digestB64Pattern.MatchString(b64) {
		return Digest{}, newErr("digest.b64", b64, "43-44 char unpadded base64url")
	}
	return Digest{Alg: alg, B64: b64}, nil
}

// ContentRef names a byte sequence by the digest of its content plus a
// declared media type, e.g. for tool call payloads referenced by an
// execution event rather than inlined.
type ContentRef struct {
	Digest    Digest `json:"digest"`
	MediaType string `json:"media_type"`
	SizeBytes uint64 `json:"size_bytes"`
}
