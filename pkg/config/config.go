// Package config loads environment-variable overrides with built-in
// defaults, following core/pkg/config/config.go's os.Getenv-with-fallback
// style. There is no config file format and no secrets.
package config

import (
	"os"
	"strconv"

	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
)

// DefaultProfileID is the canonicalization profile used when
// NORTHROOT_PROFILE_ID is unset.
const DefaultProfileID = "northroot-canonical-v1"

// Config is the kernel's ambient configuration.
type Config struct {
	ProfileID       string
	MaxPayloadBytes uint32
}

// Load reads NORTHROOT_PROFILE_ID and NORTHROOT_MAX_PAYLOAD_BYTES, falling
// back to built-in defaults when unset or unparsable.
func Load() *Config {
	cfg := &Config{
		ProfileID:       DefaultProfileID,
		MaxPayloadBytes: journal.MaxPayload,
	}
	if v := os.Getenv("NORTHROOT_PROFILE_ID"); v != "" {
		cfg.ProfileID = v
	}
	if v := os.Getenv("NORTHROOT_MAX_PAYLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.MaxPayloadBytes = uint32(n)
		}
	}
	return cfg
}
