package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NORTHROOT_PROFILE_ID", "")
	t.Setenv("NORTHROOT_MAX_PAYLOAD_BYTES", "")
	cfg := Load()
	assert.Equal(t, DefaultProfileID, cfg.ProfileID)
	assert.Equal(t, uint32(16*1024*1024), cfg.MaxPayloadBytes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NORTHROOT_PROFILE_ID", "custom-profile-id-0123456789")
	t.Setenv("NORTHROOT_MAX_PAYLOAD_BYTES", "1024")
	cfg := Load()
	assert.Equal(t, "custom-profile-id-0123456789", cfg.ProfileID)
	assert.Equal(t, uint32(1024), cfg.MaxPayloadBytes)
}

func TestLoadIgnoresUnparsableOverride(t *testing.T) {
	t.Setenv("NORTHROOT_PROFILE_ID", "")
	t.Setenv("NORTHROOT_MAX_PAYLOAD_BYTES", "not-a-number")
	cfg := Load()
	assert.Equal(t, uint32(16*1024*1024), cfg.MaxPayloadBytes)
}
