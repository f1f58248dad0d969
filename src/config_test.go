package aprstx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	var config = DefaultConfig()

	assert.Equal(t, "APRS", config.Dest)
	assert.Equal(t, "WIDE1-1,WIDE2-1", config.Path)
	assert.Equal(t, 48000, config.Modem.SamplesPerSec)
	assert.Equal(t, 1200, config.Modem.Baud)
	assert.Equal(t, 1200, config.Modem.MarkFreq)
	assert.Equal(t, 2200, config.Modem.SpaceFreq)
	assert.True(t, config.Modem.MarkForOne)
	assert.Equal(t, 50, config.Modem.Interpolation)
	assert.GreaterOrEqual(t, config.Modem.TxDelayFlags, 4, "preamble default should favor receiver sync")

	assert.NoError(t, config.Validate())
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	var config, err = LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigOverrides(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "franc.yaml")
	var body = `
callsign: N0CALL-11
format: s8
modem:
  txdelay_flags: 16
  tx_amplitude: 1.0
serial:
  port: /dev/ttyUSB3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	var config, err = LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "N0CALL-11", config.Callsign)
	assert.Equal(t, "s8", config.Format)
	assert.Equal(t, 16, config.Modem.TxDelayFlags)
	assert.Equal(t, 1.0, config.Modem.TxAmplitude)
	assert.Equal(t, "/dev/ttyUSB3", config.Serial.Port)

	// Untouched fields keep their defaults.
	assert.Equal(t, "APRS", config.Dest)
	assert.Equal(t, 48000, config.Modem.SamplesPerSec)
}

func TestValidateRejects(t *testing.T) {
	var cases = []func(*Config){
		func(c *Config) { c.Modem.SamplesPerSec = 0 },
		func(c *Config) { c.Modem.Baud = 1100 }, // 48000 not a multiple
		func(c *Config) { c.Modem.MarkFreq = 30000 },
		func(c *Config) { c.Modem.SpaceFreq = -1 },
		func(c *Config) { c.Modem.Interpolation = 0 },
		func(c *Config) { c.Modem.TxAmplitude = 0 },
		func(c *Config) { c.Modem.TxAmplitude = 1.5 },
		func(c *Config) { c.Format = "ogg" },
	}

	for i, mutate := range cases {
		var config = DefaultConfig()
		mutate(config)
		assert.Error(t, config.Validate(), "case %d", i)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "franc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("callsign: [unterminated"), 0o644))

	var _, err = LoadConfig(path)
	assert.Error(t, err)
}
