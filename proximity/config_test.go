package proximity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	ok := Config{Count: 10, Bounds: Cube{Half: 1}, MinDistance: 1}
	require.NoError(t, ok.Validate())

	zero := ok
	zero.Count = 0
	assert.NoError(t, zero.Validate())

	negDist := ok
	negDist.MinDistance = -5
	assert.NoError(t, negDist.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative count", func(c *Config) { c.Count = -1 }},
		{"no bounds", func(c *Config) { c.Bounds = nil }},
		{"bad bounds", func(c *Config) { c.Bounds = Segmented{HalfX: 1} }},
		{"nan distance", func(c *Config) { c.MinDistance = math.NaN() }},
		{"negative max", func(c *Config) { c.MaxConnections = -1 }},
		{"cap mode", func(c *Config) { c.Cap = CapMode(7) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok
			tt.modify(&c)
			assert.ErrorIs(t, c.Validate(), ErrConfig)
		})
	}
}

func TestCapped(t *testing.T) {
	assert.False(t, Config{MaxConnections: 3}.capped())
	assert.False(t, Config{LimitConnections: true}.capped())
	assert.True(t, Config{LimitConnections: true, MaxConnections: 3}.capped())
}

func TestParseCapMode(t *testing.T) {
	for _, m := range []CapMode{CapStrict, CapFirstOnce} {
		got, err := ParseCapMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	m, err := ParseCapMode("")
	require.NoError(t, err)
	assert.Equal(t, CapStrict, m)

	_, err = ParseCapMode("loose")
	assert.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, "CapMode(9)", CapMode(9).String())
}
