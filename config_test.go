package orbit3d

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestDecodeConfigOverridesDefaults(t *testing.T) {
	in := `
window:
  width: 640
orbit:
  radius: 6
  inclination: 45
keys:
  panLeft: J
clearColor: [0.1, 0.2, 0.3, 1]
`
	cfg, err := DecodeConfig(strings.NewReader(in))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Window.Width = 640
	want.Orbit.Radius = 6
	want.Orbit.Inclination = 45
	want.Keys.PanLeft = "J"
	want.ClearColor = [4]float32{0.1, 0.2, 0.3, 1}
	assert.Equal(t, want, cfg)
}

func TestDecodeConfigEmpty(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"Unknown key", "window:\n  depth: 3\n"},
		{"Wrong type", "window:\n  width: wide\n"},
		{"Invalid values", "camera:\n  fov: 0\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeConfig(strings.NewReader(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"Zero width", func(c *Config) { c.Window.Width = 0 }},
		{"Negative height", func(c *Config) { c.Window.Height = -1 }},
		{"Flat fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"Near at zero", func(c *Config) { c.Camera.Near = 0 }},
		{"Far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"Radius below minimum", func(c *Config) { c.Orbit.Radius = 1 }},
		{"Empty speed range", func(c *Config) { c.Orbit.MaxSpeed = -1 }},
		{"Speed above maximum", func(c *Config) { c.Orbit.Speed = 6 }},
		{"No earth", func(c *Config) { c.Earth.Radius = 0 }},
		{"Too few segments", func(c *Config) { c.Earth.Segments = 2 }},
		{"Negative texture size", func(c *Config) { c.MaxTextureSize = -1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConfig(&buf, DefaultConfig()))
	assert.Contains(t, buf.String(), "rotateSpeed:")

	cfg, err := DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("earth:\n  texture: \"\"\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Earth.Texture)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
