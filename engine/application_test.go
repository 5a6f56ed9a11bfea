package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadApplicationConfig(t *testing.T) {
	path := writeConfig(t, `
name = "Wind Waker"
start_pos_x = 50
start_pos_y = 60
start_width = 1000
start_height = 800
log_level = "info"

[[system_fonts]]
name = "Open Sans"
default_size = 20
resource_name = "OpenSans"

[[bitmap_fonts]]
name = "Arial 32"
size = 32
resource_name = "Arial32"
`)

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Wind Waker", config.Name)
	assert.Equal(t, uint32(50), config.StartPosX)
	assert.Equal(t, uint32(60), config.StartPosY)
	assert.Equal(t, uint32(1000), config.StartWidth)
	assert.Equal(t, uint32(800), config.StartHeight)
	assert.Equal(t, "info", config.LogLevel)

	require.Len(t, config.SystemFonts, 1)
	assert.Equal(t, "Open Sans", config.SystemFonts[0].Name)
	assert.Equal(t, uint16(20), config.SystemFonts[0].DefaultSize)
	assert.Equal(t, "OpenSans", config.SystemFonts[0].ResourceName)

	require.Len(t, config.BitmapFonts, 1)
	assert.Equal(t, "Arial 32", config.BitmapFonts[0].Name)
}

func TestLoadApplicationConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `name = "Minimal"`)

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Minimal", config.Name)
	assert.Equal(t, uint32(100), config.StartPosX)
	assert.Equal(t, uint32(100), config.StartPosY)
	assert.Equal(t, uint32(1280), config.StartWidth)
	assert.Equal(t, uint32(720), config.StartHeight)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Empty(t, config.SystemFonts)
}

func TestLoadApplicationConfigMissingFile(t *testing.T) {
	_, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadApplicationConfigMalformed(t *testing.T) {
	path := writeConfig(t, `name = [broken`)

	_, err := LoadApplicationConfig(path)
	assert.Error(t, err)
}

func TestLoadApplicationConfigRejectsZeroDimensions(t *testing.T) {
	path := writeConfig(t, `
name = "Flat"
start_width = 0
start_height = 800
`)

	_, err := LoadApplicationConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window dimensions")
}

func TestFontSystemConfigConversion(t *testing.T) {
	config := &ApplicationConfig{
		BitmapFonts: []BitmapFontEntry{{Name: "Arial 32", Size: 32, ResourceName: "Arial32"}},
		SystemFonts: []SystemFontEntry{{Name: "Open Sans", DefaultSize: 20, ResourceName: "OpenSans"}},
	}

	fsc := config.FontSystemConfig()
	assert.Equal(t, uint8(10), fsc.MaxBitmapFontCount)
	assert.Equal(t, uint8(10), fsc.MaxSystemFontCount)
	require.Len(t, fsc.BitmapFontConfigs, 1)
	assert.Equal(t, "Arial 32", fsc.BitmapFontConfigs[0].Name)
	require.Len(t, fsc.SystemFontConfigs, 1)
	assert.Equal(t, uint16(20), fsc.SystemFontConfigs[0].DefaultSize)
}
