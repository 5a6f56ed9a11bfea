package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

// BitmapFontEntry names an exported bitmap font the application loads at
// startup.
type BitmapFontEntry struct {
	Name         string `toml:"name"`
	Size         uint16 `toml:"size"`
	ResourceName string `toml:"resource_name"`
}

// SystemFontEntry names a truetype font the application loads at startup.
type SystemFontEntry struct {
	Name         string `toml:"name"`
	DefaultSize  uint16 `toml:"default_size"`
	ResourceName string `toml:"resource_name"`
}

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Minimum level of the engine logger.
	LogLevel string `toml:"log_level"`
	// Fonts loaded by the font system during startup.
	BitmapFonts []BitmapFontEntry `toml:"bitmap_fonts"`
	SystemFonts []SystemFontEntry `toml:"system_fonts"`
	// Render views the application wants, filled in by the game during boot.
	RenderViewConfigs []*metadata.RenderViewConfig `toml:"-"`
}

// LoadApplicationConfig reads the TOML application config at the given
// path. Values not present in the file keep windowed defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		Name:        "Gondola",
		LogLevel:    "debug",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read application config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse application config %s: %w", path, err)
	}
	if config.StartWidth == 0 || config.StartHeight == 0 {
		return nil, fmt.Errorf("application config %s: window dimensions must be > 0", path)
	}

	core.SetLogLevel(config.LogLevel)

	return config, nil
}

// FontSystemConfig converts the font entries into the configuration the
// font system consumes.
func (ac *ApplicationConfig) FontSystemConfig() *metadata.FontSystemConfig {
	fsc := &metadata.FontSystemConfig{
		MaxBitmapFontCount: 10,
		MaxSystemFontCount: 10,
	}
	for _, f := range ac.BitmapFonts {
		fsc.BitmapFontConfigs = append(fsc.BitmapFontConfigs, &metadata.BitmapFontConfig{
			Name:         f.Name,
			Size:         f.Size,
			ResourceName: f.ResourceName,
		})
	}
	for _, f := range ac.SystemFonts {
		fsc.SystemFontConfigs = append(fsc.SystemFontConfigs, &metadata.SystemFontConfig{
			Name:         f.Name,
			DefaultSize:  f.DefaultSize,
			ResourceName: f.ResourceName,
		})
	}
	return fsc
}
