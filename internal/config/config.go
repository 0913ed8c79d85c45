package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. SYMBOLSENSE_FRAME_WIDTH.
const envPrefix = "SYMBOLSENSE"

// FrameConfig sizes unit symbol frames, in world units.
type FrameConfig struct {
	Width          float64 `mapstructure:"width"`
	Height         float64 `mapstructure:"height"`
	CircleSegments int     `mapstructure:"circleSegments"`
	LineThickness  float64 `mapstructure:"lineThickness"`
}

// ZoomConfig anchors the zoom-adaptive stroke width.
type ZoomConfig struct {
	ReferenceOrthoSize float64 `mapstructure:"referenceOrthoSize"`
}

// ArrowConfig shapes arrows.
type ArrowConfig struct {
	LineWidth          float64 `mapstructure:"lineWidth"`
	HeadLength         float64 `mapstructure:"headLength"`
	HeadAngle          float64 `mapstructure:"headAngle"`
	EndOffset          float64 `mapstructure:"endOffset"`
	DefaultStartOffset float64 `mapstructure:"defaultStartOffset"`
}

// CameraConfig holds the orthographic camera limits. Sizes are visible half-heights.
type CameraConfig struct {
	OrthoSize float64 `mapstructure:"orthoSize"`
	MinSize   float64 `mapstructure:"minSize"`
	MaxSize   float64 `mapstructure:"maxSize"`
	PanSpeed  float64 `mapstructure:"panSpeed"`
	ZoomSpeed float64 `mapstructure:"zoomSpeed"`
}

// ClusterConfig controls importance-based decluttering when zoomed out.
type ClusterConfig struct {
	Enabled               bool    `mapstructure:"enabled"`
	CellSizePixels        float64 `mapstructure:"cellSizePixels"`
	NoClusterMaxOrthoSize float64 `mapstructure:"noClusterMaxOrthoSize"`
}

// SavesConfig locates map documents.
type SavesConfig struct {
	Dir         string `mapstructure:"dir"`
	DefaultName string `mapstructure:"defaultName"`
}

// BackgroundConfig scales the background map image.
type BackgroundConfig struct {
	TargetWidth float64 `mapstructure:"targetWidth"`
}

// WindowConfig sizes the editor window in pixels.
type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Config is the full editor configuration.
type Config struct {
	LogLevel   string           `mapstructure:"logLevel"`
	Frame      FrameConfig      `mapstructure:"frame"`
	Zoom       ZoomConfig       `mapstructure:"zoom"`
	Arrow      ArrowConfig      `mapstructure:"arrow"`
	Camera     CameraConfig     `mapstructure:"camera"`
	Cluster    ClusterConfig    `mapstructure:"cluster"`
	Saves      SavesConfig      `mapstructure:"saves"`
	Background BackgroundConfig `mapstructure:"background"`
	Window     WindowConfig     `mapstructure:"window"`
}

// Loader wraps a private viper instance so flags, env and file share one view.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader with every default registered.
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("frame.width", 2.0)
	v.SetDefault("frame.height", 1.2)
	v.SetDefault("frame.circleSegments", 32)
	v.SetDefault("frame.lineThickness", 0.1)

	v.SetDefault("zoom.referenceOrthoSize", 10.0)

	v.SetDefault("arrow.lineWidth", 0.08)
	v.SetDefault("arrow.headLength", 0.7)
	v.SetDefault("arrow.headAngle", 25.0)
	v.SetDefault("arrow.endOffset", 0.3)
	v.SetDefault("arrow.defaultStartOffset", 0.5)

	v.SetDefault("camera.orthoSize", 20.0)
	v.SetDefault("camera.minSize", 10.0)
	v.SetDefault("camera.maxSize", 200.0)
	v.SetDefault("camera.panSpeed", 20.0)
	v.SetDefault("camera.zoomSpeed", 10.0)

	v.SetDefault("cluster.enabled", false)
	v.SetDefault("cluster.cellSizePixels", 80.0)
	v.SetDefault("cluster.noClusterMaxOrthoSize", 30.0)

	v.SetDefault("saves.dir", "Saves")
	v.SetDefault("saves.defaultName", "map01.json")

	v.SetDefault("background.targetWidth", 200.0)

	v.SetDefault("window.width", 1600)
	v.SetDefault("window.height", 900)
}

// BindFlags binds command-line flags to config keys. Each entry maps a viper key
// to the name of a flag in fs; flags that do not exist are reported.
func (l *Loader) BindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			return eris.Errorf("no flag %q for config key %q", name, key)
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return eris.Wrapf(err, "bind flag %q", name)
		}
	}
	return nil
}

// Load reads the config file at path (if any) and decodes the merged result.
// An empty path means defaults plus environment only.
func (l *Loader) Load(path string) (Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return Config{}, eris.Wrapf(err, "error reading config file %s", path)
		}
	}
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "error decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load is a shorthand for NewLoader().Load(path).
func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		// Defaults are static; a failure here is a programming error.
		panic(err)
	}
	return cfg
}

// Smallest window that still fits the side panels next to the map.
const (
	MinWindowWidth  = 640
	MinWindowHeight = 360
)

// Validate rejects settings that would break geometry or zoom maths.
func (c Config) Validate() error {
	switch {
	case c.Frame.Width <= 0 || c.Frame.Height <= 0:
		return eris.Errorf("frame size must be positive, got %gx%g", c.Frame.Width, c.Frame.Height)
	case c.Zoom.ReferenceOrthoSize <= 0:
		return eris.Errorf("zoom.referenceOrthoSize must be positive, got %g", c.Zoom.ReferenceOrthoSize)
	case c.Camera.MinSize <= 0 || c.Camera.MaxSize < c.Camera.MinSize:
		return eris.Errorf("camera size range [%g, %g] is invalid", c.Camera.MinSize, c.Camera.MaxSize)
	case c.Window.Width < MinWindowWidth || c.Window.Height < MinWindowHeight:
		return eris.Errorf("window must be at least %dx%d, got %dx%d",
			MinWindowWidth, MinWindowHeight, c.Window.Width, c.Window.Height)
	}
	return nil
}
