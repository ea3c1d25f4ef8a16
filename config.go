package dragmerge

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds the tunables for a board and its drag controller.
type Config struct {
	// PlacementOffset is how far above the hit tile a dragged unit floats.
	PlacementOffset float64 `mapstructure:"placementOffset"`
	// DragDeadZone is the pointer travel, in pixels, before a press on a
	// unit turns into a drag.
	DragDeadZone float64 `mapstructure:"dragDeadZone"`
	TileSize     float64 `mapstructure:"tileSize"`
	BoardCols    int     `mapstructure:"boardCols"`
	BoardRows    int     `mapstructure:"boardRows"`
	Debug        bool    `mapstructure:"debug"`
	LogLevel     string  `mapstructure:"logLevel"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		PlacementOffset: 6,
		DragDeadZone:    4,
		TileSize:        64,
		BoardCols:       7,
		BoardRows:       5,
		LogLevel:        "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("placementOffset", d.PlacementOffset)
	v.SetDefault("dragDeadZone", d.DragDeadZone)
	v.SetDefault("tileSize", d.TileSize)
	v.SetDefault("boardCols", d.BoardCols)
	v.SetDefault("boardRows", d.BoardRows)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("logLevel", d.LogLevel)
}

// LoadConfig reads path (any format viper understands, picked by extension)
// over the defaults. DRAGMERGE_* environment variables override both. An
// empty path loads defaults and environment only.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DRAGMERGE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tileSize must be positive, got %v", c.TileSize)
	}
	if c.BoardCols <= 0 || c.BoardRows <= 0 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", c.BoardCols, c.BoardRows)
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("dragDeadZone must not be negative, got %v", c.DragDeadZone)
	}
	return nil
}

// Level maps LogLevel to a zerolog level, defaulting to info.
func (c Config) Level() zerolog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger builds a console logger at the configured level.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(c.Level()).
		With().Timestamp().Logger()
}
