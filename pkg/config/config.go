// Package config loads user settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/circlet/config.toml (falling back to
// ~/.config/circlet/config.toml). Every key is optional; a missing file means
// all defaults.
//
//	[palette]
//	light = "#bbb"
//	lighter = "#999"
//	dark = "#555"
//
//	[animation]
//	enabled = true
//	interval_ms = 750
//
//	[share]
//	base_url = "https://circlet.example/"
//
//	[render]
//	formats = ["svg"]
//	scale = 2.0
//
//	[grid]
//	width = 1920
//	height = 1080
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
	"github.com/matzehuels/circlet/pkg/location"
	"github.com/matzehuels/circlet/pkg/pattern"
)

const (
	appName  = "circlet"
	fileName = "config.toml"

	maxScale    = 16
	maxGridEdge = 16384
	minInterval = 50 * time.Millisecond
	maxInterval = time.Hour
)

// Config is the full set of user settings.
type Config struct {
	Palette   pattern.Palette `toml:"palette"`
	Animation Animation       `toml:"animation"`
	Share     Share           `toml:"share"`
	Render    Render          `toml:"render"`
	Grid      Grid            `toml:"grid"`
}

// Animation controls the viewer's periodic regeneration.
type Animation struct {
	Enabled    bool `toml:"enabled"`
	IntervalMS int  `toml:"interval_ms"`
}

// Interval returns the regeneration period.
func (a Animation) Interval() time.Duration {
	return time.Duration(a.IntervalMS) * time.Millisecond
}

// Share controls generated links.
type Share struct {
	BaseURL string `toml:"base_url"`
}

// Render holds defaults for the render command.
type Render struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
}

// Grid is the default wall size for the grid command, in pixels.
type Grid struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Palette:   pattern.DefaultPalette,
		Animation: Animation{Enabled: true, IntervalMS: 750},
		Share:     Share{BaseURL: location.DefaultBaseURL},
		Render:    Render{Formats: []string{"svg"}, Scale: 2.0},
		Grid:      Grid{Width: 1920, Height: 1080},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads path over the defaults. An empty path loads the default
// location and tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return Default(), cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), cerrors.New(cerrors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks every setting.
func (c Config) Validate() error {
	colours := []struct{ key, value string }{
		{"palette.light", c.Palette.Light},
		{"palette.lighter", c.Palette.Lighter},
		{"palette.dark", c.Palette.Dark},
	}
	for _, col := range colours {
		if !hexColor.MatchString(col.value) {
			return cerrors.New(cerrors.ErrCodeInvalidInput, "%s: %q is not a #rgb or #rrggbb colour", col.key, col.value)
		}
	}

	if d := c.Animation.Interval(); d < minInterval || d > maxInterval {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "animation.interval_ms: %d out of range [%d, %d]",
			c.Animation.IntervalMS, minInterval.Milliseconds(), maxInterval.Milliseconds())
	}

	if err := cerrors.ValidateURL(c.Share.BaseURL); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "share.base_url")
	}

	if len(c.Render.Formats) == 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "render.formats: at least one format required")
	}
	if c.Render.Scale <= 0 || c.Render.Scale > maxScale {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "render.scale: %.2f out of range (0, %d]", c.Render.Scale, maxScale)
	}

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 || c.Grid.Width > maxGridEdge || c.Grid.Height > maxGridEdge {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "grid: %dx%d out of range", c.Grid.Width, c.Grid.Height)
	}
	return nil
}
