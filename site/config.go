package site

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/folio"
	"gopkg.in/yaml.v3"
)

// Variant selects one of the page's alternative configurations.
type Variant string

const (
	// VariantClassic is the hero with the electric background and pulse,
	// and a standard grid of project cards.
	VariantClassic Variant = "classic"
	// VariantWorks is the storm-lit page with the pinned horizontal
	// showcase.
	VariantWorks Variant = "works"
)

// Config is the site configuration, normally read from site.yaml.
type Config struct {
	Title   string  `yaml:"title"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Variant Variant `yaml:"variant"`
	Theme   string  `yaml:"theme"` // dark or light
	Seed    uint64  `yaml:"seed"`

	// Preloader shows the loading screen on start.
	Preloader bool `yaml:"preloader"`
	// Doors plays the galaxy door over the works page on start and again
	// at the bottom of the page.
	Doors bool `yaml:"doors"`
	// Debug enables the FPS overlay and periodic frame stats.
	Debug         bool          `yaml:"debug"`
	StatsInterval time.Duration `yaml:"stats_interval"`

	Scroll  ScrollConfig  `yaml:"scroll"`
	Content ContentConfig `yaml:"content"`

	// Font is an optional TTF/OTF path; the bundled face is used when empty.
	Font string `yaml:"font"`
}

// ScrollConfig configures page scrolling.
type ScrollConfig struct {
	// Smooth eases wheel scrolling toward its target.
	Smooth bool    `yaml:"smooth"`
	Lerp   float64 `yaml:"lerp"`
	// WheelStep is the distance of one wheel notch in pixels.
	WheelStep float64 `yaml:"wheel_step"`
	// Scrub is the catch-up time of section reveals.
	Scrub time.Duration `yaml:"scrub"`
	// ShowcaseScrub is the catch-up time of the pinned showcase.
	ShowcaseScrub time.Duration `yaml:"showcase_scrub"`
}

// ContentConfig locates the project list.
type ContentConfig struct {
	// Path is a projects.yaml file; the bundled list is used when empty.
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Title:         "Portfolio",
		Width:         1280,
		Height:        800,
		Variant:       VariantWorks,
		Theme:         "dark",
		Seed:          1,
		Preloader:     true,
		Doors:         true,
		StatsInterval: time.Second,
		Scroll: ScrollConfig{
			Smooth:        true,
			Lerp:          0.1,
			WheelStep:     100,
			Scrub:         time.Second,
			ShowcaseScrub: 1500 * time.Millisecond,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Variant {
	case VariantClassic, VariantWorks:
	default:
		return fmt.Errorf("invalid variant %q (valid: %s, %s)", c.Variant, VariantClassic, VariantWorks)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if _, err := c.theme(); err != nil {
		return err
	}
	if c.Scroll.Lerp < 0 || c.Scroll.Lerp > 1 {
		return fmt.Errorf("invalid scroll lerp %v: want (0, 1]", c.Scroll.Lerp)
	}
	return nil
}

func (c *Config) theme() (folio.Theme, error) {
	switch c.Theme {
	case "", "dark":
		return folio.ThemeDark, nil
	case "light":
		return folio.ThemeLight, nil
	}
	return folio.ThemeDark, fmt.Errorf("invalid theme %q (valid: dark, light)", c.Theme)
}
