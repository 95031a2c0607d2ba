package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/physics"
	"github.com/msalah0e/helix/internal/scene"
)

// ProjectFile is looked up from the working directory upward and
// overrides the user config.
const ProjectFile = ".helix.toml"

// Config holds helix configuration.
type Config struct {
	UI        UIConfig        `toml:"ui"`
	Viewport  ViewportConfig  `toml:"viewport"`
	Animation AnimationConfig `toml:"animation"`
	Physics   physics.Params  `toml:"physics"`
	Graph     GraphConfig     `toml:"graph"`
	Palette   scene.Palette   `toml:"palette"`
	Parallel  ParallelConfig  `toml:"parallel"`
	Watch     WatchConfig     `toml:"watch"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	Color bool `toml:"color"`
}

// ViewportConfig is the drawing surface size in pixels.
type ViewportConfig struct {
	Width  float64 `toml:"width" validate:"gt=0"`
	Height float64 `toml:"height" validate:"gt=0"`
}

// AnimationConfig controls the frame loop and sweeps.
type AnimationConfig struct {
	FPS    int `toml:"fps" validate:"gte=1,lte=240"`
	Frames int `toml:"frames" validate:"gte=1"` // frames per full sweep
}

// GraphConfig controls assembly.
type GraphConfig struct {
	MinSlots       int   `toml:"min_slots" validate:"gte=1"`
	GhostBuffer    int   `toml:"ghost_buffer" validate:"gte=0"`
	RecentCount    int   `toml:"recent_count" validate:"gte=0"`
	SyntheticLinks int   `toml:"synthetic_links" validate:"gte=0"`
	Seed           int64 `toml:"seed"` // 0 picks a fresh seed per run
}

// ParallelConfig controls concurrent frame export.
type ParallelConfig struct {
	Concurrency int `toml:"concurrency" validate:"gte=1"`
}

// WatchConfig controls record file reloading.
type WatchConfig struct {
	Enabled    bool `toml:"enabled"`
	DebounceMS int  `toml:"debounce_ms" validate:"gte=0"`
}

// Default returns the default configuration.
func Default() *Config {
	g := graph.DefaultOptions()
	return &Config{
		UI:        UIConfig{Color: true},
		Viewport:  ViewportConfig{Width: 800, Height: 600},
		Animation: AnimationConfig{FPS: 60, Frames: 36},
		Physics:   physics.DefaultParams(),
		Graph: GraphConfig{
			MinSlots:       g.MinSlots,
			GhostBuffer:    g.GhostBuffer,
			RecentCount:    g.RecentCount,
			SyntheticLinks: g.SyntheticLinks,
		},
		Palette:  scene.DefaultPalette(),
		Parallel: ParallelConfig{Concurrency: 4},
		Watch:    WatchConfig{Enabled: true, DebounceMS: 100},
	}
}

// ConfigDir returns the helix config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "helix")
}

// Path is the user config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the user config and then any project config over it.
// Missing or broken files leave defaults in place.
func Load() *Config {
	cfg := Default()
	if data, err := os.ReadFile(Path()); err == nil {
		_ = toml.Unmarshal(data, cfg)
	}
	if p := findProjectConfig(); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			_ = toml.Unmarshal(data, cfg)
		}
	}
	return cfg
}

// LoadFile reads an explicit config file over the defaults and
// validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findProjectConfig walks up from the working directory.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		p := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}

// Validate checks ranges on every section.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// GraphOptions converts the graph section. A non-zero seed makes
// synthetic links repeatable.
func (c *Config) GraphOptions() graph.Options {
	opts := graph.Options{
		MinSlots:       c.Graph.MinSlots,
		GhostBuffer:    c.Graph.GhostBuffer,
		RecentCount:    c.Graph.RecentCount,
		SyntheticLinks: c.Graph.SyntheticLinks,
	}
	if c.Graph.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(c.Graph.Seed))
	}
	return opts
}

// FrameInterval is the loop period for the configured FPS.
func (c *Config) FrameInterval() time.Duration {
	if c.Animation.FPS < 1 {
		return physics.FrameDuration
	}
	return time.Second / time.Duration(c.Animation.FPS)
}

// Debounce is the watcher delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
