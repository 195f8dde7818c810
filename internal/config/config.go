package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/fireworks/internal/draw"
)

// ErrInvalidColor is returned by Validate when a palette entry is not a hex color.
var ErrInvalidColor = errors.New("invalid palette color")

// DefaultPalette is used when the configured firework palette is empty.
var DefaultPalette = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#eab308", // yellow
	"#22c55e", // green
	"#3b82f6", // blue
	"#a855f7",
	"#ec4899",
	"#ffffff",
}

// DefaultTrailPalette is used when the trail palette is empty.
var DefaultTrailPalette = []string{"#fde68a", "#fed7aa", "#e2e8f0"}

// Tempo controls the musical timing of a run.
type Tempo struct {
	BPM         float64 `yaml:"bpm"`
	FlightBeats float64 `yaml:"flight_beats"` // beats from launch to apex
	LaunchBeats float64 `yaml:"launch_beats"` // beats between launches
}

// World is the logical playfield size. Fireworks launch from the bottom edge.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Judge holds the trigger classification thresholds (in velocity units per frame).
type Judge struct {
	ApexThreshold float64 `yaml:"apex_threshold"`
	DudVelocity   float64 `yaml:"dud_velocity"`
	WetVelocity   float64 `yaml:"wet_velocity"`
}

// Scoring holds point values and the combo multiplier step.
type Scoring struct {
	Perfect   int     `yaml:"perfect"`
	Good      int     `yaml:"good"`
	ComboStep float64 `yaml:"combo_step"`
}

// Particles tunes the plain explosion.
type Particles struct {
	Count int     `yaml:"count"`
	Speed float64 `yaml:"speed"`
	Decay float64 `yaml:"decay"`
}

// Bursts tunes the burst-shape selection for perfect hits.
type Bursts struct {
	Text    string             `yaml:"text"`
	Weights map[string]float64 `yaml:"weights"`
}

// Pace describes how the run accelerates as time runs out.
type Pace struct {
	Curve string `yaml:"curve"` // "bands" or "ramp"
	// BoostFrom/BoostTo bound the window of remaining time in which
	// physics runs at BoostScale.
	BoostFrom  time.Duration `yaml:"boost_from"`
	BoostTo    time.Duration `yaml:"boost_to"`
	BoostScale float64       `yaml:"boost_scale"`
}

// Audio configures the backing track.
type Audio struct {
	Enabled bool   `yaml:"enabled"`
	Track   string `yaml:"track"` // file path or http(s) URL, mp3 or wav
	Loop    bool   `yaml:"loop"`
}

// Log configures the structured logger.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the full game configuration.
type Config struct {
	Difficulty   Difficulty    `yaml:"difficulty"`
	Tempo        Tempo         `yaml:"tempo"`
	Duration     time.Duration `yaml:"duration"`
	FrameRate    int           `yaml:"frame_rate"`
	Gravity      float64       `yaml:"gravity"`
	World        World         `yaml:"world"`
	Palette      []string      `yaml:"palette"`
	TrailPalette []string      `yaml:"trail_palette"`
	Judge        Judge         `yaml:"judge"`
	Scoring      Scoring       `yaml:"scoring"`
	Particles    Particles     `yaml:"particles"`
	Bursts       Bursts        `yaml:"bursts"`
	Pace         Pace          `yaml:"pace"`
	Audio        Audio         `yaml:"audio"`
	Log          Log           `yaml:"log"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Difficulty: Normal,
		Tempo: Tempo{
			BPM:         120,
			FlightBeats: 2,
			LaunchBeats: 2,
		},
		Duration:     60 * time.Second,
		FrameRate:    60,
		Gravity:      0.15,
		World:        World{Width: 960, Height: 600},
		Palette:      append([]string(nil), DefaultPalette...),
		TrailPalette: append([]string(nil), DefaultTrailPalette...),
		Judge: Judge{
			ApexThreshold: 1.8,
			DudVelocity:   6,
			WetVelocity:   8,
		},
		Scoring: Scoring{Perfect: 100, Good: 50, ComboStep: 0.1},
		Particles: Particles{
			Count: 40,
			Speed: 4,
			Decay: 0.015,
		},
		Bursts: Bursts{
			Text: "SPARK",
			Weights: map[string]float64{
				"text":   0.2,
				"ring":   0.2,
				"spiral": 0.2,
				"double": 0.2,
				"plain":  0.2,
			},
		},
		Pace: Pace{
			Curve:      "bands",
			BoostFrom:  20 * time.Second,
			BoostTo:    10 * time.Second,
			BoostScale: 2,
		},
		Audio: Audio{Enabled: true, Loop: true},
		Log:   Log{Level: "info"},
	}
}

// Load reads a YAML config file on top of Default and validates it.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	// A weights table in the file replaces the default one instead of
	// merging into it.
	weights := c.Bursts.Weights
	c.Bursts.Weights = nil
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Bursts.Weights == nil {
		c.Bursts.Weights = weights
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return c, nil
}

// Save writes the config as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate normalizes the config in place. Empty palettes fall back to the
// defaults; malformed values are rejected so a run never starts with them.
func (c *Config) Validate() error {
	d, err := ParseDifficulty(string(c.Difficulty))
	if err != nil {
		return err
	}
	c.Difficulty = d

	if len(c.Palette) == 0 {
		c.Palette = append([]string(nil), DefaultPalette...)
	}
	if len(c.TrailPalette) == 0 {
		c.TrailPalette = append([]string(nil), DefaultTrailPalette...)
	}
	for _, p := range [][]string{c.Palette, c.TrailPalette} {
		for _, s := range p {
			if _, err := draw.ParseHex(s); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
		}
	}

	switch {
	case c.Tempo.BPM < MinBPM || c.Tempo.BPM > MaxBPM:
		return fmt.Errorf("bpm %.1f out of range [%d, %d]", c.Tempo.BPM, MinBPM, MaxBPM)
	case c.Tempo.FlightBeats <= 0:
		return fmt.Errorf("flight_beats must be positive")
	case c.Tempo.LaunchBeats <= 0:
		return fmt.Errorf("launch_beats must be positive")
	case c.Duration <= 0:
		return fmt.Errorf("duration must be positive")
	case c.FrameRate <= 0:
		return fmt.Errorf("frame_rate must be positive")
	case c.Gravity <= 0:
		return fmt.Errorf("gravity must be positive")
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive")
	case c.Judge.ApexThreshold <= 0:
		return fmt.Errorf("apex_threshold must be positive")
	case c.Judge.WetVelocity <= 0:
		return fmt.Errorf("wet_velocity must be positive")
	case c.Judge.DudVelocity < c.Judge.ApexThreshold:
		return fmt.Errorf("dud_velocity %.2f below apex_threshold %.2f", c.Judge.DudVelocity, c.Judge.ApexThreshold)
	case c.Particles.Count <= 0:
		return fmt.Errorf("particle count must be positive")
	case c.Particles.Speed < 0:
		return fmt.Errorf("particle speed must not be negative")
	case c.Particles.Decay <= 0:
		return fmt.Errorf("particle decay must be positive")
	}

	c.Pace.Curve = strings.ToLower(c.Pace.Curve)
	switch c.Pace.Curve {
	case "", "bands":
		c.Pace.Curve = "bands"
	case "ramp":
	default:
		return fmt.Errorf("unknown pace curve %q", c.Pace.Curve)
	}
	if c.Pace.BoostScale <= 0 {
		c.Pace.BoostScale = 1
	}
	if c.Bursts.Text == "" {
		c.Bursts.Text = "SPARK"
	}
	return nil
}

// Colors returns the parsed firework and trail palettes. Call after Validate.
func (c *Config) Colors() (palette, trail []draw.Color) {
	for _, s := range c.Palette {
		palette = append(palette, draw.MustParseHex(s))
	}
	for _, s := range c.TrailPalette {
		trail = append(trail, draw.MustParseHex(s))
	}
	return palette, trail
}

// FrameInterval is the duration of one simulation step.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// BPM bounds accepted by Validate and the beat clock.
const (
	MinBPM = 40
	MaxBPM = 300
)
