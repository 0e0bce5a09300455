package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"Domino3D/internal/layout"
	"Domino3D/internal/renderer"
)

type Config struct {
	Unit     UnitConfig     `yaml:"unit"`
	Layout   LayoutConfig   `yaml:"layout"`
	Material MaterialConfig `yaml:"material"`
	Lighting LightingConfig `yaml:"lighting"`
	Textures TextureConfig  `yaml:"textures"`
	Sample   SampleConfig   `yaml:"sample"`
	View     ViewConfig     `yaml:"view"`
	Log      LogConfig      `yaml:"log"`
}

type UnitConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`
}

type LayoutConfig struct {
	Count       int     `yaml:"count"`
	Spacing     float32 `yaml:"spacing"`
	Arrangement string  `yaml:"arrangement"`
}

type MaterialConfig struct {
	Color   string `yaml:"color"`
	Texture string `yaml:"texture"`
	Shading string `yaml:"shading"`
	UVMode  string `yaml:"uv_mode"`
}

type LightConfig struct {
	Name      string     `yaml:"name"`
	Color     string     `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Position  [3]float32 `yaml:"position,flow"`
}

type LightingConfig struct {
	Mode        int           `yaml:"mode"`
	Helpers     bool          `yaml:"helpers"`
	Ambient     LightConfig   `yaml:"ambient"`
	Directional []LightConfig `yaml:"directional"`
}

type TextureConfig struct {
	Size           int   `yaml:"size"`
	CheckerSquares int   `yaml:"checker_squares"`
	WoodSeed       int64 `yaml:"wood_seed"`
}

type SampleConfig struct {
	Visible        bool       `yaml:"visible"`
	Variation      int        `yaml:"variation"`
	Radius         float32    `yaml:"radius"`
	WidthSegments  int        `yaml:"width_segments"`
	HeightSegments int        `yaml:"height_segments"`
	Position       [3]float32 `yaml:"position,flow"`
}

type ViewConfig struct {
	Position [3]float32 `yaml:"position,flow"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default reproduces the stock scene: nine green units under the primary light
func Default() Config {
	return Config{
		Unit:     UnitConfig{Width: 0.8, Height: 2.0, Depth: 0.3},
		Layout:   LayoutConfig{Count: 9, Spacing: 1.5, Arrangement: layout.Uniform.String()},
		Material: MaterialConfig{Color: "#00ff00", Shading: renderer.FragmentShading.String(), UVMode: renderer.UVCylindrical.String()},
		Lighting: LightingConfig{
			Mode:    1,
			Helpers: true,
			Ambient: LightConfig{Name: "ambient", Color: "#404040", Intensity: 0.5},
			Directional: []LightConfig{
				{Name: "primary", Color: "#ffffff", Intensity: 0.8, Position: [3]float32{5, 10, 7}},
				{Name: "secondary", Color: "#ffa500", Intensity: 0.6, Position: [3]float32{-5, 8, -7}},
				{Name: "accent", Color: "#0088ff", Intensity: 0.4, Position: [3]float32{7, 6, -4}},
			},
		},
		Textures: TextureConfig{Size: 512, CheckerSquares: 8, WoodSeed: 7},
		Sample:   SampleConfig{Variation: 4, Radius: 0.5, WidthSegments: 32, HeightSegments: 16, Position: [3]float32{0, 1, 3}},
		View:     ViewConfig{Position: [3]float32{0, 3, 10}},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Fields absent from data keep their default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once
func (c Config) Validate() error {
	var err error
	if c.Unit.Width <= 0 || c.Unit.Height <= 0 || c.Unit.Depth <= 0 {
		err = multierr.Append(err, fmt.Errorf("unit dimensions must be positive, got %gx%gx%g", c.Unit.Width, c.Unit.Height, c.Unit.Depth))
	}
	if c.Layout.Count < 1 {
		err = multierr.Append(err, fmt.Errorf("layout.count must be at least 1, got %d", c.Layout.Count))
	}
	if c.Layout.Spacing <= 0 {
		err = multierr.Append(err, fmt.Errorf("layout.spacing must be positive, got %g", c.Layout.Spacing))
	}
	if _, e := layout.ParseArrangement(c.Layout.Arrangement); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := renderer.HexToColor(c.Material.Color); e != nil {
		err = multierr.Append(err, fmt.Errorf("material.color: %w", e))
	}
	if _, e := renderer.ParseShadingAlgorithm(c.Material.Shading); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := renderer.ParseUVMode(c.Material.UVMode); e != nil {
		err = multierr.Append(err, e)
	}
	if n := len(c.Lighting.Directional); n > renderer.MaxLights {
		err = multierr.Append(err, fmt.Errorf("%w: %d configured", renderer.ErrTooManyLights, n))
	}
	if c.Lighting.Mode < 1 || c.Lighting.Mode > renderer.MaxLights {
		err = multierr.Append(err, fmt.Errorf("%w: %d", renderer.ErrInvalidLightMode, c.Lighting.Mode))
	}
	for _, l := range append([]LightConfig{c.Lighting.Ambient}, c.Lighting.Directional...) {
		if _, e := renderer.HexToColor(l.Color); e != nil {
			err = multierr.Append(err, fmt.Errorf("light %q: %w", l.Name, e))
		}
		if l.Intensity < 0 {
			err = multierr.Append(err, fmt.Errorf("light %q: intensity must not be negative", l.Name))
		}
	}
	if c.Textures.Size < 1 || c.Textures.CheckerSquares < 1 {
		err = multierr.Append(err, fmt.Errorf("textures: size and checker_squares must be positive"))
	}
	if c.Sample.Radius <= 0 || c.Sample.WidthSegments < 3 || c.Sample.HeightSegments < 2 {
		err = multierr.Append(err, fmt.Errorf("sample: radius must be positive with at least 3x2 segments"))
	}
	if c.Sample.Variation < 0 {
		err = multierr.Append(err, fmt.Errorf("sample.variation must not be negative, got %d", c.Sample.Variation))
	}
	return err
}

func (l LightConfig) source(kind renderer.LightKind) renderer.LightSource {
	c, _ := renderer.HexToColor(l.Color)
	return renderer.LightSource{
		Name:      l.Name,
		Kind:      kind,
		Position:  mgl32.Vec3(l.Position),
		Color:     c.Vec3(),
		Intensity: l.Intensity,
	}
}

// BuildLighting creates the lighting model and applies the configured mode and helper state
func (c Config) BuildLighting() (*renderer.LightingModel, error) {
	directional := make([]renderer.LightSource, len(c.Lighting.Directional))
	for i, l := range c.Lighting.Directional {
		directional[i] = l.source(renderer.DirectionalLight)
	}
	lm, err := renderer.NewLightingModel(c.Lighting.Ambient.source(renderer.AmbientLight), directional...)
	if err != nil {
		return nil, err
	}
	if _, err := lm.SetMode(c.Lighting.Mode); err != nil {
		return nil, err
	}
	if lm.HelpersVisible() != c.Lighting.Helpers {
		lm.ToggleHelpers()
	}
	return lm, nil
}

// TextureOptions converts the texture section for the texture manager
func (c Config) TextureOptions() renderer.TextureOptions {
	return renderer.TextureOptions{
		Size:           c.Textures.Size,
		CheckerSquares: c.Textures.CheckerSquares,
		WoodSeed:       c.Textures.WoodSeed,
	}
}

func (c Config) LayoutSpec() layout.Spec {
	a, _ := layout.ParseArrangement(c.Layout.Arrangement)
	return layout.Spec{Count: c.Layout.Count, BaseSpacing: c.Layout.Spacing, Arrangement: a}
}

func (c Config) ViewPosition() mgl32.Vec3 {
	return mgl32.Vec3(c.View.Position)
}
