package engine

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Domino3D/internal/config"
	"Domino3D/internal/controls"
	"Domino3D/internal/layout"
	"Domino3D/internal/logger"
	"Domino3D/internal/renderer"
	"Domino3D/internal/scene"
)

// FrameStats summarizes one committed frame
type FrameStats struct {
	Frame        int
	Units        int
	Materials    int
	ActiveLights int
}

// App owns the whole rendering state. Every mutation and Frame run under one
// mutex, so a frame always sees a fully applied edit.
type App struct {
	mu sync.Mutex

	lighting   *renderer.LightingModel
	textures   *renderer.TextureManager
	materials  *renderer.MaterialCache
	geometries *renderer.GeometryCache
	layout     *layout.Engine
	registry   *scene.Registry
	controls   *controls.Bindings

	viewPos mgl32.Vec3
	frame   int
}

// NewApp validates cfg, builds every component and places the initial row
func NewApp(cfg config.Config, sink scene.Sink) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.InitWithLevel(cfg.Log.Level, cfg.Log.Development); err != nil {
		return nil, err
	}
	logger.Log.Info("Domino3D initializing...")

	lighting, err := cfg.BuildLighting()
	if err != nil {
		return nil, err
	}
	engine, err := layout.NewEngine(cfg.LayoutSpec())
	if err != nil {
		return nil, err
	}
	color, _ := renderer.HexToColor(cfg.Material.Color)
	shading, _ := renderer.ParseShadingAlgorithm(cfg.Material.Shading)
	uvMode, _ := renderer.ParseUVMode(cfg.Material.UVMode)

	textures := renderer.NewTextureManager(cfg.TextureOptions())
	materials := renderer.NewMaterialCache(textures, renderer.NewProgramLibrary(), lighting)
	geometries := renderer.NewGeometryCache()
	s := cfg.Sample
	registry := scene.NewRegistry(materials, geometries, sink,
		scene.Dimensions{Width: cfg.Unit.Width, Height: cfg.Unit.Height, Depth: cfg.Unit.Depth},
		scene.Look{BaseColor: color, TextureID: cfg.Material.Texture, Shading: shading, UVMode: uvMode},
		scene.SampleOptions{
			Radius:         s.Radius,
			WidthSegments:  s.WidthSegments,
			HeightSegments: s.HeightSegments,
			Position:       mgl32.Vec3(s.Position),
		})

	app := &App{
		lighting:   lighting,
		textures:   textures,
		materials:  materials,
		geometries: geometries,
		layout:     engine,
		registry:   registry,
		controls:   controls.NewBindings(),
		viewPos:    cfg.ViewPosition(),
	}
	if err := registry.Rebuild(engine.Layout()); err != nil {
		return nil, err
	}
	if err := registry.SetSampleVariation(s.Variation); err != nil {
		return nil, err
	}
	if err := registry.ShowSample(s.Visible); err != nil {
		return nil, err
	}
	app.registerControls()

	logger.Log.Info("Domino3D ready",
		zap.Int("units", len(registry.Units())),
		zap.String("arrangement", engine.Spec().Arrangement.String()),
		zap.String("shading", shading.String()),
		zap.Int("lightMode", lighting.Mode()))
	return app, nil
}

// Frame pushes the committed lighting state into every material
func (a *App) Frame() FrameStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.materials.RefreshAll(a.lighting)
	a.frame++
	return FrameStats{
		Frame:        a.frame,
		Units:        a.registry.Len(),
		Materials:    a.materials.Len(),
		ActiveLights: a.lighting.CountActive(),
	}
}

// SwitchArrangement toggles uniform and non-uniform spacing and rebuilds the row
func (a *App) SwitchArrangement() (layout.Arrangement, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	previous := a.layout.Spec()
	placements, arrangement := a.layout.SwitchArrangement()
	if err := a.registry.Rebuild(placements); err != nil {
		// Restore the engine so layout and units stay consistent
		_, _ = a.layout.SwitchArrangement()
		return previous.Arrangement, err
	}
	return arrangement, nil
}

// SetCount rebuilds the row with n units under the current arrangement
func (a *App) SetCount(n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.redraw(n, a.layout.Spec().BaseSpacing)
}

// SetSpacing rebuilds the row with a new base spacing
func (a *App) SetSpacing(spacing float32) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.redraw(a.layout.Spec().Count, spacing)
}

func (a *App) redraw(count int, spacing float32) error {
	previous := a.layout.Spec()
	placements, err := a.layout.Redraw(count, spacing)
	if err != nil {
		return err
	}
	if err := a.registry.Rebuild(placements); err != nil {
		_, _ = a.layout.Redraw(previous.Count, previous.BaseSpacing)
		return err
	}
	return nil
}

func (a *App) ToggleShading() (renderer.ShadingAlgorithm, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.ToggleShading()
}

func (a *App) SetShading(alg renderer.ShadingAlgorithm) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.SetShading(alg)
}

// SetLightingMode takes effect on materials at the next Frame
func (a *App) SetLightingMode(n int) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lighting.SetMode(n)
}

func (a *App) CycleLighting() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lighting.CycleMode()
}

func (a *App) ToggleHelpers() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lighting.ToggleHelpers()
}

// SetColor parses a hex color and applies it to every unit
func (a *App) SetColor(hex string) (renderer.Color, error) {
	c, err := renderer.HexToColor(hex)
	if err != nil {
		return 0, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return c, a.registry.SetColor(c)
}

// SetTexture binds a texture by name. An empty name removes the texture.
func (a *App) SetTexture(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.SetTexture(name)
}

func (a *App) SetUVMode(m renderer.UVMode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registry.SetUVMode(m)
}

func (a *App) ShowSample(show bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.ShowSample(show)
}

func (a *App) SetSampleVariation(k int) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	err := a.registry.SetSampleVariation(k)
	return a.registry.SampleVariation(), err
}

// Invoke dispatches a named control
func (a *App) Invoke(name, arg string) (string, error) {
	out, err := a.controls.Invoke(name, arg)
	if err != nil {
		logger.Log.Warn("Control failed",
			zap.String("control", name),
			zap.String("arg", arg),
			zap.Error(err))
		return "", err
	}
	logger.Log.Debug("Control applied", zap.String("control", name), zap.String("result", out))
	return out, nil
}

func (a *App) Controls() *controls.Bindings {
	return a.controls
}

// Snapshot returns the live units with the sample last
func (a *App) Snapshot() []*renderer.Unit {
	a.mu.Lock()
	defer a.mu.Unlock()
	units := a.registry.Units()
	if s := a.registry.Sample(); s != nil {
		units = append(units, s)
	}
	return units
}

func (a *App) Lighting() *renderer.LightingModel {
	return a.lighting
}

func (a *App) Materials() *renderer.MaterialCache {
	return a.materials
}

func (a *App) Textures() *renderer.TextureManager {
	return a.textures
}

func (a *App) ViewPosition() mgl32.Vec3 {
	return a.viewPos
}

func (a *App) Look() scene.Look {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.Look()
}

func (a *App) LayoutSpec() layout.Spec {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.layout.Spec()
}

// LogStats logs texture and material cache statistics
func (a *App) LogStats() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.textures.LogStats()
	a.materials.LogStats()
}

func (a *App) registerControls() {
	c := a.controls
	c.Register("arrangement", "toggle uniform / non-uniform spacing", func(string) (string, error) {
		arr, err := a.SwitchArrangement()
		return arr.String(), err
	})
	c.Register("count", "number of units", func(arg string) (string, error) {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return "", fmt.Errorf("count: %w", err)
		}
		return strconv.Itoa(n), a.SetCount(n)
	})
	c.Register("spacing", "base spacing between units", func(arg string) (string, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 32)
		if err != nil {
			return "", fmt.Errorf("spacing: %w", err)
		}
		return strconv.FormatFloat(v, 'g', -1, 32), a.SetSpacing(float32(v))
	})
	c.Register("shading", "vertex | fragment, empty toggles", func(arg string) (string, error) {
		if strings.TrimSpace(arg) == "" {
			alg, err := a.ToggleShading()
			return alg.String(), err
		}
		alg, err := renderer.ParseShadingAlgorithm(strings.TrimSpace(arg))
		if err != nil {
			return "", err
		}
		return alg.String(), a.SetShading(alg)
	})
	c.Register("lighting", "light mode 1..3", func(arg string) (string, error) {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return "", fmt.Errorf("lighting: %w", err)
		}
		mode, err := a.SetLightingMode(n)
		return strconv.Itoa(mode), err
	})
	c.Register("cycle-lighting", "advance the light mode", func(string) (string, error) {
		return strconv.Itoa(a.CycleLighting()), nil
	})
	c.Register("helpers", "toggle light helpers", func(string) (string, error) {
		return strconv.FormatBool(a.ToggleHelpers()), nil
	})
	c.Register("color", "base color as #rrggbb", func(arg string) (string, error) {
		col, err := a.SetColor(strings.TrimSpace(arg))
		if err != nil {
			return "", err
		}
		return col.Hex(), nil
	})
	c.Register("texture", "texture name, empty or none removes it", func(arg string) (string, error) {
		name := strings.TrimSpace(arg)
		if name == "none" {
			name = ""
		}
		return name, a.SetTexture(name)
	})
	c.Register("uv", "cylindrical | spherical", func(arg string) (string, error) {
		m, err := renderer.ParseUVMode(strings.TrimSpace(arg))
		if err != nil {
			return "", err
		}
		a.SetUVMode(m)
		return m.String(), nil
	})
	c.Register("sample", "show or hide the sample sphere", func(arg string) (string, error) {
		show, err := strconv.ParseBool(strings.TrimSpace(arg))
		if err != nil {
			return "", fmt.Errorf("sample: %w", err)
		}
		return strconv.FormatBool(show), a.ShowSample(show)
	})
	c.Register("sample-variation", "unit index whose surface the sample copies", func(arg string) (string, error) {
		k, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return "", fmt.Errorf("sample-variation: %w", err)
		}
		k, err = a.SetSampleVariation(k)
		return strconv.Itoa(k), err
	})
}
