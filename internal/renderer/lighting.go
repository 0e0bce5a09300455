package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Domino3D/internal/logger"
)

// MaxLights is the number of non-ambient light slots a material can evaluate
const MaxLights = 3

type LightKind int

const (
	AmbientLight LightKind = iota
	DirectionalLight
)

func (k LightKind) String() string {
	if k == AmbientLight {
		return "ambient"
	}
	return "directional"
}

// LightSource is one entry of the lighting model. Position is ignored for ambient lights.
type LightSource struct {
	Name      string
	Kind      LightKind
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Visible   bool
}

// LightingModel owns the ordered light set: slot 0 is the ambient light,
// slots 1..3 are primary, secondary and accent. Slots are never removed or
// reordered, only shown and hidden.
type LightingModel struct {
	lights         []LightSource
	mode           int
	helpersVisible bool
}

// NewLightingModel builds a model from one ambient light and up to MaxLights directional lights,
// starting in mode 1 with helpers visible.
func NewLightingModel(ambient LightSource, directional ...LightSource) (*LightingModel, error) {
	if len(directional) > MaxLights {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyLights, len(directional))
	}
	for _, l := range append([]LightSource{ambient}, directional...) {
		if l.Intensity < 0 {
			return nil, fmt.Errorf("light %q has negative intensity %v", l.Name, l.Intensity)
		}
	}

	ambient.Kind = AmbientLight
	ambient.Visible = true
	lights := make([]LightSource, 0, len(directional)+1)
	lights = append(lights, ambient)
	for _, l := range directional {
		l.Kind = DirectionalLight
		lights = append(lights, l)
	}

	lm := &LightingModel{lights: lights, helpersVisible: true}
	lm.applyMode(1)
	return lm, nil
}

// DefaultLightingModel returns the grey ambient plus white primary, orange secondary and blue accent rig
func DefaultLightingModel() *LightingModel {
	lm, _ := NewLightingModel(
		LightSource{Name: "ambient", Color: Color(0x404040).Vec3(), Intensity: 0.5},
		LightSource{Name: "primary", Position: mgl32.Vec3{5, 10, 7}, Color: Color(0xffffff).Vec3(), Intensity: 0.8},
		LightSource{Name: "secondary", Position: mgl32.Vec3{-5, 8, -7}, Color: Color(0xffa500).Vec3(), Intensity: 0.6},
		LightSource{Name: "accent", Position: mgl32.Vec3{7, 6, -4}, Color: Color(0x0088ff).Vec3(), Intensity: 0.4},
	)
	return lm
}

// SetMode shows the primary light always, the secondary from mode 2 and the accent from mode 3.
func (lm *LightingModel) SetMode(n int) (int, error) {
	if n < 1 || n > MaxLights {
		return lm.mode, fmt.Errorf("%w: got %d", ErrInvalidLightMode, n)
	}
	lm.applyMode(n)
	logger.Log.Info("Lighting mode set",
		zap.Int("mode", n),
		zap.Int("activeLights", lm.CountActive()))
	return n, nil
}

// CycleMode advances 1 -> 2 -> 3 -> 1
func (lm *LightingModel) CycleMode() int {
	n, _ := lm.SetMode(lm.mode%MaxLights + 1)
	return n
}

func (lm *LightingModel) applyMode(n int) {
	lm.mode = n
	for slot := 1; slot < len(lm.lights); slot++ {
		lm.lights[slot].Visible = slot <= n
	}
}

// Mode returns the current light mode (1..3)
func (lm *LightingModel) Mode() int {
	return lm.mode
}

// CountActive returns the number of visible non-ambient lights
func (lm *LightingModel) CountActive() int {
	active := 0
	for _, l := range lm.lights[1:] {
		if l.Visible {
			active++
		}
	}
	return active
}

// ToggleHelpers flips helper visibility and returns the new state
func (lm *LightingModel) ToggleHelpers() bool {
	lm.helpersVisible = !lm.helpersVisible
	return lm.helpersVisible
}

func (lm *LightingModel) HelpersVisible() bool {
	return lm.helpersVisible
}

// HelperVisible reports whether the helper of a non-ambient slot should be drawn.
// The primary helper follows the helper flag alone.
func (lm *LightingModel) HelperVisible(slot int) bool {
	if slot < 1 || slot >= len(lm.lights) || !lm.helpersVisible {
		return false
	}
	return slot == 1 || lm.lights[slot].Visible
}

// SetIntensity changes the intensity of a slot in place
func (lm *LightingModel) SetIntensity(slot int, intensity float32) error {
	if slot < 0 || slot >= len(lm.lights) {
		return fmt.Errorf("light slot %d out of range [0,%d)", slot, len(lm.lights))
	}
	if intensity < 0 {
		return fmt.Errorf("light intensity must be >= 0, got %v", intensity)
	}
	lm.lights[slot].Intensity = intensity
	return nil
}

// Ambient returns slot 0
func (lm *LightingModel) Ambient() LightSource {
	return lm.lights[0]
}

// Light returns the light in the given slot (0 is ambient)
func (lm *LightingModel) Light(slot int) (LightSource, bool) {
	if slot < 0 || slot >= len(lm.lights) {
		return LightSource{}, false
	}
	return lm.lights[slot], true
}

// Len returns the number of slots including ambient
func (lm *LightingModel) Len() int {
	return len(lm.lights)
}
