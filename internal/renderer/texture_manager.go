package renderer

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"sync"

	perlin "github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"Domino3D/internal/logger"
)

// Built-in texture names
const (
	TextureWoodGrain    = "wood grain"
	TextureCheckerboard = "checkerboard"
)

// Texture is a CPU-side RGBA image with repeat-wrapped sampling
type Texture struct {
	ID    uint32
	Name  string
	Image *image.RGBA
}

// Sample returns the nearest texel at uv in linear [0,1] RGB. UVs wrap, v=0 is the bottom row.
func (t *Texture) Sample(uv mgl32.Vec2) mgl32.Vec3 {
	b := t.Image.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return mgl32.Vec3{1, 1, 1}
	}
	u := uv.X() - math32.Floor(uv.X())
	v := uv.Y() - math32.Floor(uv.Y())
	x := int(u * float32(w))
	y := int((1 - v) * float32(h))
	if x >= w {
		x = w - 1
	}
	if y >= h {
		y = h - 1
	}
	c := t.Image.RGBAAt(b.Min.X+x, b.Min.Y+y)
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures int
	CacheHits     int
	CacheMisses   int
}

// TextureOptions controls the generated built-in textures
type TextureOptions struct {
	Size           int
	CheckerSquares int
	WoodSeed       int64
}

func DefaultTextureOptions() TextureOptions {
	return TextureOptions{Size: 512, CheckerSquares: 8, WoodSeed: 7}
}

// TextureManager resolves texture names to textures. The empty name is the
// opaque white default; built-ins are generated on first request.
type TextureManager struct {
	textures   map[string]*Texture
	generators map[string]func() *image.RGBA
	opts       TextureOptions
	white      *Texture
	nextID     uint32
	mu         sync.RWMutex
	stats      TextureStats
}

// NewTextureManager creates a texture manager with the wood grain and checkerboard built-ins
func NewTextureManager(opts TextureOptions) *TextureManager {
	def := DefaultTextureOptions()
	if opts.Size <= 0 {
		opts.Size = def.Size
	}
	if opts.CheckerSquares <= 0 {
		opts.CheckerSquares = def.CheckerSquares
	}

	tm := &TextureManager{
		textures: make(map[string]*Texture),
		opts:     opts,
	}
	tm.generators = map[string]func() *image.RGBA{
		TextureWoodGrain:    func() *image.RGBA { return generateWoodGrain(opts.Size, opts.WoodSeed) },
		TextureCheckerboard: func() *image.RGBA { return generateCheckerboard(opts.Size, opts.CheckerSquares) },
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	tm.white = tm.newTexture("", white)
	return tm
}

func (tm *TextureManager) newTexture(name string, img *image.RGBA) *Texture {
	tm.nextID++
	return &Texture{ID: tm.nextID, Name: name, Image: img}
}

// Default returns the neutral white texture
func (tm *TextureManager) Default() *Texture {
	return tm.white
}

// GetTexture returns the texture for name. An empty name yields the white default;
// an unknown name fails with *UnknownTextureError and nothing is created.
func (tm *TextureManager) GetTexture(name string) (*Texture, error) {
	if name == "" {
		return tm.white, nil
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tex, ok := tm.textures[name]; ok {
		tm.stats.CacheHits++
		logger.Log.Debug("Texture cache hit",
			zap.String("name", name),
			zap.Uint32("textureID", tex.ID))
		return tex, nil
	}

	gen, ok := tm.generators[name]
	if !ok {
		return nil, &UnknownTextureError{Name: name}
	}

	tm.stats.CacheMisses++
	tex := tm.newTexture(name, gen())
	tm.textures[name] = tex
	tm.stats.TotalTextures++

	logger.Log.Info("Texture generated and cached",
		zap.String("name", name),
		zap.Uint32("textureID", tex.ID),
		zap.Int("size", tm.opts.Size))
	return tex, nil
}

// Register adds an already decoded image under name, resampled to the configured size.
// Registering an existing name replaces it.
func (tm *TextureManager) Register(name string, img image.Image) (*Texture, error) {
	if name == "" {
		return nil, fmt.Errorf("texture name must not be empty")
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("texture %q has no pixels", name)
	}

	size := tm.opts.Size
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(rgba, rgba.Bounds(), img, img.Bounds(), draw.Src, nil)

	tm.mu.Lock()
	defer tm.mu.Unlock()

	tex := tm.newTexture(name, rgba)
	if _, exists := tm.textures[name]; !exists {
		tm.stats.TotalTextures++
	}
	tm.textures[name] = tex
	tm.generators[name] = func() *image.RGBA { return rgba }

	logger.Log.Info("Texture registered",
		zap.String("name", name),
		zap.Uint32("textureID", tex.ID),
		zap.Int("sourceWidth", img.Bounds().Dx()),
		zap.Int("sourceHeight", img.Bounds().Dy()))
	return tex, nil
}

// Names lists every texture name GetTexture accepts, except the empty default
func (tm *TextureManager) Names() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	names := make([]string, 0, len(tm.generators))
	for name := range tm.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses))
}

// generateCheckerboard paints squares x squares cells, black where (i+j) is even
func generateCheckerboard(size, squares int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	sq := size / squares
	if sq == 0 {
		sq = 1
	}
	for i := 0; i < squares; i++ {
		for j := 0; j < squares; j++ {
			if (i+j)%2 != 0 {
				continue
			}
			cell := image.Rect(i*sq, j*sq, (i+1)*sq, (j+1)*sq)
			draw.Draw(img, cell, image.Black, image.Point{}, draw.Src)
		}
	}
	return img
}

// generateWoodGrain paints vertical growth bands warped by perlin noise
func generateWoodGrain(size int, seed int64) *image.RGBA {
	p := perlin.NewPerlin(2, 2, 3, seed)
	light := mgl32.Vec3{0.80, 0.62, 0.42}
	dark := mgl32.Vec3{0.52, 0.33, 0.18}
	const bands = 12
	const turbulence = 1.6

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			nx := float64(x) / float64(size)
			ny := float64(y) / float64(size)
			warp := float32(p.Noise2D(nx*4, ny*16))
			grain := float32(nx)*bands + warp*turbulence
			t := grain - math32.Floor(grain)
			t = t * t * (3 - 2*t)
			c := mix(dark, light, t)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c[0] * 255),
				G: uint8(c[1] * 255),
				B: uint8(c[2] * 255),
				A: 255,
			})
		}
	}
	return img
}
