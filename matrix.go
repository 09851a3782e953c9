package backdrop

import "math"

// DefaultGlyphs is the rain character set. Each column carries one glyph per
// character.
const DefaultGlyphs = "01{}[]()<>=+-*/%&|!@#$"

// MatrixConfig parameterizes NewMatrixScene.
type MatrixConfig struct {
	Columns int
	Spacing float64 // horizontal distance between columns
	Glyphs  string
	Gap     float64 // vertical distance between glyphs in a column
	Span    float64 // height of the wrap window, centered on 0
	Speed   Range
	Delay   Range
	Color   Color
	Size    float64
	Rand    Source
}

// DefaultMatrixConfig returns the full-stack page configuration.
func DefaultMatrixConfig() MatrixConfig {
	return MatrixConfig{
		Columns: 40,
		Spacing: 0.5,
		Glyphs:  DefaultGlyphs,
		Gap:     0.5,
		Span:    15,
		Speed:   Range{1, 3},
		Delay:   Range{0, 10},
		Color:   ColorEmerald,
		Size:    0.2,
	}
}

// MatrixScene is columns of glyphs falling through a fixed window and
// re-entering at the top, fading toward the window edges.
type MatrixScene struct {
	cfg    MatrixConfig
	glyphs []rune
	set    *ParticleSet
	alphas []float64
	comp   Composition
	layer  *Layer
}

// NewMatrixScene generates the columns and composes the scene.
func NewMatrixScene(cfg MatrixConfig) *MatrixScene {
	mustPositive("column count", cfg.Columns)
	glyphs := []rune(cfg.Glyphs)
	mustPositive("glyph count", len(glyphs))
	if cfg.Span <= 0 {
		panic("backdrop: matrix span must be positive")
	}

	src := sourceOrDefault(cfg.Rand)
	per := len(glyphs)
	s := &MatrixScene{
		cfg:    cfg,
		glyphs: make([]rune, cfg.Columns*per),
		set:    NewParticleSet(cfg.Columns * per),
		alphas: make([]float64, cfg.Columns*per),
	}
	half := cfg.Columns / 2
	for c := 0; c < cfg.Columns; c++ {
		x := float64(c-half) * cfg.Spacing
		speed := cfg.Speed.Sample(src)
		delay := cfg.Delay.Sample(src)
		for g := 0; g < per; g++ {
			i := c*per + g
			p := Vec3{X: x}
			s.set.Base[i] = p
			s.set.Origin[i] = p
			s.set.Params[i] = ParticleParams{Speed: speed, Phase: delay, Hue: g}
			s.glyphs[i] = glyphs[g]
		}
	}
	s.set.Reset()

	s.layer = &Layer{
		Name: "rain", Kind: LayerPoints, Positions: s.set.Current,
		Alphas: s.alphas, Glyphs: s.glyphs,
		Color: cfg.Color, Size: cfg.Size, Opacity: 1,
	}
	s.comp = Composition{
		Camera:   Camera{Position: Vec3{0, 0, 10}, FOV: 60},
		Lighting: Lighting{Ambient: 0.5},
		Layers:   []*Layer{s.layer},
	}
	s.Update(Frame{})
	return s
}

// Name implements Scene.
func (s *MatrixScene) Name() string { return "matrix" }

// Composition implements Scene.
func (s *MatrixScene) Composition() *Composition { return &s.comp }

// Particles returns the glyph positions.
func (s *MatrixScene) Particles() *ParticleSet { return s.set }

// Alphas returns the per-glyph opacity written by the last update.
func (s *MatrixScene) Alphas() []float64 { return s.alphas }

// FallHeight returns the wrapped height of glyph index g in a column with
// the given speed and delay at elapsed t. The result lies in
// [-span/2, span/2).
func FallHeight(t, speed, delay float64, g int, gap, span float64) float64 {
	return Wrap(t*speed+delay+float64(g)*gap, span)
}

// Update implements Scene.
func (s *MatrixScene) Update(f Frame) {
	t := f.Elapsed
	half := s.cfg.Span / 2
	set := s.set
	for i := range set.Current {
		pp := set.Params[i]
		y := FallHeight(t, pp.Speed, pp.Phase, pp.Hue, s.cfg.Gap, s.cfg.Span)
		set.Current[i] = Vec3{X: set.Base[i].X, Y: y}
		s.alphas[i] = 1 - math.Abs(y)/half
	}
}
