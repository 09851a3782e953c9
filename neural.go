package backdrop

import "math"

// NeuralConfig parameterizes NewNeuralScene.
type NeuralConfig struct {
	PointCount int
	PointSpan  float64 // edge of the cube the points fill
	LineCount  int
	LineSpan   float64 // edge of the cube segment starts fill
	LineReach  float64 // max per-axis offset from a segment's start to its end

	WaveAmplitude float64 // vertical wave height
	Spin          float64 // Y rotation rate of the cloud
	Wobble        float64 // X rotation amplitude
	WobbleRate    float64
	LineSpin      float64 // Y rotation rate of the line set
	PointerGain   float64 // rotation added per unit of normalized pointer

	Color Color
	Rand  Source
}

// DefaultNeuralConfig returns the ML/AI page configuration.
func DefaultNeuralConfig() NeuralConfig {
	return NeuralConfig{
		PointCount:    2000,
		PointSpan:     10,
		LineCount:     50,
		LineSpan:      8,
		LineReach:     2,
		WaveAmplitude: 0.5,
		Spin:          0.05,
		Wobble:        0.2,
		WobbleRate:    0.1,
		LineSpin:      0.03,
		PointerGain:   0.0005,
		Color:         ColorAccent,
	}
}

// NeuralScene is a slowly rotating point cloud rippling on a sine wave, with
// a sparse set of connection segments. The cloud leans toward the pointer
// when one is available.
type NeuralScene struct {
	cfg   NeuralConfig
	set   *ParticleSet
	lines []Vec3
	comp  Composition

	points *Layer
	links  *Layer
}

// NewNeuralScene generates the cloud and segments and composes the scene.
func NewNeuralScene(cfg NeuralConfig) *NeuralScene {
	mustPositive("point count", cfg.PointCount)
	mustPositive("line count", cfg.LineCount)

	src := sourceOrDefault(cfg.Rand)
	s := &NeuralScene{cfg: cfg, set: NewParticleSet(cfg.PointCount)}
	for i := range s.set.Base {
		p := randomIn(src, cfg.PointSpan, cfg.PointSpan, cfg.PointSpan)
		s.set.Base[i] = p
		s.set.Origin[i] = p
		s.set.Params[i] = ParticleParams{Phase: p.X, Size: 0.03}
	}
	s.set.Reset()

	s.lines = make([]Vec3, 0, cfg.LineCount*2)
	for i := 0; i < cfg.LineCount; i++ {
		a := randomIn(src, cfg.LineSpan, cfg.LineSpan, cfg.LineSpan)
		b := a.Add(randomIn(src, cfg.LineReach, cfg.LineReach, cfg.LineReach))
		s.lines = append(s.lines, a, b)
	}

	s.points = &Layer{
		Name: "cloud", Kind: LayerPoints, Positions: s.set.Current,
		Color: cfg.Color, Size: 0.03, Opacity: 1, Blend: BlendAdd,
	}
	s.links = &Layer{
		Name: "links", Kind: LayerLines, Positions: s.lines,
		Color: cfg.Color, Opacity: 0.3,
	}
	s.comp = Composition{
		Camera: Camera{Position: Vec3{0, 0, 5}, FOV: 75},
		Lighting: Lighting{
			Ambient: 0.5,
			Points:  []PointLight{{Position: Vec3{10, 10, 10}, Intensity: 1, Color: ColorWhite}},
		},
		Layers: []*Layer{s.points, s.links},
	}
	s.Update(Frame{})
	return s
}

// Name implements Scene.
func (s *NeuralScene) Name() string { return "neural" }

// Composition implements Scene.
func (s *NeuralScene) Composition() *Composition { return &s.comp }

// Particles returns the generated point cloud.
func (s *NeuralScene) Particles() *ParticleSet { return s.set }

// Update implements Scene. Each point's height is a wave over its own X, so
// the ripple travels across the cloud.
func (s *NeuralScene) Update(f Frame) {
	t := f.Elapsed
	set := s.set
	for i, b := range set.Base {
		set.Current[i] = Vec3{X: b.X, Y: math.Sin(t+b.X) * s.cfg.WaveAmplitude, Z: b.Z}
	}

	rot := Euler{
		X: math.Sin(t*s.cfg.WobbleRate) * s.cfg.Wobble,
		Y: t * s.cfg.Spin,
	}
	if f.HasPointer {
		rot.X += f.Pointer.Y * s.cfg.PointerGain
		rot.Y += f.Pointer.X * s.cfg.PointerGain
	}
	s.points.Rotation = rot
	s.links.Rotation = Euler{Y: t * s.cfg.LineSpin}
}
