package backdrop

import "math"

// Phase is one sub-state of the spear convergence cycle.
type Phase uint8

const (
	PhaseGathering  Phase = iota // scattered particles rush into their streams
	PhaseStreaming               // streams hold and flicker toward the core
	PhaseDispersing              // streams burst back outward
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseGathering:
		return "gathering"
	case PhaseStreaming:
		return "streaming"
	case PhaseDispersing:
		return "dispersing"
	}
	return "unknown"
}

// Spear cycle timing in seconds. Each phase covers [start, end).
const (
	SpearCycle     = 8.0
	spearGatherEnd = 2.0
	spearStreamEnd = 6.0
)

// PhaseAt returns the spear phase for elapsed and the progress τ within
// that phase, in [0, 1). A whole multiple of the cycle is always
// PhaseGathering with τ = 0. Negative elapsed is treated as 0.
func PhaseAt(elapsed float64) (Phase, float64) {
	if elapsed < 0 || math.IsNaN(elapsed) {
		elapsed = 0
	}
	c := math.Mod(elapsed, SpearCycle)
	switch {
	case c < spearGatherEnd:
		return PhaseGathering, c / spearGatherEnd
	case c < spearStreamEnd:
		return PhaseStreaming, (c - spearGatherEnd) / (spearStreamEnd - spearGatherEnd)
	default:
		return PhaseDispersing, (c - spearStreamEnd) / (SpearCycle - spearStreamEnd)
	}
}

// SpearConfig parameterizes NewSpearScene.
type SpearConfig struct {
	StreamCount        int
	ParticlesPerStream int

	MaxRadius   float64 // stream length from the core
	Spread      float64 // max radial spread at the far end of a stream
	AngleJitter float64 // total angular width of a stream, radians
	DepthJitter float64 // total depth variation at the far end
	Scatter     Vec3    // extents of the scattered start box

	FlowAmplitude float64 // streaming flicker magnitude
	FlowRate      float64 // streaming flicker angular speed
	FlowStep      float64 // flicker phase step per particle index
	Burst         float64 // dispersal displacement at the end of the cycle
	Spin          float64 // Z rotation rate of the particle set, rad/s

	Color     Color
	PointSize float64

	// Rand supplies the generator's random draws. Nil draws a fresh seed.
	Rand Source
}

// DefaultSpearConfig returns the home-page configuration: 8 streams of 400
// particles.
func DefaultSpearConfig() SpearConfig {
	return SpearConfig{
		StreamCount:        8,
		ParticlesPerStream: 400,
		MaxRadius:          35,
		Spread:             1.5,
		AngleJitter:        0.3,
		DepthJitter:        3,
		Scatter:            Vec3{60, 50, 30},
		FlowAmplitude:      0.8,
		FlowRate:           3,
		FlowStep:           0.02,
		Burst:              30,
		Spin:               0.05,
		Color:              ColorAccent,
		PointSize:          0.08,
	}
}

// SpearScene is the converging-streams effect: particles gather from a
// scattered cloud into radial streams, flicker toward a glowing core, then
// burst outward, on an 8 second loop.
type SpearScene struct {
	cfg   SpearConfig
	set   *ParticleSet
	comp  Composition
	phase Phase
	tau   float64

	points *Layer
	core   *Layer
	halo   *Layer
	rings  [3]*Layer
}

// NewSpearScene generates the streams and composes the scene.
func NewSpearScene(cfg SpearConfig) *SpearScene {
	mustPositive("stream count", cfg.StreamCount)
	mustPositive("particles per stream", cfg.ParticlesPerStream)

	s := &SpearScene{cfg: cfg}
	s.set = generateStreams(cfg, sourceOrDefault(cfg.Rand))
	s.compose()
	s.Update(Frame{})
	return s
}

// generateStreams lays particles out per stream. Stream s sits at angle
// 2π·s/StreamCount; within a stream the radius falls from MaxRadius to 0 as
// the particle index rises.
func generateStreams(cfg SpearConfig, src Source) *ParticleSet {
	set := NewParticleSet(cfg.StreamCount * cfg.ParticlesPerStream)
	for s := 0; s < cfg.StreamCount; s++ {
		angle := float64(s) / float64(cfg.StreamCount) * 2 * math.Pi
		for p := 0; p < cfg.ParticlesPerStream; p++ {
			i := s*cfg.ParticlesPerStream + p
			set.Origin[i] = randomIn(src, cfg.Scatter.X, cfg.Scatter.Y, cfg.Scatter.Z)

			t := float64(p) / float64(cfg.ParticlesPerStream)
			dist := (1 - t) * cfg.MaxRadius
			a := angle + Centered(cfg.AngleJitter).Sample(src)
			r := dist + (1-t)*src.Float64()*cfg.Spread
			set.Base[i] = Vec3{
				X: math.Cos(a) * r,
				Y: math.Sin(a) * r,
				Z: Centered(cfg.DepthJitter).Sample(src) * (1 - t),
			}
			set.Params[i] = ParticleParams{Phase: t, Hue: s, Size: cfg.PointSize}
		}
	}
	copy(set.Current, set.Origin)
	return set
}

func (s *SpearScene) compose() {
	c := s.cfg.Color
	s.core = &Layer{Name: "core", Kind: LayerDisc, Color: c, Size: 0.3, Opacity: 0.8, Scale: 1}
	layers := []*Layer{s.core}
	for i := range s.rings {
		s.rings[i] = &Layer{
			Name: "ring", Kind: LayerRing, Color: c,
			Inner: 0.5, Size: 0.6, Opacity: 0.3, Blend: BlendAdd, Scale: 1,
		}
		layers = append(layers, s.rings[i])
	}
	s.halo = &Layer{Name: "halo", Kind: LayerDisc, Color: c, Size: 1.2, Opacity: 0.15, Blend: BlendAdd}
	s.points = &Layer{
		Name: "streams", Kind: LayerPoints, Positions: s.set.Current,
		Color: c, Size: s.cfg.PointSize, Opacity: 0.9, Blend: BlendAdd,
	}
	layers = append(layers, s.halo, s.points)

	s.comp = Composition{
		Camera: Camera{Position: Vec3{0, 0, 30}, FOV: 60},
		Lighting: Lighting{
			Ambient: 0.2,
			Points:  []PointLight{{Position: Vec3{0, 0, 10}, Intensity: 3, Color: c}},
		},
		Layers: layers,
	}
}

// Name implements Scene.
func (s *SpearScene) Name() string { return "spear" }

// Composition implements Scene.
func (s *SpearScene) Composition() *Composition { return &s.comp }

// Particles returns the generated particle set.
func (s *SpearScene) Particles() *ParticleSet { return s.set }

// Phase returns the phase and in-phase progress of the last update.
func (s *SpearScene) Phase() (Phase, float64) { return s.phase, s.tau }

// Update implements Scene.
func (s *SpearScene) Update(f Frame) {
	t := f.Elapsed
	s.phase, s.tau = PhaseAt(t)

	switch s.phase {
	case PhaseGathering:
		s.gather(s.tau)
	case PhaseStreaming:
		s.stream(t)
	case PhaseDispersing:
		s.disperse(s.tau)
	}
	s.points.Rotation.Z = t * s.cfg.Spin
	s.updateCore(t)
}

// gather eases every particle from its scattered origin into its stream.
func (s *SpearScene) gather(tau float64) {
	k := EaseOutCubic(tau)
	set := s.set
	for i := range set.Current {
		set.Current[i] = LerpVec3(set.Origin[i], set.Base[i], k)
	}
}

// FlowOffset returns particle i's signed inward displacement while
// streaming at elapsed t.
func (s *SpearScene) FlowOffset(i int, t float64) float64 {
	return math.Sin(t*s.cfg.FlowRate+float64(i)*s.cfg.FlowStep) * s.cfg.FlowAmplitude
}

// stream holds particles on their stream with a radial flicker toward the
// core. A particle sitting exactly on the axis has no direction and stays
// put.
func (s *SpearScene) stream(t float64) {
	set := s.set
	for i, b := range set.Base {
		d := b.PlanarLen()
		if d == 0 {
			set.Current[i] = b
			continue
		}
		off := s.FlowOffset(i, t)
		set.Current[i] = Vec3{
			X: b.X - b.X/d*off,
			Y: b.Y - b.Y/d*off,
			Z: b.Z,
		}
	}
}

// disperse pushes particles back toward their origins with an outward burst
// that grows with τ.
func (s *SpearScene) disperse(tau float64) {
	k := EaseInQuad(tau)
	burst := tau * s.cfg.Burst
	set := s.set
	for i, b := range set.Base {
		o := set.Origin[i]
		sin, cos := math.Sincos(math.Atan2(b.Y, b.X))
		set.Current[i] = Vec3{
			X: Lerp(b.X, o.X+cos*burst, k),
			Y: Lerp(b.Y, o.Y+sin*burst, k),
			Z: Lerp(b.Z, o.Z, k),
		}
	}
}

// updateCore animates the glow core and its rings. The core brightens only
// while the streams are flowing.
func (s *SpearScene) updateCore(t float64) {
	if s.phase == PhaseStreaming {
		s.core.Opacity = Pulse(0.8, 0.2, 4, t)
	} else {
		s.core.Opacity = 0.6
	}
	s.core.Scale = Pulse(0.3, 0.1, 3, t)

	for i, ring := range s.rings {
		p := math.Mod(t+float64(i)*0.5, 2)
		ring.Scale = 1 + p*2
		ring.Opacity = (1 - p/2) * 0.3
	}
}
