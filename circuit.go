package backdrop

// CircuitConfig parameterizes NewCircuitScene.
type CircuitConfig struct {
	TraceCount int
	// Traces start on the board edge at -Edge and run Length units.
	Edge   float64
	Offset float64 // total span of trace offsets across the board
	Length Range
	// Palette holds the two trace colors chosen by coin flip.
	Palette [2]Color
	Speed   Range

	PulseCount int
	PulseSpan  float64
	PulseSize  Range
	PulseColor Color
	PulseSpin  float64

	Rand Source
}

// DefaultCircuitConfig returns the firmware page configuration.
func DefaultCircuitConfig() CircuitConfig {
	return CircuitConfig{
		TraceCount: 80,
		Edge:       10,
		Offset:     20,
		Length:     Range{5, 15},
		Palette:    [2]Color{ColorAmber, ColorSilver},
		Speed:      Range{0.5, 1},
		PulseCount: 20,
		PulseSpan:  15,
		PulseSize:  Range{0.1, 0.4},
		PulseColor: ColorAmber,
		PulseSpin:  0.1,
	}
}

// CircuitScene draws straight board traces in two alternating colors whose
// shared opacity breathes, with a rotating scatter of signal pulses on top.
type CircuitScene struct {
	cfg    CircuitConfig
	traces *ParticleSet // endpoint pairs: 2i is the start, 2i+1 the end
	pulses *ParticleSet
	comp   Composition

	traceColors []Color
	pulseSizes  []float64

	traceLayer *Layer
	pulseLayer *Layer
}

// NewCircuitScene generates traces and pulses and composes the scene.
func NewCircuitScene(cfg CircuitConfig) *CircuitScene {
	mustPositive("trace count", cfg.TraceCount)
	mustPositive("pulse count", cfg.PulseCount)

	src := sourceOrDefault(cfg.Rand)
	s := &CircuitScene{
		cfg:         cfg,
		traces:      NewParticleSet(cfg.TraceCount * 2),
		pulses:      NewParticleSet(cfg.PulseCount),
		traceColors: make([]Color, cfg.TraceCount*2),
		pulseSizes:  make([]float64, cfg.PulseCount),
	}

	for i := 0; i < cfg.TraceCount; i++ {
		horizontal := coinFlip(src)
		pos := Centered(cfg.Offset).Sample(src)
		length := cfg.Length.Sample(src)

		var a, b Vec3
		if horizontal {
			a, b = Vec3{-cfg.Edge, pos, 0}, Vec3{length, pos, 0}
		} else {
			a, b = Vec3{pos, -cfg.Edge, 0}, Vec3{pos, length, 0}
		}
		hue := 1
		if coinFlip(src) {
			hue = 0
		}
		speed := cfg.Speed.Sample(src)
		for j, p := range [2]Vec3{a, b} {
			k := 2*i + j
			s.traces.Base[k] = p
			s.traces.Origin[k] = p
			s.traces.Params[k] = ParticleParams{Speed: speed, Hue: hue}
			s.traceColors[k] = cfg.Palette[hue]
		}
	}
	s.traces.Reset()

	for i := range s.pulses.Base {
		p := Vec3{
			X: Centered(cfg.PulseSpan).Sample(src),
			Y: Centered(cfg.PulseSpan).Sample(src),
		}
		size := cfg.PulseSize.Sample(src)
		s.pulses.Base[i] = p
		s.pulses.Origin[i] = p
		s.pulses.Params[i] = ParticleParams{Size: size}
		s.pulseSizes[i] = size
	}
	s.pulses.Reset()

	s.traceLayer = &Layer{
		Name: "traces", Kind: LayerLines, Positions: s.traces.Current,
		Colors: s.traceColors, Opacity: 0.4, Size: 2,
	}
	s.pulseLayer = &Layer{
		Name: "pulses", Kind: LayerPoints, Positions: s.pulses.Current,
		Sizes: s.pulseSizes, Color: cfg.PulseColor, Size: 0.2, Opacity: 0.8, Blend: BlendAdd,
	}
	s.comp = Composition{
		Camera:   Camera{Position: Vec3{0, 0, 12}, FOV: 60},
		Lighting: Lighting{Ambient: 0.5},
		Layers:   []*Layer{s.traceLayer, s.pulseLayer},
	}
	s.Update(Frame{})
	return s
}

// Name implements Scene.
func (s *CircuitScene) Name() string { return "circuit" }

// Composition implements Scene.
func (s *CircuitScene) Composition() *Composition { return &s.comp }

// Traces returns the trace endpoints. Entries 2i and 2i+1 are one trace.
func (s *CircuitScene) Traces() *ParticleSet { return s.traces }

// Pulses returns the signal pulse points.
func (s *CircuitScene) Pulses() *ParticleSet { return s.pulses }

// TraceOpacity returns the shared trace opacity at elapsed t.
func TraceOpacity(t float64) float64 {
	return Pulse(0.3, 0.2, 2, t)
}

// Update implements Scene.
func (s *CircuitScene) Update(f Frame) {
	t := f.Elapsed
	s.traceLayer.Opacity = TraceOpacity(t)
	s.pulseLayer.Rotation.Z = t * s.cfg.PulseSpin
}
