package backdrop

import (
	"math"
	"reflect"
	"testing"
)

func newTestSpear(t testing.TB) *SpearScene {
	t.Helper()
	cfg := DefaultSpearConfig()
	cfg.Rand = NewSource(99)
	return NewSpearScene(cfg)
}

func TestPhaseAt(t *testing.T) {
	tests := []struct {
		elapsed float64
		phase   Phase
		tau     float64
	}{
		{0, PhaseGathering, 0},
		{1, PhaseGathering, 0.5},
		{1.999, PhaseGathering, 0.9995},
		{2, PhaseStreaming, 0},
		{4, PhaseStreaming, 0.5},
		{6, PhaseDispersing, 0},
		{7, PhaseDispersing, 0.5},
		{8, PhaseGathering, 0},
		{10, PhaseStreaming, 0},
		{16, PhaseGathering, 0},
		{-1, PhaseGathering, 0},
		{math.NaN(), PhaseGathering, 0},
	}
	for _, tt := range tests {
		phase, tau := PhaseAt(tt.elapsed)
		if phase != tt.phase {
			t.Errorf("PhaseAt(%v) phase = %v, want %v", tt.elapsed, phase, tt.phase)
		}
		if math.Abs(tau-tt.tau) > 1e-9 {
			t.Errorf("PhaseAt(%v) tau = %v, want %v", tt.elapsed, tau, tt.tau)
		}
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{
		PhaseGathering:  "gathering",
		PhaseStreaming:  "streaming",
		PhaseDispersing: "dispersing",
		Phase(9):        "unknown",
	} {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}

func TestSpearGeneration(t *testing.T) {
	s := newTestSpear(t)
	set := s.Particles()
	if !set.Valid() {
		t.Fatal("particle set invalid")
	}
	if set.Count != 3200 {
		t.Fatalf("Count = %d, want 3200", set.Count)
	}

	cfg := DefaultSpearConfig()
	for i, b := range set.Base {
		// The far end of a stream spreads up to MaxRadius+Spread.
		if b.PlanarLen() > cfg.MaxRadius+cfg.Spread+1e-9 {
			t.Fatalf("base %d radius %v beyond %v", i, b.PlanarLen(), cfg.MaxRadius+cfg.Spread)
		}
		o := set.Origin[i]
		if math.Abs(o.X) > cfg.Scatter.X/2 || math.Abs(o.Y) > cfg.Scatter.Y/2 || math.Abs(o.Z) > cfg.Scatter.Z/2 {
			t.Fatalf("origin %d = %+v outside the scatter box", i, o)
		}
	}

	// The first particle of stream 2 sits near angle π/2.
	b := set.Base[2*cfg.ParticlesPerStream]
	if angle := math.Atan2(b.Y, b.X); math.Abs(angle-math.Pi/2) > cfg.AngleJitter/2+1e-9 {
		t.Errorf("stream 2 angle = %v, want π/2 ± %v", angle, cfg.AngleJitter/2)
	}
}

func TestSpearStartsAtOrigin(t *testing.T) {
	s := newTestSpear(t)
	set := s.Particles()
	s.Update(Frame{Elapsed: 0})
	for i := range set.Current {
		if set.Current[i] != set.Origin[i] {
			t.Fatalf("particle %d = %+v, want origin %+v", i, set.Current[i], set.Origin[i])
		}
	}
}

// At elapsed 1 every particle is the OutCubic(0.5) = 0.875 interpolation
// between origin and base, strictly between the two on every axis where
// they differ.
func TestSpearGatheringInterpolation(t *testing.T) {
	s := newTestSpear(t)
	s.Update(Frame{Elapsed: 1})
	phase, tau := s.Phase()
	if phase != PhaseGathering || tau != 0.5 {
		t.Fatalf("phase = %v %v, want gathering 0.5", phase, tau)
	}

	set := s.Particles()
	between := func(v, a, b float64) bool {
		return (v > math.Min(a, b) && v < math.Max(a, b)) || a == b
	}
	for i, c := range set.Current {
		o, b := set.Origin[i], set.Base[i]
		assertVec3Near(t, "gathering position", c, LerpVec3(o, b, 0.875), 1e-9)
		if !between(c.X, o.X, b.X) || !between(c.Y, o.Y, b.Y) || !between(c.Z, o.Z, b.Z) {
			t.Fatalf("particle %d not strictly between origin and base", i)
		}
	}
}

func TestSpearStreamingBaseline(t *testing.T) {
	s := newTestSpear(t)
	s.Update(Frame{Elapsed: 2})
	if phase, _ := s.Phase(); phase != PhaseStreaming {
		t.Fatalf("phase = %v, want streaming", phase)
	}

	set := s.Particles()
	for i, c := range set.Current {
		b := set.Base[i]
		d := b.PlanarLen()
		off := s.FlowOffset(i, 2)
		restored := Vec3{X: c.X + b.X/d*off, Y: c.Y + b.Y/d*off, Z: c.Z}
		assertVec3Near(t, "baseline", restored, b, 1e-9)
		if c.Z != b.Z {
			t.Fatalf("particle %d z = %v, want %v", i, c.Z, b.Z)
		}
		if got := c.PlanarLen(); math.Abs(got-math.Abs(d-off)) > 1e-9 {
			t.Fatalf("flicker moves particle %d off its radial line: |p| = %v, want %v", i, got, math.Abs(d-off))
		}
	}
}

func TestSpearDispersingStartsAtBase(t *testing.T) {
	s := newTestSpear(t)
	s.Update(Frame{Elapsed: 6})
	set := s.Particles()
	for i := range set.Current {
		if set.Current[i] != set.Base[i] {
			t.Fatalf("particle %d = %+v, want base %+v", i, set.Current[i], set.Base[i])
		}
	}
}

func TestSpearDispersingBurst(t *testing.T) {
	s := newTestSpear(t)
	s.Update(Frame{Elapsed: 7})
	set := s.Particles()
	cfg := DefaultSpearConfig()
	for i, c := range set.Current {
		b, o := set.Base[i], set.Origin[i]
		a := math.Atan2(b.Y, b.X)
		burst := 0.5 * cfg.Burst
		want := Vec3{
			X: Lerp(b.X, o.X+math.Cos(a)*burst, 0.25),
			Y: Lerp(b.Y, o.Y+math.Sin(a)*burst, 0.25),
			Z: Lerp(b.Z, o.Z, 0.25),
		}
		assertVec3Near(t, "dispersing position", c, want, 1e-6)
	}
}

func TestSpearCycleRestartsAtOrigin(t *testing.T) {
	s := newTestSpear(t)
	s.Update(Frame{Elapsed: 7.5})
	s.Update(Frame{Elapsed: 8})
	set := s.Particles()
	for i := range set.Current {
		if set.Current[i] != set.Origin[i] {
			t.Fatalf("particle %d did not restart at its origin", i)
		}
	}
}

func TestSpearUpdateIsPure(t *testing.T) {
	a := newTestSpear(t)
	b := newTestSpear(t)

	a.Update(Frame{Elapsed: 5.5})
	a.Update(Frame{Elapsed: 3.3})
	b.Update(Frame{Elapsed: 3.3})
	b.Update(Frame{Elapsed: 3.3})

	if !reflect.DeepEqual(a.Particles().Current, b.Particles().Current) {
		t.Error("positions depend on update history")
	}
	ra := a.Composition().Layer("streams").Rotation
	rb := b.Composition().Layer("streams").Rotation
	if ra != rb {
		t.Errorf("streams rotation = %+v and %+v, want equal", ra, rb)
	}
	if n := len(a.Particles().Current); n != 3200 {
		t.Errorf("len(Current) = %d, want 3200", n)
	}
}

func TestSpearCore(t *testing.T) {
	s := newTestSpear(t)
	comp := s.Composition()
	core := comp.Layer("core")
	if core == nil {
		t.Fatal("no core layer")
	}

	s.Update(Frame{Elapsed: 1})
	if core.Opacity != 0.6 {
		t.Errorf("gathering core opacity = %v, want 0.6", core.Opacity)
	}
	assertNear(t, "core scale", core.Scale, Pulse(0.3, 0.1, 3, 1))

	s.Update(Frame{Elapsed: 3})
	assertNear(t, "streaming core opacity", core.Opacity, Pulse(0.8, 0.2, 4, 3))

	s.Update(Frame{Elapsed: 6.5})
	if core.Opacity != 0.6 {
		t.Errorf("dispersing core opacity = %v, want 0.6", core.Opacity)
	}

	s.Update(Frame{Elapsed: 8})
	var rings []*Layer
	for _, l := range comp.Layers {
		if l.Kind == LayerRing {
			rings = append(rings, l)
		}
	}
	if len(rings) != 3 {
		t.Fatalf("rings = %d, want 3", len(rings))
	}
	wantScale := []float64{1, 2, 3}
	wantOpacity := []float64{0.3, 0.225, 0.15}
	for i, r := range rings {
		assertNear(t, r.Name+" scale", r.Scale, wantScale[i])
		assertNear(t, r.Name+" opacity", r.Opacity, wantOpacity[i])
	}
}

func TestSpearComposition(t *testing.T) {
	s := newTestSpear(t)
	comp := s.Composition()
	if s.Name() != "spear" {
		t.Errorf("Name = %q, want spear", s.Name())
	}
	if comp.Camera.Position != (Vec3{0, 0, 30}) || comp.Camera.FOV != 60 {
		t.Errorf("camera = %+v, want z=30 fov=60", comp.Camera)
	}
	if comp.Lighting.Ambient != 0.2 {
		t.Errorf("ambient = %v, want 0.2", comp.Lighting.Ambient)
	}
	if len(comp.Lighting.Points) != 1 || comp.Lighting.Points[0].Intensity != 3 {
		t.Errorf("point lights = %+v, want one at intensity 3", comp.Lighting.Points)
	}

	streams := comp.Layer("streams")
	if streams == nil {
		t.Fatal("no streams layer")
	}
	if streams.Blend != BlendAdd {
		t.Errorf("streams blend = %v, want add", streams.Blend)
	}
	if len(streams.Positions) != 3200 {
		t.Errorf("streams positions = %d, want 3200", len(streams.Positions))
	}

	s.Update(Frame{Elapsed: 10})
	assertNear(t, "streams rotation z", streams.Rotation.Z, 0.5)
}
