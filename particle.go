package backdrop

import "fmt"

// ParticleParams holds the per-particle values drawn once at generation time.
// Scenes use only the fields they need.
type ParticleParams struct {
	Speed float64 // units per second, or a pulse rate
	Phase float64 // start delay / phase offset in seconds
	Size  float64 // point size in scene units
	Hue   int     // index into the scene's palette
}

// ParticleSet is the generated dataset a scene owns. Base and Origin are
// fixed after generation; Current is rewritten by the scene's frame updater
// and is the only slice renderers read. All four slices share Count as
// their length for the lifetime of the set.
type ParticleSet struct {
	Count   int
	Base    []Vec3 // rest / target positions
	Origin  []Vec3 // scattered start positions
	Current []Vec3
	Params  []ParticleParams
}

// NewParticleSet preallocates a set of count particles. A non-positive count
// is a programming error and panics.
func NewParticleSet(count int) *ParticleSet {
	mustPositive("particle count", count)
	return &ParticleSet{
		Count:   count,
		Base:    make([]Vec3, count),
		Origin:  make([]Vec3, count),
		Current: make([]Vec3, count),
		Params:  make([]ParticleParams, count),
	}
}

// Reset copies Base into Current.
func (p *ParticleSet) Reset() {
	copy(p.Current, p.Base)
}

// Valid reports whether the length invariant holds.
func (p *ParticleSet) Valid() bool {
	return p.Count > 0 &&
		len(p.Base) == p.Count &&
		len(p.Origin) == p.Count &&
		len(p.Current) == p.Count &&
		len(p.Params) == p.Count
}

// mustPositive panics when n <= 0. Construction parameters are programmer
// supplied, so a bad value is a bug rather than a runtime condition.
func mustPositive(what string, n int) {
	if n <= 0 {
		panic(fmt.Sprintf("backdrop: %s must be positive, got %d", what, n))
	}
}

// randomIn returns a point uniformly distributed in the axis-aligned box of
// the given extents centered on the origin.
func randomIn(src Source, w, h, d float64) Vec3 {
	return Vec3{
		X: Centered(w).Sample(src),
		Y: Centered(h).Sample(src),
		Z: Centered(d).Sample(src),
	}
}
