package backdrop

import "math"

// nearPlane is the minimum camera-space depth a point must have to be drawn.
const nearPlane = 0.1

// Camera is a fixed perspective camera looking down -Z at the origin.
// Scenes configure it once; hosts only read it.
type Camera struct {
	// Position is the eye position in scene space.
	Position Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
}

// Projection is a point mapped into a viewport.
type Projection struct {
	X, Y  float64 // viewport pixels, origin top-left, Y down
	Scale float64 // pixels per scene unit at the point's depth
	Depth float64 // distance from the eye along the view axis
}

// focal returns the focal length in pixels for a viewport height.
func (c Camera) focal(viewH float64) float64 {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 60
	}
	return (viewH / 2) / math.Tan(fov*math.Pi/360)
}

// Project maps p into a viewW×viewH viewport. ok is false when the point is
// behind the near plane.
func (c Camera) Project(p Vec3, viewW, viewH float64) (pr Projection, ok bool) {
	depth := c.Position.Z - p.Z
	if depth < nearPlane {
		return Projection{}, false
	}
	f := c.focal(viewH)
	k := f / depth
	return Projection{
		X:     viewW/2 + (p.X-c.Position.X)*k,
		Y:     viewH/2 - (p.Y-c.Position.Y)*k,
		Scale: k,
		Depth: depth,
	}, true
}

// VisibleHalfHeight returns half the height of the view frustum at the
// origin plane, in scene units.
func (c Camera) VisibleHalfHeight() float64 {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 60
	}
	return c.Position.Z * math.Tan(fov*math.Pi/360)
}

// PointLight is a colored light at a fixed position.
type PointLight struct {
	Position  Vec3
	Intensity float64
	Color     Color
}

// Lighting holds a scene's light constants. Point and line materials are
// unlit; hosts use the lights for the background glow only.
type Lighting struct {
	Ambient float64
	Points  []PointLight
}
