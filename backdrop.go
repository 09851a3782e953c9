package backdrop

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Palette colors shared by the scenes.
var (
	ColorAccent  = MustHex("#00D9FF") // neon cyan
	ColorAmber   = MustHex("#F59E0B") // circuit copper
	ColorSilver  = MustHex("#E8EEF2")
	ColorEmerald = MustHex("#10B981") // matrix green
	ColorDark    = MustHex("#1A1F2E") // page background
	ColorPrimary = MustHex("#2B4C7E")
)

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Scale multiplies the RGB components by k and clamps them to [0, 1].
// Alpha is left unchanged.
func (c Color) Scale(k float64) Color {
	return Color{
		R: clamp01(c.R * k),
		G: clamp01(c.G * k),
		B: clamp01(c.B * k),
		A: c.A,
	}
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xFF
	}
	return Color{
		R: float64(v>>24&0xFF) / 255,
		G: float64(v>>16&0xFF) / 255,
		B: float64(v>>8&0xFF) / 255,
		A: float64(v&0xFF) / 255,
	}, nil
}

// MustHex is like ParseHex but panics on malformed input. Intended for
// package-level palette constants.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic("backdrop: " + err.Error())
	}
	return c
}

// Vec2 is a 2D vector. Pointer coordinates use it in normalized device
// space: X right, Y up, both in [-1, 1].
type Vec2 struct {
	X, Y float64
}

// Vec3 is a point or direction in scene space. X right, Y up, Z toward the
// viewer (the camera sits on +Z looking at the origin).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// PlanarLen returns the length of v projected onto the XY plane.
func (v Vec3) PlanarLen() float64 { return math.Hypot(v.X, v.Y) }

// Euler is a rotation in radians applied in X, Y, Z order (the intrinsic
// order used by three.js objects): a vector is rotated about Z first, then
// Y, then X.
type Euler struct {
	X, Y, Z float64
}

// Rotate applies e to v.
func (v Vec3) Rotate(e Euler) Vec3 {
	if e.Z != 0 {
		s, c := math.Sincos(e.Z)
		v = Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
	}
	if e.Y != 0 {
		s, c := math.Sincos(e.Y)
		v = Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
	}
	if e.X != 0 {
		s, c := math.Sincos(e.X)
		v = Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
	}
	return v
}

// Range is a general-purpose min/max range used by the geometry generators.
type Range struct {
	Min, Max float64
}

// Sample returns a value in [Min, Max) drawn from src.
func (r Range) Sample(src Source) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// Centered returns a Range spanning [-span/2, span/2).
func Centered(span float64) Range {
	return Range{Min: -span / 2, Max: span / 2}
}

// BlendMode selects a compositing operation. Hosts map each value onto their
// own blend primitives.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// String returns the blend mode name.
func (b BlendMode) String() string {
	switch b {
	case BlendAdd:
		return "add"
	default:
		return "normal"
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
